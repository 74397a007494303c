// Package workorder manages dispatchable service tasks and their append-only
// history. Separate from the fiscal cycle engines.
package workorder

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
)

type Service struct {
	orders    *repository.WorkOrderRepository
	companies *repository.CompanyRepository
}

func NewService(orders *repository.WorkOrderRepository, companies *repository.CompanyRepository) *Service {
	return &Service{orders: orders, companies: companies}
}

type CreateInput struct {
	Number      string
	CompanyID   uuid.UUID
	Type        string
	Responsible string
	DueDate     time.Time
	Priority    string
	Status      string
	Description string
}

func (s *Service) List() ([]models.WorkOrder, error) {
	return s.orders.List()
}

func (s *Service) Get(id uuid.UUID) (*models.WorkOrder, error) {
	order, err := s.orders.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("work order %s: %w", id, err)
	}
	return order, nil
}

func (s *Service) Create(in CreateInput) (*models.WorkOrder, error) {
	if _, err := s.companies.ByID(in.CompanyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", in.CompanyID, err)
	}

	number := in.Number
	if number == "" {
		next, err := s.nextNumber()
		if err != nil {
			return nil, err
		}
		number = next
	}
	status := in.Status
	if status == "" {
		status = models.WorkOrderStatusOpen
	}

	now := time.Now()
	order := &models.WorkOrder{
		ID:          uuid.New(),
		Number:      number,
		CompanyID:   in.CompanyID,
		Type:        in.Type,
		Responsible: in.Responsible,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      status,
		Description: in.Description,
		CreatedAt:   now,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	entry := &models.WorkOrderHistory{
		ID:          uuid.New(),
		WorkOrderID: order.ID,
		Title:       "Work order created",
		At:          now,
	}
	if err := s.orders.AddHistory(entry); err != nil {
		return nil, err
	}
	return s.orders.ByID(order.ID)
}

// nextNumber continues the sequence above the highest numeric order number,
// starting at 1001.
func (s *Service) nextNumber() (string, error) {
	numbers, err := s.orders.Numbers()
	if err != nil {
		return "", err
	}
	max := 1000
	for _, n := range numbers {
		if value, err := strconv.Atoi(n); err == nil && value > max {
			max = value
		}
	}
	return strconv.Itoa(max + 1), nil
}

type UpdateInput struct {
	Number      *string
	CompanyID   *uuid.UUID
	Type        *string
	Responsible *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
	Description *string
}

func (s *Service) Update(id uuid.UUID, in UpdateInput) (*models.WorkOrder, error) {
	order, err := s.orders.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("work order %s: %w", id, err)
	}
	if in.Number != nil {
		order.Number = *in.Number
	}
	if in.CompanyID != nil {
		if _, err := s.companies.ByID(*in.CompanyID); err != nil {
			return nil, fmt.Errorf("company %s: %w", *in.CompanyID, err)
		}
		order.CompanyID = *in.CompanyID
	}
	if in.Type != nil {
		order.Type = *in.Type
	}
	if in.Responsible != nil {
		order.Responsible = *in.Responsible
	}
	if in.DueDate != nil {
		order.DueDate = *in.DueDate
	}
	if in.Priority != nil {
		order.Priority = *in.Priority
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if in.Description != nil {
		order.Description = *in.Description
	}
	if err := s.orders.Save(order); err != nil {
		return nil, err
	}
	return s.orders.ByID(id)
}

func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.orders.ByID(id); err != nil {
		return fmt.Errorf("work order %s: %w", id, err)
	}
	return s.orders.Delete(id)
}

func (s *Service) AddHistory(id uuid.UUID, title, description string) (*models.WorkOrder, error) {
	if _, err := s.orders.ByID(id); err != nil {
		return nil, fmt.Errorf("work order %s: %w", id, err)
	}
	entry := &models.WorkOrderHistory{
		ID:          uuid.New(),
		WorkOrderID: id,
		Title:       title,
		Description: description,
		At:          time.Now(),
	}
	if err := s.orders.AddHistory(entry); err != nil {
		return nil, err
	}
	return s.orders.ByID(id)
}
