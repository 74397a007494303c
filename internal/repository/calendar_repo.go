package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiscal-ops-backend/internal/models"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) List(companyID *uuid.UUID, from, to *time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	query := r.db.Preload("Company").Order("date ASC")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	err := query.Find(&events).Error
	return events, err
}

func (r *CalendarRepository) ByID(id uuid.UUID) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.Preload("Company").First(&event, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *CalendarRepository) Create(event *models.CalendarEvent) error {
	return r.db.Omit("Company").Create(event).Error
}

func (r *CalendarRepository) Save(event *models.CalendarEvent) error {
	return r.db.Omit("Company").Save(event).Error
}

func (r *CalendarRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.CalendarEvent{}, "id = ?", id).Error
}
