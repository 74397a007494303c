package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiscal-ops-backend/internal/models"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

func (r *WorkOrderRepository) List() ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	err := r.db.Preload("Company").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("at DESC") }).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *WorkOrderRepository) ByID(id uuid.UUID) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.db.Preload("Company").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("at DESC") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *WorkOrderRepository) Create(order *models.WorkOrder) error {
	return r.db.Omit("Company").Create(order).Error
}

func (r *WorkOrderRepository) Save(order *models.WorkOrder) error {
	return r.db.Omit("Company", "History").Save(order).Error
}

func (r *WorkOrderRepository) Delete(id uuid.UUID) error {
	if err := r.db.Delete(&models.WorkOrderHistory{}, "work_order_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.WorkOrder{}, "id = ?", id).Error
}

func (r *WorkOrderRepository) Numbers() ([]string, error) {
	var numbers []string
	err := r.db.Model(&models.WorkOrder{}).Pluck("number", &numbers).Error
	return numbers, err
}

func (r *WorkOrderRepository) AddHistory(entry *models.WorkOrderHistory) error {
	return r.db.Create(entry).Error
}
