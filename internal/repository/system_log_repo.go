package repository

import (
	"gorm.io/gorm"

	"fiscal-ops-backend/internal/models"
)

type SystemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) *SystemLogRepository {
	return &SystemLogRepository{db: db}
}

func (r *SystemLogRepository) Create(entry *models.SystemLog) error {
	return r.db.Create(entry).Error
}

func (r *SystemLogRepository) List(limit int) ([]models.SystemLog, error) {
	var entries []models.SystemLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
