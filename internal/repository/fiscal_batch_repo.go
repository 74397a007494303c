package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fiscal-ops-backend/internal/models"
)

type FiscalBatchRepository struct {
	db *gorm.DB
}

func NewFiscalBatchRepository(db *gorm.DB) *FiscalBatchRepository {
	return &FiscalBatchRepository{db: db}
}

func (r *FiscalBatchRepository) ByID(id uuid.UUID) (*models.FiscalBatch, error) {
	var batch models.FiscalBatch
	if err := r.db.Preload("Company").First(&batch, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &batch, nil
}

func (r *FiscalBatchRepository) ByKey(companyID uuid.UUID, comp, batchType string) (*models.FiscalBatch, error) {
	var batch models.FiscalBatch
	err := r.db.Preload("Company").
		First(&batch, "company_id = ? AND competence = ? AND type = ?", companyID, comp, batchType).Error
	if err != nil {
		return nil, translate(err)
	}
	return &batch, nil
}

func (r *FiscalBatchRepository) Create(batch *models.FiscalBatch) error {
	return r.db.Omit("Company").Create(batch).Error
}

func (r *FiscalBatchRepository) Save(batch *models.FiscalBatch) error {
	return r.db.Omit("Company").Save(batch).Error
}

func (r *FiscalBatchRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.FiscalBatch{}, "id = ?", id).Error
}

func (r *FiscalBatchRepository) List(companyID *uuid.UUID, comp string) ([]models.FiscalBatch, error) {
	var batches []models.FiscalBatch
	query := r.db.Preload("Company").Order("created_at DESC")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if comp != "" {
		query = query.Where("competence = ?", comp)
	}
	err := query.Find(&batches).Error
	return batches, err
}

// CreateIfAbsent relies on the (company_id, competence, type) unique index:
// a concurrent duplicate insert degrades to a no-op instead of a second row.
func (r *FiscalBatchRepository) CreateIfAbsent(batch *models.FiscalBatch) (bool, error) {
	result := r.db.Omit("Company").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "competence"}, {Name: "type"}},
		DoNothing: true,
	}).Create(batch)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
