package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiscal-ops-backend/internal/models"
)

type FiscalFileRepository struct {
	db *gorm.DB
}

func NewFiscalFileRepository(db *gorm.DB) *FiscalFileRepository {
	return &FiscalFileRepository{db: db}
}

func (r *FiscalFileRepository) ConfigByID(id uuid.UUID) (*models.FiscalFile, error) {
	var cfg models.FiscalFile
	if err := r.db.Preload("Company").First(&cfg, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &cfg, nil
}

func (r *FiscalFileRepository) ConfigByCompany(companyID uuid.UUID) (*models.FiscalFile, error) {
	var cfg models.FiscalFile
	if err := r.db.First(&cfg, "company_id = ?", companyID).Error; err != nil {
		return nil, translate(err)
	}
	return &cfg, nil
}

func (r *FiscalFileRepository) CreateConfig(cfg *models.FiscalFile) error {
	return r.db.Create(cfg).Error
}

func (r *FiscalFileRepository) SaveConfig(cfg *models.FiscalFile) error {
	return r.db.Omit("Company").Save(cfg).Error
}

func (r *FiscalFileRepository) DeleteConfig(id uuid.UUID) error {
	return r.db.Delete(&models.FiscalFile{}, "id = ?", id).Error
}

func (r *FiscalFileRepository) ListConfigs(activeOnly bool) ([]models.FiscalFile, error) {
	var configs []models.FiscalFile
	query := r.db.Preload("Company").
		Joins("JOIN companies ON companies.id = fiscal_files.company_id").
		Order("companies.name ASC")
	if activeOnly {
		query = query.Where("fiscal_files.active")
	}
	err := query.Find(&configs).Error
	return configs, err
}

func (r *FiscalFileRepository) RunByKey(companyID uuid.UUID, comp string) (*models.FiscalFileRun, error) {
	var run models.FiscalFileRun
	err := r.db.First(&run, "company_id = ? AND competence = ?", companyID, comp).Error
	if err != nil {
		return nil, translate(err)
	}
	return &run, nil
}

func (r *FiscalFileRepository) CreateRun(run *models.FiscalFileRun) error {
	return r.db.Create(run).Error
}

func (r *FiscalFileRepository) ListRuns(companyID *uuid.UUID, comp string) ([]models.FiscalFileRun, error) {
	var runs []models.FiscalFileRun
	query := r.db.Order("generated_at DESC")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if comp != "" {
		query = query.Where("competence = ?", comp)
	}
	err := query.Find(&runs).Error
	return runs, err
}

func (r *FiscalFileRepository) CompaniesWithRun(comp string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.FiscalFileRun{}).
		Where("competence = ?", comp).
		Distinct().
		Pluck("company_id", &ids).Error
	return ids, err
}
