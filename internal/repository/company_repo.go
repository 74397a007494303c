package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiscal-ops-backend/internal/models"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) List() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) ByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (r *CompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *CompanyRepository) Save(company *models.Company) error {
	return r.db.Save(company).Error
}

func (r *CompanyRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}

// ListForGeneration returns the active companies opted into at least one of
// the recurring fiscal engines.
func (r *CompanyRepository) ListForGeneration() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.
		Where("status = ?", models.CompanyStatusActive).
		Where("generates_fiscal_files OR generates_fiscal_production").
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
