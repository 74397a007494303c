package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusGenerated = "Generated"
	RunStatusFailed    = "Failed"
)

// FiscalFileRun is the immutable audit record of one generation run.
// At most one run exists per (company, competence).
type FiscalFileRun struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_run_company_competence" json:"companyId"`
	Competence  string    `gorm:"uniqueIndex:idx_run_company_competence;index" json:"competence"`
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
