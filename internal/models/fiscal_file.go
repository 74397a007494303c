package models

import (
	"time"

	"github.com/google/uuid"
)

// FiscalFile is the recurring file-generation obligation for one company.
// One row per company; the monthly job creates it once and refreshes it
// afterwards, it is never recreated.
type FiscalFile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID      uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"companyId"`
	Company        *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Responsible    string    `json:"responsible"`
	Observation    string    `json:"observation"`
	DayOfMonth     int       `gorm:"default:1" json:"dayOfMonth"`
	NextGeneration time.Time `json:"nextGeneration"`
	Active         bool      `gorm:"index" json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
