package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BatchTypeInbound  = "Inbound"
	BatchTypeOutbound = "Outbound"
)

// FiscalBatch holds the production count for one company, one competence and
// one movement type. Duplicates for the same key are merged, never stored as
// separate rows.
type FiscalBatch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_batch_key" json:"companyId"`
	Company     *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Competence  string    `gorm:"uniqueIndex:idx_batch_key;index" json:"competence"`
	Type        string    `gorm:"uniqueIndex:idx_batch_key" json:"type"`
	Quantity    int       `json:"quantity"`
	Notes       string    `json:"notes"`
	LaunchDone  bool      `json:"launchDone"`
	BillingDone bool      `json:"billingDone"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
