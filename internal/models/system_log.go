package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is append-only. One row per monthly reconciliation run.
type SystemLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type      string         `gorm:"index" json:"type"`
	Message   string         `json:"message"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}
