package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CalendarEventVisit    = "Visit"
	CalendarEventTraining = "Training"
)

type CalendarEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string    `json:"type"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index" json:"companyId"`
	Company     *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Date        time.Time `gorm:"index" json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Responsible string    `json:"responsible"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
