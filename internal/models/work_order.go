package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkOrderStatusOpen        = "Open"
	WorkOrderStatusInProgress  = "InProgress"
	WorkOrderStatusDone        = "Done"
	WorkOrderStatusNotDone     = "NotDone"
	WorkOrderStatusRescheduled = "Rescheduled"
	WorkOrderStatusCanceled    = "Canceled"

	WorkOrderPriorityLow    = "Low"
	WorkOrderPriorityMedium = "Medium"
	WorkOrderPriorityHigh   = "High"
)

type WorkOrder struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Number      string             `gorm:"uniqueIndex" json:"number"`
	CompanyID   uuid.UUID          `gorm:"type:uuid;index" json:"companyId"`
	Company     *Company           `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Type        string             `json:"type"`
	Responsible string             `json:"responsible"`
	DueDate     time.Time          `json:"dueDate"`
	Priority    string             `json:"priority"`
	Status      string             `gorm:"index" json:"status"`
	Description string             `json:"description"`
	History     []WorkOrderHistory `gorm:"foreignKey:WorkOrderID" json:"history"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type WorkOrderHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index" json:"workOrderId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}
