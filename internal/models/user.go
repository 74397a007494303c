package models

import (
	"time"

	"github.com/google/uuid"
)

const RoleCollaborator = "Collaborator"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex" json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `gorm:"default:Collaborator" json:"role"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
