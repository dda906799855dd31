package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	InviteCode uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"invite_code"`
	OwnerID    uint      `gorm:"not null" json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
