package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification stores in-app notification payloads scoped to users.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:title;type:text;not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Seen      bool      `gorm:"column:seen;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;default:now()"`
}
