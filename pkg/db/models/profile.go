package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile stores per-user display data and reminder preferences. The primary
// key is the owning user's id; rows are created lazily on first read.
type Profile struct {
	OwnerID                 uuid.UUID `gorm:"column:owner_id;type:uuid;primaryKey"`
	DisplayName             string    `gorm:"column:display_name;type:text;not null"`
	PhotoURL                *string   `gorm:"column:photo_url;type:text"`
	NotificationsEnabled    bool      `gorm:"column:notifications_enabled;not null;default:false"`
	WateringIntervalDays    int       `gorm:"column:watering_interval_days;not null;default:2"`
	FertilizingIntervalDays int       `gorm:"column:fertilizing_interval_days;not null;default:7"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
