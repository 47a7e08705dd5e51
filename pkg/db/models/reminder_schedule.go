package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

// ReminderSchedule is a repeating device reminder registration. The dispatch
// worker fires rows whose NextFireAt has passed and advances them by
// PeriodSeconds.
type ReminderSchedule struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID       uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;index"`
	Kind          enums.ReminderKind `gorm:"column:kind;type:text;not null"`
	Title         string             `gorm:"column:title;type:text;not null"`
	Body          string             `gorm:"column:body;type:text;not null"`
	PeriodSeconds int64              `gorm:"column:period_seconds;not null"`
	NextFireAt    time.Time          `gorm:"column:next_fire_at;type:timestamptz;not null;index"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}
