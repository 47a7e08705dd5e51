package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

// Activity is an append-only log entry describing something that happened to
// a grow. Rows are never mutated; a grow deletion leaves its rows behind and
// the home feed drops them at read time.
type Activity struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;index"`
	GrowID      uuid.UUID          `gorm:"column:grow_id;type:uuid;not null;index"`
	GrowName    string             `gorm:"column:grow_name;type:text;not null"`
	Type        enums.ActivityType `gorm:"column:type;type:text;not null"`
	EventName   *string            `gorm:"column:event_name;type:text"`
	NewStage    *enums.GrowStage   `gorm:"column:new_stage;type:text"`
	Description *string            `gorm:"column:description;type:text"`
	Timestamp   time.Time          `gorm:"column:timestamp;type:timestamptz;not null;index"`
}
