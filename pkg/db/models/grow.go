package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

// Grow is a tracked plant-growing project owned by a single user.
type Grow struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID    uuid.UUID        `gorm:"column:owner_id;type:uuid;not null;index"`
	StrainName string           `gorm:"column:strain_name;type:text;not null"`
	Stage      enums.GrowStage  `gorm:"column:stage;type:text;not null"`
	StartDate  time.Time        `gorm:"column:start_date;type:timestamptz;not null"`
	IsIndoor   bool             `gorm:"column:is_indoor;not null;default:false"`
	ImageURL   *string          `gorm:"column:image_url;type:text"`
	ImageKey   *string          `gorm:"column:image_key;type:text"`
	Status     enums.GrowStatus `gorm:"column:status;type:text;not null"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
