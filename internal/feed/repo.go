package feed

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
)

// Repository exposes the append-only activity log.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, activity *models.Activity) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Activity, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an activity repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Append(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
