package grows

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

// Repository exposes persistence helpers for grows and their attached
// events, notes, and images.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, grow *models.Grow) error
	GetByID(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Grow, error)
	ExistingGrowIDs(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]struct{}, error)
	Update(ctx context.Context, grow *models.Grow) error
	SetStatus(ctx context.Context, ownerID, growID uuid.UUID, status enums.GrowStatus) (int64, error)
	Delete(ctx context.Context, ownerID, growID uuid.UUID) (int64, error)

	CreateEvent(ctx context.Context, event *models.GrowEvent) error
	CreateNote(ctx context.Context, note *models.Note) error
	CreateImage(ctx context.Context, image *models.GrowImage) error
	ListEventsByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowEvent, error)
	ListNotesByGrow(ctx context.Context, growID uuid.UUID) ([]models.Note, error)
	ListImagesByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowImage, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a grows repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, grow *models.Grow) error {
	return r.db.WithContext(ctx).Create(grow).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error) {
	var grow models.Grow
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", growID, ownerID).
		First(&grow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grow, nil
}

func (r *repositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Grow, error) {
	var grows []models.Grow
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&grows).Error
	if err != nil {
		return nil, err
	}
	return grows, nil
}

func (r *repositoryImpl) ExistingGrowIDs(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Grow{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}
	return existing, nil
}

func (r *repositoryImpl) Update(ctx context.Context, grow *models.Grow) error {
	return r.db.WithContext(ctx).Save(grow).Error
}

func (r *repositoryImpl) SetStatus(ctx context.Context, ownerID, growID uuid.UUID, status enums.GrowStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Grow{}).
		Where("id = ? AND owner_id = ?", growID, ownerID).
		UpdateColumn("status", status)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, ownerID, growID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", growID, ownerID).
		Delete(&models.Grow{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) CreateEvent(ctx context.Context, event *models.GrowEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repositoryImpl) CreateNote(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repositoryImpl) CreateImage(ctx context.Context, image *models.GrowImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *repositoryImpl) ListEventsByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowEvent, error) {
	var events []models.GrowEvent
	err := r.db.WithContext(ctx).
		Where("grow_id = ?", growID).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repositoryImpl) ListNotesByGrow(ctx context.Context, growID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("grow_id = ?", growID).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *repositoryImpl) ListImagesByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowImage, error) {
	var images []models.GrowImage
	err := r.db.WithContext(ctx).
		Where("grow_id = ?", growID).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
