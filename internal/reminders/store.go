package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
)

// ScheduleStore exposes persistence helpers for reminder schedules.
type ScheduleStore interface {
	WithTx(tx *gorm.DB) ScheduleStore
	Create(ctx context.Context, schedule *models.ReminderSchedule) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.ReminderSchedule, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]models.ReminderSchedule, error)
	Advance(ctx context.Context, id uuid.UUID, nextFireAt time.Time) error
}

type scheduleStoreImpl struct {
	db *gorm.DB
}

// NewScheduleStore returns a schedule store bound to the provided database.
func NewScheduleStore(db *gorm.DB) ScheduleStore {
	return &scheduleStoreImpl{db: db}
}

func (r *scheduleStoreImpl) WithTx(tx *gorm.DB) ScheduleStore {
	if tx == nil {
		return r
	}
	return &scheduleStoreImpl{db: tx}
}

func (r *scheduleStoreImpl) Create(ctx context.Context, schedule *models.ReminderSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleStoreImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.ReminderSchedule, error) {
	var schedules []models.ReminderSchedule
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleStoreImpl) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.ReminderSchedule{})
	return result.RowsAffected, result.Error
}

func (r *scheduleStoreImpl) ListDue(ctx context.Context, now time.Time, limit int) ([]models.ReminderSchedule, error) {
	var schedules []models.ReminderSchedule
	query := r.db.WithContext(ctx).
		Where("next_fire_at <= ?", now).
		Order("next_fire_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleStoreImpl) Advance(ctx context.Context, id uuid.UUID, nextFireAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ReminderSchedule{}).
		Where("id = ?", id).
		UpdateColumn("next_fire_at", nextFireAt).Error
}
