package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
)

// Service defines notification read/clear operations.
type Service interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Notification, error)
	CountUnseen(ctx context.Context, ownerID uuid.UUID) (int64, error)
	MarkAllSeen(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ClearAll(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type service struct {
	repo Repository
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]models.Notification, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	if rows == nil {
		rows = []models.Notification{}
	}
	return rows, nil
}

func (s *service) CountUnseen(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	count, err := s.repo.CountUnseen(ctx, ownerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unseen notifications")
	}
	return count, nil
}

func (s *service) MarkAllSeen(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	count, err := s.repo.MarkAllSeen(ctx, ownerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications seen")
	}
	return count, nil
}

func (s *service) ClearAll(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	count, err := s.repo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear notifications")
	}
	return count, nil
}
