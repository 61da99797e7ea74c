package birds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bird-collector/internal/platform/apperr"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = apperr.ErrValidation
	ErrNotFound     = apperr.ErrNotFound
	ErrForbidden    = apperr.ErrAuthorization
)

const (
	opCreate    = "birds.create"
	opUpdate    = "birds.update"
	opDelete    = "birds.delete"
	opAuthorize = "birds.authorize"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Bird, error) {
	b, err := NewBird(ownerUserID, in)
	if err != nil {
		return Bird{}, err
	}

	now := s.now()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.repo.Create(ctx, b); err != nil {
		return Bird{}, fmt.Errorf("%s: %w", opCreate, err)
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Bird, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Bird{}, apperr.NotFound(opAuthorize, "bird not found")
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Bird{}, apperr.NotFound(opAuthorize, "bird not found")
		}
		return Bird{}, err
	}
	return b, nil
}

// Authorize carga el ave y verifica que actorUserID sea su dueño.
// Orden: primero existencia (404), después ownership (403).
func (s *Service) Authorize(ctx context.Context, actorUserID, birdID string) (Bird, error) {
	if strings.TrimSpace(actorUserID) == "" {
		return Bird{}, apperr.Validation(opAuthorize, "actor required")
	}
	b, err := s.GetByID(ctx, birdID)
	if err != nil {
		return Bird{}, err
	}
	if !b.OwnedBy(actorUserID) {
		return Bird{}, apperr.Forbidden(opAuthorize, "bird belongs to another user")
	}
	return b, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Bird, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, apperr.Validation("birds.list", "owner required")
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Update(ctx context.Context, actorUserID, birdID string, in UpdateInput) (Bird, error) {
	current, err := s.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return Bird{}, err
	}

	updated, err := ApplyUpdate(current, in)
	if err != nil {
		return Bird{}, err
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Bird{}, apperr.NotFound(opUpdate, "bird not found")
		}
		return Bird{}, fmt.Errorf("%s: %w", opUpdate, err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actorUserID, birdID string) error {
	b, err := s.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, b.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound(opDelete, "bird not found")
		}
		return fmt.Errorf("%s: %w", opDelete, err)
	}
	return nil
}

// DeleteAllForOwner borra todas las aves del owner (cascada Owner -> Birds).
func (s *Service) DeleteAllForOwner(ctx context.Context, ownerUserID string) (int, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return 0, apperr.Validation("birds.purge", "owner required")
	}
	return s.repo.DeleteByOwner(ctx, ownerUserID)
}
