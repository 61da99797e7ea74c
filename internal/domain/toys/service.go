package toys

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

func (s *Service) Create(ctx context.Context, in Input) (Toy, error) {
	in, err := in.normalize("toys.create")
	if err != nil {
		return Toy{}, err
	}

	now := s.now()
	t := Toy{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Toy{}, fmt.Errorf("toys.create: %w", err)
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Toy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Toy{}, apperr.NotFound("toys.get", "toy not found")
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Toy{}, apperr.NotFound("toys.get", "toy not found")
		}
		return Toy{}, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Toy, error) {
	return s.repo.List(ctx)
}

// ListByIDs devuelve los toys existentes entre ids; los que no existen se omiten.
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Toy, error) {
	if len(ids) == 0 {
		return []Toy{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Toy, error) {
	in, err := in.normalize("toys.update")
	if err != nil {
		return Toy{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Toy{}, err
	}

	current.Name = in.Name
	current.Color = in.Color
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Toy{}, apperr.NotFound("toys.update", "toy not found")
		}
		return Toy{}, fmt.Errorf("toys.update: %w", err)
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("toys.delete", "toy not found")
		}
		return fmt.Errorf("toys.delete: %w", err)
	}
	return nil
}
