package feedings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bird-collector/internal/platform/apperr"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = apperr.ErrValidation
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

// Add agrega una feeding al ave. No verifica ownership: eso lo hace
// el servicio de asociaciones antes de llamar.
func (s *Service) Add(ctx context.Context, birdID string, date time.Time, meal Meal) (Feeding, error) {
	f, err := NewFeeding(birdID, date, meal)
	if err != nil {
		return Feeding{}, err
	}
	f.ID = uuid.NewString()
	f.CreatedAt = s.now()

	if err := s.repo.Create(ctx, f); err != nil {
		return Feeding{}, fmt.Errorf("feedings.create: %w", err)
	}
	return f, nil
}

func (s *Service) ListByBird(ctx context.Context, birdID string) ([]Feeding, error) {
	birdID = strings.TrimSpace(birdID)
	if birdID == "" {
		return nil, apperr.Validation("feedings.list", "bird required")
	}
	return s.repo.ListByBird(ctx, birdID)
}
