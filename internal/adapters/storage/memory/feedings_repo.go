package memory

import (
	"context"
	"slices"

	"bird-collector/internal/domain/feedings"
)

type feedingRepo struct{ s *Store }

func NewFeedingRepo(s *Store) feedings.Repository {
	return &feedingRepo{s: s}
}

func (r *feedingRepo) Create(ctx context.Context, f feedings.Feeding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := requireID("feeding", f.ID); err != nil {
		return err
	}
	if _, ok := r.s.birds[f.BirdID]; !ok {
		return ErrNotFound
	}
	r.s.feedings[f.BirdID] = append(r.s.feedings[f.BirdID], f)
	return nil
}

func (r *feedingRepo) ListByBird(ctx context.Context, birdID string) ([]feedings.Feeding, error) {
	r.s.mu.RLock()
	out := slices.Clone(r.s.feedings[birdID])
	r.s.mu.RUnlock()

	if out == nil {
		out = []feedings.Feeding{}
	}
	// el slice está en orden de inserción; el sort estable lo preserva en empates
	slices.SortStableFunc(out, func(a, b feedings.Feeding) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}
