package memory

import (
	"context"
	"slices"

	"bird-collector/internal/domain/associations"
)

type linkRepo struct{ s *Store }

func NewLinkRepo(s *Store) associations.LinkRepository {
	return &linkRepo{s: s}
}

func (r *linkRepo) Link(ctx context.Context, birdID, toyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.birds[birdID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.s.toys[toyID]; !ok {
		return ErrNotFound
	}
	if slices.Contains(r.s.links[birdID], toyID) {
		return nil
	}
	r.s.links[birdID] = append(r.s.links[birdID], toyID)
	return nil
}

func (r *linkRepo) Unlink(ctx context.Context, birdID, toyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := r.s.links[birdID]
	if i := slices.Index(ids, toyID); i >= 0 {
		r.s.links[birdID] = slices.Delete(ids, i, i+1)
	}
	return nil
}

func (r *linkRepo) ToyIDsForBird(ctx context.Context, birdID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return slices.Clone(r.s.links[birdID]), nil
}
