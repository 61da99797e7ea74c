package memory

import (
	"context"
	"errors"
	"sort"

	"bird-collector/internal/domain/birds"
)

type birdRepo struct{ s *Store }

func NewBirdRepo(s *Store) birds.Repository {
	return &birdRepo{s: s}
}

func (r *birdRepo) Create(ctx context.Context, b birds.Bird) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := requireID("bird", b.ID); err != nil {
		return err
	}
	if _, exists := r.s.birds[b.ID]; exists {
		return errors.New("bird already exists")
	}
	r.s.birds[b.ID] = b
	return nil
}

func (r *birdRepo) Update(ctx context.Context, b birds.Bird) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.birds[b.ID]
	if !exists {
		return ErrNotFound
	}
	// owner y name no cambian nunca
	b.OwnerUserID = current.OwnerUserID
	b.Name = current.Name
	b.CreatedAt = current.CreatedAt
	r.s.birds[b.ID] = b
	return nil
}

func (r *birdRepo) GetByID(ctx context.Context, id string) (birds.Bird, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.birds[id]
	if !ok {
		return birds.Bird{}, ErrNotFound
	}
	return b, nil
}

func (r *birdRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]birds.Bird, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]birds.Bird, 0)
	for _, b := range r.s.birds {
		if b.OwnerUserID == ownerUserID {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *birdRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.birds[id]; !ok {
		return ErrNotFound
	}
	r.s.deleteBirdLocked(id)
	return nil
}

func (r *birdRepo) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for id, b := range r.s.birds {
		if b.OwnerUserID == ownerUserID {
			r.s.deleteBirdLocked(id)
			n++
		}
	}
	return n, nil
}
