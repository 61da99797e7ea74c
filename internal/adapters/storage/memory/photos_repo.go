package memory

import (
	"context"
	"errors"
	"slices"

	"bird-collector/internal/domain/photos"
)

type photoRepo struct{ s *Store }

func NewPhotoRepo(s *Store) photos.Repository {
	return &photoRepo{s: s}
}

func (r *photoRepo) Create(ctx context.Context, p photos.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := requireID("photo", p.ID); err != nil {
		return err
	}
	if _, ok := r.s.birds[p.BirdID]; !ok {
		return errors.New("bird does not exist")
	}
	r.s.photos[p.BirdID] = append(r.s.photos[p.BirdID], p)
	return nil
}

func (r *photoRepo) ListByBird(ctx context.Context, birdID string) ([]photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := slices.Clone(r.s.photos[birdID])
	if out == nil {
		out = []photos.Photo{}
	}
	return out, nil
}
