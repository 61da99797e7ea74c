package memory

import (
	"context"
	"errors"
	"slices"
	"sort"

	"bird-collector/internal/domain/toys"
)

type toyRepo struct{ s *Store }

func NewToyRepo(s *Store) toys.Repository {
	return &toyRepo{s: s}
}

func (r *toyRepo) Create(ctx context.Context, t toys.Toy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := requireID("toy", t.ID); err != nil {
		return err
	}
	if _, exists := r.s.toys[t.ID]; exists {
		return errors.New("toy already exists")
	}
	r.s.toys[t.ID] = t
	return nil
}

func (r *toyRepo) Update(ctx context.Context, t toys.Toy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.toys[t.ID]
	if !exists {
		return ErrNotFound
	}
	t.CreatedAt = current.CreatedAt
	r.s.toys[t.ID] = t
	return nil
}

func (r *toyRepo) GetByID(ctx context.Context, id string) (toys.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.toys[id]
	if !ok {
		return toys.Toy{}, ErrNotFound
	}
	return t, nil
}

func (r *toyRepo) List(ctx context.Context) ([]toys.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]toys.Toy, 0, len(r.s.toys))
	for _, t := range r.s.toys {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListByIDs respeta el orden de ids y omite los que no existen.
func (r *toyRepo) ListByIDs(ctx context.Context, ids []string) ([]toys.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]toys.Toy, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.toys[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *toyRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.toys[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.toys, id)
	for birdID, ids := range r.s.links {
		r.s.links[birdID] = slices.DeleteFunc(ids, func(v string) bool { return v == id })
	}
	return nil
}
