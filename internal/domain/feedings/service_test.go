package feedings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []Feeding
	err   error
}

func (r *testRepo) Create(ctx context.Context, f Feeding) error {
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, f)
	return nil
}

func (r *testRepo) ListByBird(ctx context.Context, birdID string) ([]Feeding, error) {
	out := make([]Feeding, 0)
	for _, f := range r.items {
		if f.BirdID == birdID {
			out = append(out, f)
		}
	}
	return out, nil
}

func TestAdd(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	fixed := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	f, err := svc.Add(context.Background(), "bird-1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), MealDinner)
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, fixed, f.CreatedAt)
	assert.Equal(t, MealDinner, f.Meal)
	assert.Len(t, repo.items, 1)
}

func TestAdd_InvalidMealStoresNothing(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), "bird-1", time.Now(), Meal("X"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.items)
}

func TestAdd_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&testRepo{err: boom})

	_, err := svc.Add(context.Background(), "bird-1", time.Now(), MealLunch)
	assert.ErrorIs(t, err, boom)
}

func TestListByBird_RequiresBird(t *testing.T) {
	svc := NewService(&testRepo{})
	_, err := svc.ListByBird(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
