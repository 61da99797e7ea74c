// Package storagetest tiene las pruebas compartidas por todos los backends
// de storage. Cada backend llama Run con su propio constructor.
package storagetest

import (
	"context"
	"testing"
	"time"

	"bird-collector/internal/adapters/storage"
	"bird-collector/internal/domain/birds"
	"bird-collector/internal/domain/feedings"
	"bird-collector/internal/domain/photos"
	"bird-collector/internal/domain/toys"
	"bird-collector/internal/platform/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run ejecuta el contrato contra repos nuevos por subtest.
func Run(t *testing.T, newRepos func(t *testing.T) storage.Repos) {
	t.Run("BirdRoundTrip", func(t *testing.T) { birdRoundTrip(t, newRepos(t)) })
	t.Run("BirdUpdateKeepsName", func(t *testing.T) { birdUpdateKeepsName(t, newRepos(t)) })
	t.Run("LinkIdempotent", func(t *testing.T) { linkIdempotent(t, newRepos(t)) })
	t.Run("FeedingOrder", func(t *testing.T) { feedingOrder(t, newRepos(t)) })
	t.Run("DeleteBirdCascades", func(t *testing.T) { deleteBirdCascades(t, newRepos(t)) })
	t.Run("DeleteToyStripsLinks", func(t *testing.T) { deleteToyStripsLinks(t, newRepos(t)) })
	t.Run("DeleteByOwner", func(t *testing.T) { deleteByOwner(t, newRepos(t)) })
	t.Run("ListByIDsKeepsOrder", func(t *testing.T) { listByIDsKeepsOrder(t, newRepos(t)) })
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func putBird(t *testing.T, r storage.Repos, owner, name string) birds.Bird {
	t.Helper()
	b := birds.Bird{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        name,
		Breed:       "Canary",
		Age:         1,
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	require.NoError(t, r.Birds.Create(context.Background(), b))
	return b
}

func putToy(t *testing.T, r storage.Repos, name string, offset time.Duration) toys.Toy {
	t.Helper()
	ty := toys.Toy{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     "red",
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
	}
	require.NoError(t, r.Toys.Create(context.Background(), ty))
	return ty
}

func putFeeding(t *testing.T, r storage.Repos, birdID, date string, meal feedings.Meal) feedings.Feeding {
	t.Helper()
	d, err := feedings.ParseDate(date)
	require.NoError(t, err)
	f, err := feedings.NewFeeding(birdID, d, meal)
	require.NoError(t, err)
	f.ID = uuid.NewString()
	f.CreatedAt = base
	require.NoError(t, r.Feedings.Create(context.Background(), f))
	return f
}

func birdRoundTrip(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	b := putBird(t, r, "alice", "Tweety")

	got, err := r.Birds.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Name, got.Name)
	assert.Equal(t, "alice", got.OwnerUserID)
	assert.True(t, base.Equal(got.CreatedAt))

	_, err = r.Birds.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := r.Birds.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func birdUpdateKeepsName(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	b := putBird(t, r, "alice", "Tweety")

	changed := b
	changed.Name = "Renamed"
	changed.Breed = "Parrot"
	changed.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, r.Birds.Update(ctx, changed))

	got, err := r.Birds.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tweety", got.Name)
	assert.Equal(t, "Parrot", got.Breed)

	err = r.Birds.Update(ctx, birds.Bird{ID: "missing", Breed: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func linkIdempotent(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	b := putBird(t, r, "alice", "Tweety")
	bell := putToy(t, r, "Bell", 0)
	mirror := putToy(t, r, "Mirror", time.Minute)

	require.NoError(t, r.Links.Link(ctx, b.ID, mirror.ID))
	require.NoError(t, r.Links.Link(ctx, b.ID, bell.ID))
	require.NoError(t, r.Links.Link(ctx, b.ID, mirror.ID))

	ids, err := r.Links.ToyIDsForBird(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{mirror.ID, bell.ID}, ids)

	require.NoError(t, r.Links.Unlink(ctx, b.ID, mirror.ID))
	require.NoError(t, r.Links.Unlink(ctx, b.ID, mirror.ID))

	ids, err = r.Links.ToyIDsForBird(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bell.ID}, ids)
}

func feedingOrder(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	b := putBird(t, r, "alice", "Tweety")
	other := putBird(t, r, "alice", "Polly")

	first := putFeeding(t, r, b.ID, "2024-01-01", feedings.MealBreakfast)
	latest := putFeeding(t, r, b.ID, "2024-01-02", feedings.MealDinner)
	second := putFeeding(t, r, b.ID, "2024-01-01", feedings.MealLunch)
	putFeeding(t, r, other.ID, "2024-06-01", feedings.MealLunch)

	items, err := r.Feedings.ListByBird(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, latest.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, second.ID, items[2].ID)
	assert.Equal(t, feedings.MealDinner, items[0].Meal)
	assert.Equal(t, "2024-01-02", items[0].Date.Format(feedings.DateLayout))
}

func deleteBirdCascades(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	b := putBird(t, r, "alice", "Tweety")
	bell := putToy(t, r, "Bell", 0)
	require.NoError(t, r.Links.Link(ctx, b.ID, bell.ID))
	putFeeding(t, r, b.ID, "2024-01-01", feedings.MealBreakfast)
	require.NoError(t, r.Photos.Create(ctx, photos.Photo{
		ID:        uuid.NewString(),
		BirdID:    b.ID,
		URL:       "https://s3.us-east-1.amazonaws.com/bucket/abc123.png",
		CreatedAt: base,
	}))

	require.NoError(t, r.Birds.Delete(ctx, b.ID))

	_, err := r.Birds.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	fs, err := r.Feedings.ListByBird(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, fs)

	ps, err := r.Photos.ListByBird(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, ps)

	ids, err := r.Links.ToyIDsForBird(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// el toy no es parte de la cascada
	_, err = r.Toys.GetByID(ctx, bell.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, r.Birds.Delete(ctx, b.ID), apperr.ErrNotFound)
}

func deleteToyStripsLinks(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	b := putBird(t, r, "alice", "Tweety")
	bell := putToy(t, r, "Bell", 0)
	mirror := putToy(t, r, "Mirror", time.Minute)
	require.NoError(t, r.Links.Link(ctx, b.ID, bell.ID))
	require.NoError(t, r.Links.Link(ctx, b.ID, mirror.ID))

	require.NoError(t, r.Toys.Delete(ctx, bell.ID))

	ids, err := r.Links.ToyIDsForBird(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{mirror.ID}, ids)

	assert.ErrorIs(t, r.Toys.Delete(ctx, bell.ID), apperr.ErrNotFound)
}

func deleteByOwner(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	a1 := putBird(t, r, "alice", "Tweety")
	putBird(t, r, "alice", "Polly")
	keep := putBird(t, r, "bob", "Kiwi")
	putFeeding(t, r, a1.ID, "2024-01-01", feedings.MealBreakfast)

	n, err := r.Birds.DeleteByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := r.Birds.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, left)

	fs, err := r.Feedings.ListByBird(ctx, a1.ID)
	require.NoError(t, err)
	assert.Empty(t, fs)

	_, err = r.Birds.GetByID(ctx, keep.ID)
	assert.NoError(t, err)

	n, err = r.Birds.DeleteByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func listByIDsKeepsOrder(t *testing.T, r storage.Repos) {
	ctx := context.Background()
	a := putToy(t, r, "A", 0)
	b := putToy(t, r, "B", time.Minute)
	c := putToy(t, r, "C", 2*time.Minute)

	got, err := r.Toys.ListByIDs(ctx, []string{c.ID, "missing", a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	all, err := r.Toys.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
}
