package photos

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"bird-collector/internal/domain/birds"
	"bird-collector/internal/platform/apperr"
	"bird-collector/internal/ports/blobstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://s3.us-east-1.amazonaws.com/"

type testAuth struct {
	birds map[string]birds.Bird
}

func (a *testAuth) Authorize(ctx context.Context, actorUserID, birdID string) (birds.Bird, error) {
	b, ok := a.birds[birdID]
	if !ok {
		return birds.Bird{}, apperr.NotFound("test", "bird not found")
	}
	if !b.OwnedBy(actorUserID) {
		return birds.Bird{}, apperr.Forbidden("test", "not owner")
	}
	return b, nil
}

type testRepo struct {
	items []Photo
	err   error
}

func (r *testRepo) Create(ctx context.Context, p Photo) error {
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, p)
	return nil
}

func (r *testRepo) ListByBird(ctx context.Context, birdID string) ([]Photo, error) {
	out := make([]Photo, 0)
	for _, p := range r.items {
		if p.BirdID == birdID {
			out = append(out, p)
		}
	}
	return out, nil
}

type testStore struct {
	base string
	err  error
	puts map[string]string
}

func (s *testStore) URL(bucket, key string) string {
	return blobstore.RetrievalURL(s.base, bucket, key)
}

func (s *testStore) Put(ctx context.Context, bucket, key string, content io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.puts[bucket+"/"+key] = string(b)
	return s.URL(bucket, key), nil
}

type fixture struct {
	svc   *Service
	repo  *testRepo
	store *testStore
}

func newFixture() fixture {
	auth := &testAuth{birds: map[string]birds.Bird{
		"bird-1": {ID: "bird-1", OwnerUserID: "owner-1", Name: "Tweety"},
	}}
	repo := &testRepo{}
	store := &testStore{base: testBase, puts: map[string]string{}}
	svc := NewService(repo, store, auth, Options{Bucket: "catcollector-avatar-946"}, nil)
	svc.newToken = func() string { return "jdbw7f" }
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return fixture{svc: svc, repo: repo, store: store}
}

func TestIngest_Success(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "bird-1",
		Filename:    "funny_bird.png",
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, StatePersisted, res.State)
	assert.Equal(t, "jdbw7f.png", res.Key)
	assert.Equal(t, "https://s3.us-east-1.amazonaws.com/catcollector-avatar-946/jdbw7f.png", res.Photo.URL)
	assert.Equal(t, "bird-1", res.Photo.BirdID)
	assert.Equal(t, "png-bytes", f.store.puts["catcollector-avatar-946/jdbw7f.png"])
	require.Len(t, f.repo.items, 1)
}

func TestIngest_BareTokenWithoutExtension(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "bird-1",
		Filename:    "README",
		Content:     strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "jdbw7f", res.Key)
	assert.True(t, strings.HasSuffix(res.Photo.URL, "/jdbw7f"))
}

func TestIngest_EmptyOrAbsentIsNoop(t *testing.T) {
	for name, content := range map[string]io.Reader{
		"nil":   nil,
		"empty": strings.NewReader(""),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()

			res, err := f.svc.Ingest(context.Background(), IngestInput{
				ActorUserID: "owner-1",
				BirdID:      "bird-1",
				Filename:    "x.png",
				Content:     content,
			})
			require.NoError(t, err)
			assert.False(t, res.Created)
			assert.Empty(t, f.store.puts)
			assert.Empty(t, f.repo.items)
		})
	}
}

func TestIngest_AuthorizationBeforeAnything(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "intruder",
		BirdID:      "bird-1",
		Filename:    "x.png",
		Content:     strings.NewReader("data"),
	})
	assert.ErrorIs(t, err, apperr.ErrAuthorization)

	_, err = f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "missing",
		Content:     strings.NewReader("data"),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Empty(t, f.store.puts)
	assert.Empty(t, f.repo.items)
}

func TestIngest_UploadFailureCreatesNoPhoto(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("connection reset")

	res, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "bird-1",
		Filename:    "x.png",
		Content:     strings.NewReader("data"),
	})
	assert.ErrorIs(t, err, apperr.ErrUpload)
	assert.Equal(t, StateUploadFailed, res.State)
	assert.False(t, res.Created)
	assert.Empty(t, f.repo.items)
}

func TestIngest_PersistFailureLeavesOrphanBlob(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("db down")

	res, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "bird-1",
		Filename:    "x.png",
		Content:     strings.NewReader("data"),
	})
	assert.ErrorIs(t, err, apperr.ErrPersist)
	assert.Equal(t, StatePersistFailed, res.State)
	assert.False(t, res.Created)
	assert.Contains(t, f.store.puts, "catcollector-avatar-946/jdbw7f.png")
}

func TestIngest_URLTooLongRejectedBeforeUpload(t *testing.T) {
	f := newFixture()
	f.store.base = "https://" + strings.Repeat("a", MaxURLLen) + "/"

	res, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "bird-1",
		Filename:    "x.png",
		Content:     strings.NewReader("data"),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, StateKeyAssigned, res.State)
	assert.Empty(t, f.store.puts)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestIngest_UnreadableStream(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Ingest(context.Background(), IngestInput{
		ActorUserID: "owner-1",
		BirdID:      "bird-1",
		Filename:    "x.png",
		Content:     errReader{},
	})
	assert.ErrorIs(t, err, apperr.ErrUpload)
	assert.Empty(t, f.repo.items)
}

func TestListByBird(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Ingest(ctx, IngestInput{ActorUserID: "owner-1", BirdID: "bird-1", Filename: "a.png", Content: strings.NewReader("a")})
	require.NoError(t, err)

	items, err := f.svc.ListByBird(ctx, "owner-1", "bird-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.svc.ListByBird(ctx, "intruder", "bird-1")
	assert.ErrorIs(t, err, apperr.ErrAuthorization)
}
