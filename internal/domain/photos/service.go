package photos

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"bird-collector/internal/domain/birds"
	"bird-collector/internal/platform/apperr"
	"bird-collector/internal/platform/logger"
	"bird-collector/internal/ports/blobstore"

	"github.com/google/uuid"
)

const opIngest = "photos.ingest"

// Authorizer verifica que el actor sea dueño del ave.
type Authorizer interface {
	Authorize(ctx context.Context, actorUserID, birdID string) (birds.Bird, error)
}

type Options struct {
	Bucket string
}

type Service struct {
	repo   Repository
	store  blobstore.Store
	auth   Authorizer
	bucket string
	log    logger.Logger

	now      func() time.Time
	newToken func() string
}

func NewService(repo Repository, store blobstore.Store, auth Authorizer, opts Options, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		store:    store,
		auth:     auth,
		bucket:   opts.Bucket,
		log:      log.With(map[string]any{"component": "photos"}),
		now:      time.Now,
		newToken: NewToken,
	}
}

type IngestInput struct {
	ActorUserID string
	BirdID      string
	Filename    string

	// Content nil o vacío => no-op exitoso.
	Content io.Reader
}

// IngestResult describe cómo terminó el intento.
// Created=false sin error significa que no había archivo.
type IngestResult struct {
	Photo   Photo
	Key     string
	Created bool
	State   State
}

// Ingest sube el archivo al blob store y recién después crea el Photo.
//
//	RECEIVED -> KEY_ASSIGNED -> UPLOADING -> UPLOADED -> PERSISTED
//	UPLOADING -> UPLOAD_FAILED (sin registro)
//	UPLOADED  -> PERSIST_FAILED (blob huérfano, queda en el log)
//
// No hay reintentos en ninguna etapa.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (IngestResult, error) {
	res := IngestResult{State: StateReceived}
	fields := map[string]any{"bird_id": in.BirdID, "actor_user_id": in.ActorUserID}

	bird, err := s.auth.Authorize(ctx, in.ActorUserID, in.BirdID)
	if err != nil {
		return res, err
	}

	content, ok, err := nonEmpty(in.Content)
	if err != nil {
		res.State = StateUploadFailed
		s.log.Error("photo stream read failed", merge(fields, map[string]any{"error": err}))
		return res, apperr.Upload(opIngest, err)
	}
	if !ok {
		s.log.Debug("photo ingest no-op: empty payload", fields)
		return res, nil
	}

	key := Key(s.newToken(), in.Filename)
	url := s.store.URL(s.bucket, key)
	res.Key = key
	res.State = StateKeyAssigned
	fields = merge(fields, map[string]any{"key": key, "bucket": s.bucket})
	s.log.Debug("photo key assigned", fields)

	if len(url) > MaxURLLen {
		return res, apperr.Validation(opIngest, "photo url too long")
	}

	res.State = StateUploading
	s.log.Info("photo upload started", fields)

	url, err = s.store.Put(ctx, s.bucket, key, content)
	if err != nil {
		res.State = StateUploadFailed
		s.log.Error("photo upload failed", merge(fields, map[string]any{"error": err}))
		return res, apperr.Upload(opIngest, err)
	}
	res.State = StateUploaded
	fields = merge(fields, map[string]any{"url": url})
	s.log.Info("photo uploaded", fields)

	p := Photo{
		ID:        uuid.NewString(),
		BirdID:    bird.ID,
		URL:       url,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		res.State = StatePersistFailed
		s.log.Error("photo persist failed, orphan blob left in storage", merge(fields, map[string]any{"error": err}))
		return res, apperr.Persist(opIngest, err)
	}

	res.Photo = p
	res.Created = true
	res.State = StatePersisted
	s.log.Info("photo persisted", merge(fields, map[string]any{"photo_id": p.ID}))
	return res, nil
}

// ListByBird devuelve las fotos del ave si el actor es su dueño.
func (s *Service) ListByBird(ctx context.Context, actorUserID, birdID string) ([]Photo, error) {
	b, err := s.auth.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBird(ctx, b.ID)
}

// nonEmpty mira el primer byte sin consumirlo.
func nonEmpty(r io.Reader) (io.Reader, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return br, true, nil
}

func merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

