// Package memory es un blob store en memoria para dev y tests.
package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"bird-collector/internal/ports/blobstore"
)

type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte // "bucket/key" -> contenido
}

func New(baseURL string) *Store {
	return &Store{
		baseURL: baseURL,
		objects: make(map[string][]byte),
	}
}

func (s *Store) URL(bucket, key string) string {
	return blobstore.RetrievalURL(s.baseURL, bucket, key)
}

func (s *Store) Put(ctx context.Context, bucket, key string, content io.Reader) (string, error) {
	if strings.TrimSpace(bucket) == "" || strings.TrimSpace(key) == "" {
		return "", errors.New("bucket and key required")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[bucket+"/"+key] = buf.Bytes()
	s.mu.Unlock()

	return s.URL(bucket, key), nil
}

// Get devuelve el contenido guardado, si existe.
func (s *Store) Get(bucket, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[bucket+"/"+key]
	return b, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
