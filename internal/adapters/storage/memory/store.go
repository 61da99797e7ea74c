package memory

import (
	"errors"
	"strings"
	"sync"

	"bird-collector/internal/adapters/storage"
	"bird-collector/internal/domain/birds"
	"bird-collector/internal/domain/feedings"
	"bird-collector/internal/domain/photos"
	"bird-collector/internal/domain/toys"
	"bird-collector/internal/platform/apperr"
)

var (
	ErrNotFound = apperr.ErrNotFound
)

// Store es el estado compartido de todos los repos in-memory.
// Un solo mutex: las cascadas (borrar ave => feedings, fotos, links)
// se aplican bajo el mismo lock.
type Store struct {
	mu sync.RWMutex

	birds    map[string]birds.Bird
	toys     map[string]toys.Toy
	links    map[string][]string // birdID -> toyIDs en orden de asociación
	feedings map[string][]feedings.Feeding
	photos   map[string][]photos.Photo
}

func NewStore() *Store {
	return &Store{
		birds:    make(map[string]birds.Bird),
		toys:     make(map[string]toys.Toy),
		links:    make(map[string][]string),
		feedings: make(map[string][]feedings.Feeding),
		photos:   make(map[string][]photos.Photo),
	}
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New(kind + " id required")
	}
	return nil
}

// deleteBirdLocked borra el ave y sus hijos. Requiere s.mu tomado.
func (s *Store) deleteBirdLocked(id string) {
	delete(s.birds, id)
	delete(s.links, id)
	delete(s.feedings, id)
	delete(s.photos, id)
}

// NewRepos arma todos los repos sobre un Store nuevo.
func NewRepos() storage.Repos {
	s := NewStore()
	return storage.Repos{
		Birds:    NewBirdRepo(s),
		Toys:     NewToyRepo(s),
		Links:    NewLinkRepo(s),
		Feedings: NewFeedingRepo(s),
		Photos:   NewPhotoRepo(s),
	}
}
