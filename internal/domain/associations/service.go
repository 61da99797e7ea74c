package associations

import (
	"context"
	"fmt"
	"time"

	"bird-collector/internal/domain/birds"
	"bird-collector/internal/domain/feedings"
	"bird-collector/internal/domain/photos"
	"bird-collector/internal/domain/toys"
	"bird-collector/internal/platform/logger"
)

type BirdAuthorizer interface {
	Authorize(ctx context.Context, actorUserID, birdID string) (birds.Bird, error)
}

type ToyCatalog interface {
	GetByID(ctx context.Context, id string) (toys.Toy, error)
	List(ctx context.Context) ([]toys.Toy, error)
	ListByIDs(ctx context.Context, ids []string) ([]toys.Toy, error)
}

type FeedingLog interface {
	Add(ctx context.Context, birdID string, date time.Time, meal feedings.Meal) (feedings.Feeding, error)
	ListByBird(ctx context.Context, birdID string) ([]feedings.Feeding, error)
}

type PhotoLister interface {
	ListByBird(ctx context.Context, birdID string) ([]photos.Photo, error)
}

// Service muta las relaciones de un ave siempre después de validar
// existencia (404) y ownership (403).
type Service struct {
	birds    BirdAuthorizer
	toys     ToyCatalog
	links    LinkRepository
	feedings FeedingLog
	photos   PhotoLister
	log      logger.Logger
}

type Deps struct {
	Birds    BirdAuthorizer
	Toys     ToyCatalog
	Links    LinkRepository
	Feedings FeedingLog
	Photos   PhotoLister
	Logger   logger.Logger
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		birds:    d.Birds,
		toys:     d.Toys,
		links:    d.Links,
		feedings: d.Feedings,
		photos:   d.Photos,
		log:      log.With(map[string]any{"component": "associations"}),
	}
}

// AddToy asocia el toy al ave. Repetirlo no cambia nada.
func (s *Service) AddToy(ctx context.Context, actorUserID, birdID, toyID string) error {
	b, t, err := s.authorizePair(ctx, actorUserID, birdID, toyID)
	if err != nil {
		return err
	}
	if err := s.links.Link(ctx, b.ID, t.ID); err != nil {
		return fmt.Errorf("associations.add_toy: %w", err)
	}
	s.log.Debug("toy linked", map[string]any{"bird_id": b.ID, "toy_id": t.ID})
	return nil
}

// RemoveToy quita la asociación si existe. El toy no se borra.
func (s *Service) RemoveToy(ctx context.Context, actorUserID, birdID, toyID string) error {
	b, t, err := s.authorizePair(ctx, actorUserID, birdID, toyID)
	if err != nil {
		return err
	}
	if err := s.links.Unlink(ctx, b.ID, t.ID); err != nil {
		return fmt.Errorf("associations.remove_toy: %w", err)
	}
	s.log.Debug("toy unlinked", map[string]any{"bird_id": b.ID, "toy_id": t.ID})
	return nil
}

func (s *Service) authorizePair(ctx context.Context, actorUserID, birdID, toyID string) (birds.Bird, toys.Toy, error) {
	b, err := s.birds.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return birds.Bird{}, toys.Toy{}, err
	}
	t, err := s.toys.GetByID(ctx, toyID)
	if err != nil {
		return birds.Bird{}, toys.Toy{}, err
	}
	return b, t, nil
}

// ListToys devuelve los toys asociados al ave.
func (s *Service) ListToys(ctx context.Context, actorUserID, birdID string) ([]toys.Toy, error) {
	b, err := s.birds.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return nil, err
	}
	return s.toysFor(ctx, b.ID)
}

func (s *Service) toysFor(ctx context.Context, birdID string) ([]toys.Toy, error) {
	ids, err := s.links.ToyIDsForBird(ctx, birdID)
	if err != nil {
		return nil, err
	}
	return s.toys.ListByIDs(ctx, ids)
}

type FeedingInput struct {
	Date string // YYYY-MM-DD
	Meal string // B/L/D o etiqueta; vacío => Breakfast
}

// AddFeeding registra una comida. Meal o fecha inválidas => ValidationError
// y no se guarda nada.
func (s *Service) AddFeeding(ctx context.Context, actorUserID, birdID string, in FeedingInput) (feedings.Feeding, error) {
	b, err := s.birds.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return feedings.Feeding{}, err
	}

	date, err := feedings.ParseDate(in.Date)
	if err != nil {
		return feedings.Feeding{}, err
	}
	meal, err := feedings.ParseMeal(in.Meal)
	if err != nil {
		return feedings.Feeding{}, err
	}

	return s.feedings.Add(ctx, b.ID, date, meal)
}

// ListFeedings: fecha desc, empates por orden de inserción.
func (s *Service) ListFeedings(ctx context.Context, actorUserID, birdID string) ([]feedings.Feeding, error) {
	b, err := s.birds.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return nil, err
	}
	return s.feedings.ListByBird(ctx, b.ID)
}

// Detail es la vista completa de un ave.
type Detail struct {
	Bird          birds.Bird
	Toys          []toys.Toy
	AvailableToys []toys.Toy // del catálogo, todavía no asociados
	Feedings      []feedings.Feeding
	Photos        []photos.Photo
}

func (s *Service) Detail(ctx context.Context, actorUserID, birdID string) (Detail, error) {
	b, err := s.birds.Authorize(ctx, actorUserID, birdID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Bird: b}
	if d.Toys, err = s.toysFor(ctx, b.ID); err != nil {
		return Detail{}, err
	}

	all, err := s.toys.List(ctx)
	if err != nil {
		return Detail{}, err
	}
	linked := make(map[string]struct{}, len(d.Toys))
	for _, t := range d.Toys {
		linked[t.ID] = struct{}{}
	}
	d.AvailableToys = make([]toys.Toy, 0, len(all))
	for _, t := range all {
		if _, ok := linked[t.ID]; !ok {
			d.AvailableToys = append(d.AvailableToys, t)
		}
	}

	if d.Feedings, err = s.feedings.ListByBird(ctx, b.ID); err != nil {
		return Detail{}, err
	}
	if d.Photos, err = s.photos.ListByBird(ctx, b.ID); err != nil {
		return Detail{}, err
	}
	return d, nil
}

