package photos

import "context"

type Repository interface {
	Create(ctx context.Context, p Photo) error

	// ListByBird devuelve las fotos en orden de creación.
	ListByBird(ctx context.Context, birdID string) ([]Photo, error)
}
