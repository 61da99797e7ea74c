package feedings

import "context"

type Repository interface {
	Create(ctx context.Context, f Feeding) error

	// ListByBird devuelve las feedings por fecha desc; a igual fecha,
	// en orden de inserción.
	ListByBird(ctx context.Context, birdID string) ([]Feeding, error)
}
