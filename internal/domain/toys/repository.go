package toys

import "context"

type Repository interface {
	Create(ctx context.Context, t Toy) error
	Update(ctx context.Context, t Toy) error
	GetByID(ctx context.Context, id string) (Toy, error)
	List(ctx context.Context) ([]Toy, error)
	ListByIDs(ctx context.Context, ids []string) ([]Toy, error)

	// Delete borra el toy y sus filas en bird_toys; las aves no se tocan.
	Delete(ctx context.Context, id string) error
}
