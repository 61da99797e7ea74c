package birds

import "context"

type Repository interface {
	Create(ctx context.Context, b Bird) error
	Update(ctx context.Context, b Bird) error
	GetByID(ctx context.Context, id string) (Bird, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Bird, error)

	// Delete borra el ave junto con sus feedings, fotos y asociaciones a toys,
	// en una sola operación. Los toys no se borran.
	Delete(ctx context.Context, id string) error

	// DeleteByOwner aplica Delete a todas las aves del owner. Devuelve cuántas borró.
	DeleteByOwner(ctx context.Context, ownerUserID string) (int, error)
}
