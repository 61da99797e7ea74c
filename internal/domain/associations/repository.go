package associations

import "context"

// LinkRepository guarda las filas bird_toys. (bird, toy) es único.
type LinkRepository interface {
	// Link no falla si el par ya existe.
	Link(ctx context.Context, birdID, toyID string) error
	// Unlink no falla si el par no existe.
	Unlink(ctx context.Context, birdID, toyID string) error
	ToyIDsForBird(ctx context.Context, birdID string) ([]string, error)
}
