package birds

import (
	"strings"
	"time"
	"unicode/utf8"

	"bird-collector/internal/platform/apperr"
)

const (
	MaxNameLen        = 100
	MaxBreedLen       = 100
	MaxDescriptionLen = 250
)

// Bird representa un ave registrada por su dueño.
// OwnerUserID se fija al crear y nunca se reasigna; Name tampoco cambia.
type Bird struct {
	ID          string
	OwnerUserID string

	Name        string
	Breed       string
	Description string
	Age         int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si el usuario es dueño del ave.
func (b Bird) OwnedBy(userID string) bool {
	return b.OwnerUserID != "" && b.OwnerUserID == strings.TrimSpace(userID)
}

type CreateInput struct {
	Name        string
	Breed       string
	Description string
	Age         int
}

// UpdateInput no tiene Name: renombrar no está permitido.
// Punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Breed       *string
	Description *string
	Age         *int
}

// NewBird construye un Bird validado para owner. No asigna ID ni timestamps.
func NewBird(ownerUserID string, in CreateInput) (Bird, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Bird{}, apperr.Validation(opCreate, "owner required")
	}

	b := Bird{
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Description: strings.TrimSpace(in.Description),
		Age:         in.Age,
	}
	if b.Name == "" {
		return Bird{}, apperr.Validation(opCreate, "name required")
	}
	if err := b.validate(opCreate); err != nil {
		return Bird{}, err
	}
	return b, nil
}

// ApplyUpdate devuelve una copia de b con los cambios de in aplicados.
// Name y OwnerUserID se preservan siempre.
func ApplyUpdate(b Bird, in UpdateInput) (Bird, error) {
	out := b
	if in.Breed != nil {
		out.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Description != nil {
		out.Description = strings.TrimSpace(*in.Description)
	}
	if in.Age != nil {
		out.Age = *in.Age
	}
	if err := out.validate(opUpdate); err != nil {
		return Bird{}, err
	}
	return out, nil
}

func (b Bird) validate(op string) error {
	if utf8.RuneCountInString(b.Name) > MaxNameLen {
		return apperr.Validation(op, "name must be at most 100 characters")
	}
	if b.Breed == "" {
		return apperr.Validation(op, "breed required")
	}
	if utf8.RuneCountInString(b.Breed) > MaxBreedLen {
		return apperr.Validation(op, "breed must be at most 100 characters")
	}
	if utf8.RuneCountInString(b.Description) > MaxDescriptionLen {
		return apperr.Validation(op, "description must be at most 250 characters")
	}
	if b.Age < 0 {
		return apperr.Validation(op, "age must be >= 0")
	}
	return nil
}
