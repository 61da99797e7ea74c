package toys

import (
	"strings"
	"time"
	"unicode/utf8"

	"bird-collector/internal/platform/apperr"
)

const (
	MaxNameLen  = 50
	MaxColorLen = 20
)

// Toy es parte del catálogo compartido: no tiene dueño y
// puede estar asociado a aves de distintos usuarios.
type Toy struct {
	ID    string
	Name  string
	Color string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Input struct {
	Name  string
	Color string
}

func (in Input) normalize(op string) (Input, error) {
	out := Input{
		Name:  strings.TrimSpace(in.Name),
		Color: strings.TrimSpace(in.Color),
	}
	if out.Name == "" {
		return Input{}, apperr.Validation(op, "name required")
	}
	if utf8.RuneCountInString(out.Name) > MaxNameLen {
		return Input{}, apperr.Validation(op, "name must be at most 50 characters")
	}
	if out.Color == "" {
		return Input{}, apperr.Validation(op, "color required")
	}
	if utf8.RuneCountInString(out.Color) > MaxColorLen {
		return Input{}, apperr.Validation(op, "color must be at most 20 characters")
	}
	return out, nil
}
