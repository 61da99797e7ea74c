// Package storage agrupa los repos de un backend (memory, postgres o sqlite).
package storage

import (
	"bird-collector/internal/domain/associations"
	"bird-collector/internal/domain/birds"
	"bird-collector/internal/domain/feedings"
	"bird-collector/internal/domain/photos"
	"bird-collector/internal/domain/toys"
)

type Repos struct {
	Birds    birds.Repository
	Toys     toys.Repository
	Links    associations.LinkRepository
	Feedings feedings.Repository
	Photos   photos.Repository
}
