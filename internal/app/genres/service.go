package genres

import (
	"context"

	"gigbook/shared/go/models"
)

// Store defines persistence operations for genres
type Store interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
}

// Service exposes the provisioned genre list for form selects. Genres are
// seeded by migration and never mutated here.
type Service interface {
	List(ctx context.Context) ([]models.Genre, error)
}

type service struct {
	store Store
}

// New constructs a genres Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListGenres(ctx)
}
