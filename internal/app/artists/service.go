package artists

import (
	"context"

	"gigbook/shared/go/models"
)

// Store defines persistence operations for artists
type Store interface {
	CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
	ListArtists(ctx context.Context) ([]models.ArtistRef, error)
	SearchArtists(ctx context.Context, term string) ([]models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.ArtistDetail, error)
	ArtistChoices(ctx context.Context) ([]models.RefOption, error)
}

// Service coordinates artist-related operations
type Service interface {
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.ArtistRef, error)
	Search(ctx context.Context, term string) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (*models.ArtistDetail, error)
	Choices(ctx context.Context) ([]models.RefOption, error)
}

type service struct {
	store Store
}

// New constructs an artists Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.ArtistRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchArtists(ctx, term)
}

func (s *service) Get(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetArtist(ctx, id)
}

func (s *service) Choices(ctx context.Context) ([]models.RefOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ArtistChoices(ctx)
}
