package venues

import (
	"context"

	"gigbook/shared/go/models"
)

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	ListVenuesByArea(ctx context.Context) ([]models.VenueGroup, error)
	SearchVenues(ctx context.Context, term string) ([]models.Venue, error)
	GetVenue(ctx context.Context, id int64) (*models.VenueDetail, error)
	VenueChoices(ctx context.Context) ([]models.RefOption, error)
}

// Service coordinates venue-related operations
type Service interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	Delete(ctx context.Context, id int64) error
	ListByArea(ctx context.Context) ([]models.VenueGroup, error)
	Search(ctx context.Context, term string) ([]models.Venue, error)
	Get(ctx context.Context, id int64) (*models.VenueDetail, error)
	Choices(ctx context.Context) ([]models.RefOption, error)
}

type service struct {
	store Store
}

// New constructs a venues Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateVenue(ctx, id, venue)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}

func (s *service) ListByArea(ctx context.Context) ([]models.VenueGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListVenuesByArea(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchVenues(ctx, term)
}

func (s *service) Get(ctx context.Context, id int64) (*models.VenueDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Choices(ctx context.Context) ([]models.RefOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.VenueChoices(ctx)
}
