package shows

import (
	"context"
	"errors"
	"time"

	"gigbook/internal/store"
	"gigbook/shared/go/models"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, show *models.Show) (*models.Show, error)
	ListShows(ctx context.Context) ([]models.ShowWithDetails, error)
	UpcomingShows(ctx context.Context, now time.Time) ([]models.ShowWithDetails, error)
	PastShows(ctx context.Context, now time.Time) ([]models.ShowWithDetails, error)
	SearchShows(ctx context.Context, term string) ([]models.ShowWithDetails, error)
}

// ArtistFinder validates that the booked artist exists
type ArtistFinder interface {
	Get(ctx context.Context, id int64) (*models.ArtistDetail, error)
}

// VenueFinder validates that the booked venue exists
type VenueFinder interface {
	Get(ctx context.Context, id int64) (*models.VenueDetail, error)
}

// Service coordinates show-related operations
type Service interface {
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
	List(ctx context.Context) ([]models.ShowWithDetails, error)
	Upcoming(ctx context.Context) ([]models.ShowWithDetails, error)
	Past(ctx context.Context) ([]models.ShowWithDetails, error)
	Search(ctx context.Context, term string) ([]models.ShowWithDetails, error)
}

type service struct {
	store   Store
	artists ArtistFinder
	venues  VenueFinder
}

// New constructs a shows Service. The finders guard bookings against ids
// that are not on the selection lists; the foreign keys backstop races.
func New(store Store, artists ArtistFinder, venues VenueFinder) Service {
	return &service{store: store, artists: artists, venues: venues}
}

func (s *service) Create(ctx context.Context, show *models.Show) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.artists != nil && show.ArtistID > 0 {
		if _, err := s.artists.Get(ctx, show.ArtistID); err != nil {
			if errors.Is(err, store.ErrArtistNotFound) {
				return nil, store.NewValidationError("artist_id", "unknown artist selected")
			}
			return nil, err
		}
	}
	if s.venues != nil && show.VenueID > 0 {
		if _, err := s.venues.Get(ctx, show.VenueID); err != nil {
			if errors.Is(err, store.ErrVenueNotFound) {
				return nil, store.NewValidationError("venue_id", "unknown venue selected")
			}
			return nil, err
		}
	}

	return s.store.CreateShow(ctx, show)
}

func (s *service) List(ctx context.Context) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx)
}

// Upcoming returns shows starting at or after the current instant. The
// boundary is inclusive on both sides, matching the detail-page split.
func (s *service) Upcoming(ctx context.Context) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpcomingShows(ctx, time.Now())
}

// Past returns shows starting at or before the current instant.
func (s *service) Past(ctx context.Context) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.PastShows(ctx, time.Now())
}

func (s *service) Search(ctx context.Context, term string) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchShows(ctx, term)
}
