package store

import (
	"context"
	"fmt"
	"time"

	"gigbook/shared/go/models"
)

const showJoin = `
	SELECT s.id, s.artist_id, s.venue_id, s.start_time,
	       a.name AS artist_name, a.image_link AS artist_image_link,
	       v.name AS venue_name, v.image_link AS venue_image_link
	FROM shows s
	INNER JOIN artists a ON s.artist_id = a.id
	INNER JOIN venues v ON s.venue_id = v.id
`

func scanShow(scan func(dest ...any) error) (*models.ShowWithDetails, error) {
	var sh models.ShowWithDetails
	err := scan(&sh.ID, &sh.ArtistID, &sh.VenueID, &sh.StartTime,
		&sh.ArtistName, &sh.ArtistImageLink, &sh.VenueName, &sh.VenueImageLink)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) collectShows(ctx context.Context, query string, args ...any) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	defer rows.Close()

	var shows []models.ShowWithDetails
	for rows.Next() {
		sh, err := scanShow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, *sh)
	}
	return shows, rows.Err()
}

// CreateShow books an artist into a venue at a start time. Referential
// checks are done by the service layer up front and backstopped by the
// foreign keys at commit time.
func (s *Store) CreateShow(ctx context.Context, sh *models.Show) (*models.Show, error) {
	ve := &ValidationError{}
	if sh.ArtistID <= 0 {
		ve.add("artist_id", "artist_id is required")
	}
	if sh.VenueID <= 0 {
		ve.add("venue_id", "venue_id is required")
	}
	if sh.StartTime.IsZero() {
		ve.add("start_time", "start_time is required")
	}
	if err := ve.errOrNil(); err != nil {
		return nil, err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, sh.ArtistID, sh.VenueID, sh.StartTime).Scan(&sh.ID)
	if err != nil {
		return nil, commitFailed("Show", "", "listed", err)
	}
	return sh, nil
}

// ListShows returns every show joined with its artist and venue display
// fields.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowWithDetails, error) {
	return s.collectShows(ctx, showJoin+`ORDER BY s.start_time ASC, s.id ASC`)
}

// SearchShows returns shows whose artist name or venue name contains the
// term, matched case-insensitively.
func (s *Store) SearchShows(ctx context.Context, term string) ([]models.ShowWithDetails, error) {
	return s.collectShows(ctx, showJoin+`
		WHERE a.name ILIKE '%' || $1 || '%' OR v.name ILIKE '%' || $1 || '%'
		ORDER BY s.start_time ASC, s.id ASC
	`, term)
}

func (s *Store) showsByVenue(ctx context.Context, venueID int64) ([]models.ShowWithDetails, error) {
	return s.collectShows(ctx, showJoin+`
		WHERE s.venue_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, venueID)
}

func (s *Store) showsByArtist(ctx context.Context, artistID int64) ([]models.ShowWithDetails, error) {
	return s.collectShows(ctx, showJoin+`
		WHERE s.artist_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, artistID)
}

// UpcomingShows and PastShows keep the documented inclusive boundary:
// a show starting exactly at the query instant satisfies both.

// UpcomingShows returns shows with start_time >= now.
func (s *Store) UpcomingShows(ctx context.Context, now time.Time) ([]models.ShowWithDetails, error) {
	return s.collectShows(ctx, showJoin+`
		WHERE s.start_time >= $1
		ORDER BY s.start_time ASC, s.id ASC
	`, now)
}

// PastShows returns shows with start_time <= now.
func (s *Store) PastShows(ctx context.Context, now time.Time) ([]models.ShowWithDetails, error) {
	return s.collectShows(ctx, showJoin+`
		WHERE s.start_time <= $1
		ORDER BY s.start_time ASC, s.id ASC
	`, now)
}
