package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gigbook/shared/go/models"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link, website, seeking_description`

func scanVenue(scan func(dest ...any) error) (*models.Venue, error) {
	var v models.Venue
	err := scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.FacebookLink, &v.Website, &v.SeekingDescription)
	if err != nil {
		return nil, err
	}
	v.SeekingTalent = v.SeekingDescription != nil
	return &v, nil
}

func normalizeVenue(v *models.Venue) {
	v.Phone = normalizeOptional(v.Phone)
	v.FacebookLink = normalizeOptional(v.FacebookLink)
	v.Website = normalizeOptional(v.Website)
	v.SeekingDescription = normalizeOptional(v.SeekingDescription)
	v.SeekingTalent = v.SeekingDescription != nil
}

func (s *Store) validateVenue(ctx context.Context, selfID int64, v *models.Venue) error {
	ve, err := s.validateProfile(ctx, "venues", selfID, profile{
		name:         v.Name,
		city:         v.City,
		state:        v.State,
		imageLink:    v.ImageLink,
		phone:        v.Phone,
		facebookLink: v.FacebookLink,
		website:      v.Website,
		genreIDs:     v.GenreIDs,
	})
	if err != nil {
		return err
	}
	if v.Address == "" {
		ve.add("address", "address is required")
	}
	return ve.errOrNil()
}

// CreateVenue validates and persists a new venue with its genre set as
// one transaction.
func (s *Store) CreateVenue(ctx context.Context, v *models.Venue) (*models.Venue, error) {
	normalizeVenue(v)
	if err := s.validateVenue(ctx, 0, v); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, v.GenreIDs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commitFailed("Venue", v.Name, "listed", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingDescription).Scan(&v.ID)
	if err != nil {
		return nil, commitFailed("Venue", v.Name, "listed", err)
	}

	if err := replaceGenres(ctx, tx, "genres_venues", "venue_id", v.ID, genres); err != nil {
		return nil, commitFailed("Venue", v.Name, "listed", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, commitFailed("Venue", v.Name, "listed", err)
	}
	tx = nil

	v.Genres, v.GenreIDs = genreNamesIDs(genres)
	return v, nil
}

// UpdateVenue replaces every editable field and the full genre set of an
// existing venue as one transaction.
func (s *Store) UpdateVenue(ctx context.Context, id int64, v *models.Venue) (*models.Venue, error) {
	// The pre-mutation name labels any commit failure.
	var currentName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM venues WHERE id = $1`, id).Scan(&currentName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup venue: %w", err)
	}

	normalizeVenue(v)
	if err := s.validateVenue(ctx, id, v); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, v.GenreIDs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commitFailed("Venue", currentName, "edited", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5,
		    image_link = $6, facebook_link = $7, website = $8, seeking_description = $9
		WHERE id = $10
	`, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingDescription, id); err != nil {
		return nil, commitFailed("Venue", currentName, "edited", err)
	}

	if err := replaceGenres(ctx, tx, "genres_venues", "venue_id", id, genres); err != nil {
		return nil, commitFailed("Venue", currentName, "edited", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, commitFailed("Venue", currentName, "edited", err)
	}
	tx = nil

	v.ID = id
	v.Genres, v.GenreIDs = genreNamesIDs(genres)
	return v, nil
}

// DeleteVenue removes a venue. Its shows and genre associations go with
// it through the cascade constraints, all in one statement.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM venues WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup venue: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return commitFailed("Venue", name, "deleted", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return commitFailed("Venue", name, "deleted", err)
	}
	if rows == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// ListVenuesByArea groups all venues by their exact (state, city) pair.
// Grouping is exact string match; values differing in case or whitespace
// form separate groups.
func (s *Store) ListVenuesByArea(ctx context.Context) ([]models.VenueGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		ORDER BY state ASC, city ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	var groups []models.VenueGroup
	for rows.Next() {
		v, err := scanVenue(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		n := len(groups)
		if n == 0 || groups[n-1].State != v.State || groups[n-1].City != v.City {
			groups = append(groups, models.VenueGroup{City: v.City, State: v.State})
			n++
		}
		groups[n-1].Venues = append(groups[n-1].Venues, *v)
	}
	return groups, rows.Err()
}

// SearchVenues returns venues whose name contains the term, matched
// case-insensitively. An empty term matches everything.
func (s *Store) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id ASC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		v, err := scanVenue(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

// GetVenue retrieves a single venue with its genres and its shows split
// into upcoming and past. A venue with zero shows still resolves.
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.VenueDetail, error) {
	v, err := scanVenue(s.db.QueryRowContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE id = $1
	`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}

	genres, err := s.genresFor(ctx, "genres_venues", "venue_id", id)
	if err != nil {
		return nil, err
	}
	v.Genres, v.GenreIDs = genreNamesIDs(genres)

	shows, err := s.showsByVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.VenueDetail{Venue: *v, ShowsCount: len(shows)}
	detail.UpcomingShows, detail.PastShows = models.SplitShows(shows, time.Now())
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	detail.PastShowsCount = len(detail.PastShows)
	return detail, nil
}

// VenueChoices returns the select-list entries for the show form,
// ordered by id.
func (s *Store) VenueChoices(ctx context.Context) ([]models.RefOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM venues
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select venue choices: %w", err)
	}
	defer rows.Close()

	var options []models.RefOption
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan venue choice: %w", err)
		}
		options = append(options, models.RefOption{ID: id, Label: fmt.Sprintf("ID:%d %s", id, name)})
	}
	return options, rows.Err()
}
