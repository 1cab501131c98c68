package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gigbook/shared/go/models"
)

const artistColumns = `id, name, city, state, phone, image_link, facebook_link, website, seeking_description`

func scanArtist(scan func(dest ...any) error) (*models.Artist, error) {
	var a models.Artist
	err := scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&a.ImageLink, &a.FacebookLink, &a.Website, &a.SeekingDescription)
	if err != nil {
		return nil, err
	}
	a.SeekingVenue = a.SeekingDescription != nil
	return &a, nil
}

func normalizeArtist(a *models.Artist) {
	a.Phone = normalizeOptional(a.Phone)
	a.FacebookLink = normalizeOptional(a.FacebookLink)
	a.Website = normalizeOptional(a.Website)
	a.SeekingDescription = normalizeOptional(a.SeekingDescription)
	a.SeekingVenue = a.SeekingDescription != nil
}

func (s *Store) validateArtist(ctx context.Context, selfID int64, a *models.Artist) error {
	ve, err := s.validateProfile(ctx, "artists", selfID, profile{
		name:         a.Name,
		city:         a.City,
		state:        a.State,
		imageLink:    a.ImageLink,
		phone:        a.Phone,
		facebookLink: a.FacebookLink,
		website:      a.Website,
		genreIDs:     a.GenreIDs,
	})
	if err != nil {
		return err
	}
	return ve.errOrNil()
}

// CreateArtist validates and persists a new artist with its genre set as
// one transaction.
func (s *Store) CreateArtist(ctx context.Context, a *models.Artist) (*models.Artist, error) {
	normalizeArtist(a)
	if err := s.validateArtist(ctx, 0, a); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, a.GenreIDs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commitFailed("Artist", a.Name, "listed", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO artists (name, city, state, phone, image_link, facebook_link, website, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, a.Name, a.City, a.State, a.Phone, a.ImageLink,
		a.FacebookLink, a.Website, a.SeekingDescription).Scan(&a.ID)
	if err != nil {
		return nil, commitFailed("Artist", a.Name, "listed", err)
	}

	if err := replaceGenres(ctx, tx, "genres_artists", "artist_id", a.ID, genres); err != nil {
		return nil, commitFailed("Artist", a.Name, "listed", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, commitFailed("Artist", a.Name, "listed", err)
	}
	tx = nil

	a.Genres, a.GenreIDs = genreNamesIDs(genres)
	return a, nil
}

// UpdateArtist replaces every editable field and the full genre set of an
// existing artist as one transaction.
func (s *Store) UpdateArtist(ctx context.Context, id int64, a *models.Artist) (*models.Artist, error) {
	var currentName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM artists WHERE id = $1`, id).Scan(&currentName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup artist: %w", err)
	}

	normalizeArtist(a)
	if err := s.validateArtist(ctx, id, a); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, a.GenreIDs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commitFailed("Artist", currentName, "edited", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		UPDATE artists
		SET name = $1, city = $2, state = $3, phone = $4,
		    image_link = $5, facebook_link = $6, website = $7, seeking_description = $8
		WHERE id = $9
	`, a.Name, a.City, a.State, a.Phone, a.ImageLink,
		a.FacebookLink, a.Website, a.SeekingDescription, id); err != nil {
		return nil, commitFailed("Artist", currentName, "edited", err)
	}

	if err := replaceGenres(ctx, tx, "genres_artists", "artist_id", id, genres); err != nil {
		return nil, commitFailed("Artist", currentName, "edited", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, commitFailed("Artist", currentName, "edited", err)
	}
	tx = nil

	a.ID = id
	a.Genres, a.GenreIDs = genreNamesIDs(genres)
	return a, nil
}

// DeleteArtist removes an artist together with its shows and genre
// associations through the cascade constraints.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM artists WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrArtistNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup artist: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return commitFailed("Artist", name, "deleted", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return commitFailed("Artist", name, "deleted", err)
	}
	if rows == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// ListArtists returns the (id, name) projection for the artists index.
func (s *Store) ListArtists(ctx context.Context) ([]models.ArtistRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM artists
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var artists []models.ArtistRef
	for rows.Next() {
		var a models.ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// SearchArtists returns artists whose name contains the term, matched
// case-insensitively. An empty term matches everything.
func (s *Store) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id ASC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		a, err := scanArtist(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, *a)
	}
	return artists, rows.Err()
}

// GetArtist retrieves a single artist with its genres and its shows split
// into upcoming and past. An artist with zero shows still resolves.
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	a, err := scanArtist(s.db.QueryRowContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists
		WHERE id = $1
	`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}

	genres, err := s.genresFor(ctx, "genres_artists", "artist_id", id)
	if err != nil {
		return nil, err
	}
	a.Genres, a.GenreIDs = genreNamesIDs(genres)

	shows, err := s.showsByArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.ArtistDetail{Artist: *a, ShowsCount: len(shows)}
	detail.UpcomingShows, detail.PastShows = models.SplitShows(shows, time.Now())
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	detail.PastShowsCount = len(detail.PastShows)
	return detail, nil
}

// ArtistChoices returns the select-list entries for the show form,
// ordered by id.
func (s *Store) ArtistChoices(ctx context.Context) ([]models.RefOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM artists
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artist choices: %w", err)
	}
	defer rows.Close()

	var options []models.RefOption
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan artist choice: %w", err)
		}
		options = append(options, models.RefOption{ID: id, Label: fmt.Sprintf("ID:%d %s", id, name)})
	}
	return options, rows.Err()
}
