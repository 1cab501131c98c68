package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gigbook/shared/go/models"
)

// ListGenres returns every provisioned genre ordered by name, shaped for
// the multi-select on the venue and artist forms.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM genres
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// GenresByIDs resolves the given ids to genre rows, deduplicated. It
// returns ErrGenreNotFound if any id is not provisioned.
func (s *Store) GenresByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	distinct := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	placeholders := make([]string, len(distinct))
	args := make([]any, len(distinct))
	for i, id := range distinct {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, name
		FROM genres
		WHERE id IN (%s)
		ORDER BY name ASC
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select genres by id: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(genres) != len(distinct) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

// genresFor loads the genre names attached to one venue or artist row.
func (s *Store) genresFor(ctx context.Context, joinTable, fkColumn string, id int64) ([]models.Genre, error) {
	query := fmt.Sprintf(`
		SELECT g.id, g.name
		FROM genres g
		INNER JOIN %s j ON j.genre_id = g.id
		WHERE j.%s = $1
		ORDER BY g.name ASC
	`, joinTable, fkColumn)

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("select attached genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan attached genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// genreNamesIDs projects resolved genre rows into the name and id slices
// carried on venue and artist records.
func genreNamesIDs(genres []models.Genre) ([]string, []int64) {
	if len(genres) == 0 {
		return nil, nil
	}
	names := make([]string, len(genres))
	ids := make([]int64, len(genres))
	for i, g := range genres {
		names[i] = g.Name
		ids[i] = g.ID
	}
	return names, ids
}

// replaceGenres swaps the full genre association set for one row inside
// the caller's transaction.
func replaceGenres(ctx context.Context, tx *sql.Tx, joinTable, fkColumn string, id int64, genres []models.Genre) error {
	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, joinTable, fkColumn)
	if _, err := tx.ExecContext(ctx, del, id); err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}

	ins := fmt.Sprintf(`INSERT INTO %s (genre_id, %s) VALUES ($1, $2)`, joinTable, fkColumn)
	for _, g := range genres {
		if _, err := tx.ExecContext(ctx, ins, g.ID, id); err != nil {
			return fmt.Errorf("attach genre: %w", err)
		}
	}
	return nil
}
