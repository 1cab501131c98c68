package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"gigbook/shared/go/models"
)

var phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)

// normalizeOptional maps empty input to absent so "no value" is always
// stored as NULL and never collides on the unique columns.
func normalizeOptional(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// profile is the field set venues and artists have in common. The address
// is venue-only and validated at its call site.
type profile struct {
	name, city, state, imageLink string
	phone, facebookLink, website *string
	genreIDs                     []int64
}

// validateProfile applies the shared field rules for venues and artists.
// selfID excludes the row being edited from the uniqueness checks; zero
// means a new record. The returned ValidationError is an accumulator the
// caller may extend with entity-specific rules; the second return is a
// datastore failure during the uniqueness lookups.
func (s *Store) validateProfile(ctx context.Context, table string, selfID int64, p profile) (*ValidationError, error) {
	ve := &ValidationError{}

	if p.name == "" {
		ve.add("name", "name is required")
	}
	if p.city == "" {
		ve.add("city", "city is required")
	}
	switch {
	case p.state == "":
		ve.add("state", "state is required")
	case !models.IsState(p.state):
		ve.add("state", "state must be a US state code")
	}
	switch {
	case p.imageLink == "":
		ve.add("image_link", "image_link is required")
	case !isAbsoluteURL(p.imageLink):
		ve.add("image_link", "image_link must be a valid URL")
	}
	if p.phone != nil && !phonePattern.MatchString(*p.phone) {
		ve.add("phone", "number should match this pattern 111-111-1111")
	}
	if p.facebookLink != nil && !isAbsoluteURL(*p.facebookLink) {
		ve.add("facebook_link", "facebook_link must be a valid URL")
	}
	if p.website != nil && !isAbsoluteURL(*p.website) {
		ve.add("website", "website must be a valid URL")
	}
	if len(p.genreIDs) == 0 {
		ve.add("genres", "select at least one genre")
	}

	// Uniqueness applies only to present, well-formed values.
	uniques := []struct {
		field string
		value *string
	}{
		{"phone", p.phone},
		{"facebook_link", p.facebookLink},
		{"website", p.website},
	}
	for _, u := range uniques {
		if u.value == nil || ve.Fields[u.field] != "" {
			continue
		}
		taken, err := s.valueTaken(ctx, table, u.field, *u.value, selfID)
		if err != nil {
			return nil, fmt.Errorf("check %s uniqueness: %w", u.field, err)
		}
		if taken {
			ve.add(u.field, fmt.Sprintf("This %s has been used", u.field))
		}
	}

	return ve, nil
}

// resolveGenres turns the selected genre ids into rows, surfacing an
// unknown id as a field error rather than a lookup failure.
func (s *Store) resolveGenres(ctx context.Context, ids []int64) ([]models.Genre, error) {
	genres, err := s.GenresByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			ve := &ValidationError{}
			ve.add("genres", "unknown genre selected")
			return nil, ve
		}
		return nil, err
	}
	return genres, nil
}

// valueTaken reports whether another row of the same table already holds
// value in column. Table and column names come from fixed call sites only.
func (s *Store) valueTaken(ctx context.Context, table, column, value string, selfID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND id <> $2)`, table, column)
	var taken bool
	if err := s.db.QueryRowContext(ctx, query, value, selfID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}
