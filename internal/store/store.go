package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrVenueNotFound signals a lookup for a venue id with no row.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrArtistNotFound signals a lookup for an artist id with no row.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrShowNotFound signals a lookup for a show id with no row.
	ErrShowNotFound = errors.New("show not found")
	// ErrGenreNotFound signals a genre id that is not provisioned.
	ErrGenreNotFound = errors.New("genre not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ValidationError collects field-scoped messages for a rejected record.
// The datastore is untouched when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, msg string) *ValidationError {
	ve := &ValidationError{}
	ve.add(field, msg)
	return ve
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		fmt.Fprintf(&b, "; %s: %s", f, e.Fields[f])
	}
	return b.String()
}

// errOrNil avoids returning a typed nil wrapped in the error interface.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// CommitError reports a mutation whose transaction failed to commit.
// The unit of work is rolled back in full before one is returned.
type CommitError struct {
	Entity string // display label, e.g. "Venue"
	Name   string // pre-mutation display name; empty for shows
	Action string // "listed", "edited" or "deleted"
	cause  error
}

func (e *CommitError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("An error occurred. %s could not be %s.", e.Entity, e.Action)
	}
	return fmt.Sprintf("An error occurred. %s %s could not be %s.", e.Entity, e.Name, e.Action)
}

func (e *CommitError) Unwrap() error {
	return e.cause
}

func commitFailed(entity, name, action string, cause error) *CommitError {
	return &CommitError{Entity: entity, Name: name, Action: action, cause: cause}
}

// ConstraintRace reports whether a commit failure came from a uniqueness
// constraint violation (a concurrent submit won the race) rather than a
// datastore outage. Callers use it to pick a log severity; the operation
// outcome is the same either way.
func ConstraintRace(err error) bool {
	var ce *CommitError
	if errors.As(err, &ce) {
		return isUniqueViolation(ce.cause)
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
