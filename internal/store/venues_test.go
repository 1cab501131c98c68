package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"gigbook/shared/go/models"
)

func expectGenreLookup(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name
		FROM genres
		WHERE id IN ($1, $2)
		ORDER BY name ASC
	`)).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Jazz").
			AddRow(int64(2), "Rock n Roll"))
}

func TestCreateVenueSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM venues WHERE phone = $1 AND id <> $2)`)).
		WithArgs("555-123-4567", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	expectGenreLookup(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`)).
		WithArgs("The Spot", "San Francisco", "CA", "123 Market St", "555-123-4567",
			"https://example.com/spot.png", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM genres_venues WHERE venue_id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_venues (genre_id, venue_id) VALUES ($1, $2)`)).
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_venues (genre_id, venue_id) VALUES ($1, $2)`)).
		WithArgs(int64(2), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	venue := &models.Venue{
		Name:      "The Spot",
		City:      "San Francisco",
		State:     "CA",
		Address:   "123 Market St",
		Phone:     strPtr("555-123-4567"),
		ImageLink: "https://example.com/spot.png",
		GenreIDs:  []int64{1, 2},
	}

	created, err := s.CreateVenue(context.Background(), venue)
	if err != nil {
		t.Fatalf("CreateVenue error: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected venue ID 7, got %d", created.ID)
	}
	if len(created.Genres) != 2 || created.Genres[0] != "Jazz" || created.Genres[1] != "Rock n Roll" {
		t.Fatalf("expected resolved genre names, got %v", created.Genres)
	}
	if created.SeekingTalent {
		t.Fatal("expected seeking_talent false without a description")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVenueNormalizesEmptyOptionals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	// Empty strings become NULL, so no uniqueness lookups fire for them.
	expectGenreLookup(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`)).
		WithArgs("The Spot", "San Francisco", "CA", "123 Market St", nil,
			"https://example.com/spot.png", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM genres_venues WHERE venue_id = $1`)).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_venues (genre_id, venue_id) VALUES ($1, $2)`)).
		WithArgs(int64(1), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_venues (genre_id, venue_id) VALUES ($1, $2)`)).
		WithArgs(int64(2), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	venue := &models.Venue{
		Name:         "The Spot",
		City:         "San Francisco",
		State:        "CA",
		Address:      "123 Market St",
		Phone:        strPtr(""),
		ImageLink:    "https://example.com/spot.png",
		FacebookLink: strPtr(""),
		Website:      strPtr(""),
		GenreIDs:     []int64{1, 2},
	}

	created, err := s.CreateVenue(context.Background(), venue)
	if err != nil {
		t.Fatalf("CreateVenue error: %v", err)
	}
	if created.Phone != nil || created.FacebookLink != nil || created.Website != nil {
		t.Fatal("expected empty optionals normalized to absent")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVenueValidationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	_, err = s.CreateVenue(context.Background(), &models.Venue{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "city", "state", "address", "image_link", "genres"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Errorf("expected field error for %q, got %v", field, ve.Fields)
		}
	}

	// Nothing was written.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected datastore activity: %v", err)
	}
}

func TestCreateVenueCommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectGenreLookup(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = s.CreateVenue(context.Background(), &models.Venue{
		Name:      "The Spot",
		City:      "San Francisco",
		State:     "CA",
		Address:   "123 Market St",
		ImageLink: "https://example.com/spot.png",
		GenreIDs:  []int64{1, 2},
	})

	var ce *CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommitError, got %v", err)
	}
	if got, want := ce.Error(), "An error occurred. Venue The Spot could not be listed."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVenueDoesNotSelfReject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name FROM venues WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("The Spot"))

	// The row being edited is excluded from the uniqueness check.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM venues WHERE phone = $1 AND id <> $2)`)).
		WithArgs("555-123-4567", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	expectGenreLookup(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5,
		    image_link = $6, facebook_link = $7, website = $8, seeking_description = $9
		WHERE id = $10
	`)).
		WithArgs("The Spot", "San Francisco", "CA", "123 Market St", "555-123-4567",
			"https://example.com/spot.png", nil, nil, nil, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM genres_venues WHERE venue_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_venues (genre_id, venue_id) VALUES ($1, $2)`)).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_venues (genre_id, venue_id) VALUES ($1, $2)`)).
		WithArgs(int64(2), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := s.UpdateVenue(context.Background(), 5, &models.Venue{
		Name:      "The Spot",
		City:      "San Francisco",
		State:     "CA",
		Address:   "123 Market St",
		Phone:     strPtr("555-123-4567"),
		ImageLink: "https://example.com/spot.png",
		GenreIDs:  []int64{1, 2},
	})
	if err != nil {
		t.Fatalf("UpdateVenue error: %v", err)
	}
	if updated.ID != 5 {
		t.Fatalf("expected venue ID 5, got %d", updated.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVenueNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name FROM venues WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	_, err = s.UpdateVenue(context.Background(), 404, &models.Venue{})
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestDeleteVenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name FROM venues WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("The Spot"))
	// Shows and genre links go with the venue through the cascade FKs.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM venues WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeleteVenue(context.Background(), 5); err != nil {
		t.Fatalf("DeleteVenue error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteVenueNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name FROM venues WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	if err := s.DeleteVenue(context.Background(), 404); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestDeleteVenueCommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name FROM venues WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("The Spot"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM venues WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))

	err = s.DeleteVenue(context.Background(), 5)
	var ce *CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommitError, got %v", err)
	}
	if got, want := ce.Error(), "An error occurred. Venue The Spot could not be deleted."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestListVenuesByArea(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	rows := sqlmock.NewRows([]string{
		"id", "name", "city", "state", "address", "phone",
		"image_link", "facebook_link", "website", "seeking_description",
	}).
		AddRow(int64(1), "V1", "SF", "CA", "1 First St", nil, "https://example.com/1.png", nil, nil, nil).
		AddRow(int64(2), "V2", "SF", "CA", "2 Second St", nil, "https://example.com/2.png", nil, nil, nil).
		AddRow(int64(3), "V3", "NYC", "NY", "3 Third Ave", nil, "https://example.com/3.png", nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT ` + venueColumns + `
		FROM venues
		ORDER BY state ASC, city ASC, id ASC
	`)).
		WillReturnRows(rows)

	groups, err := s.ListVenuesByArea(context.Background())
	if err != nil {
		t.Fatalf("ListVenuesByArea error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].State != "CA" || groups[0].City != "SF" || len(groups[0].Venues) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].State != "NY" || groups[1].City != "NYC" || len(groups[1].Venues) != 1 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}

func TestGetVenueWithoutShows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT ` + venueColumns + `
		FROM venues
		WHERE id = $1
	`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "address", "phone",
			"image_link", "facebook_link", "website", "seeking_description",
		}).AddRow(int64(5), "The Spot", "SF", "CA", "123 Market St", nil,
			"https://example.com/spot.png", nil, nil, "Looking for jazz acts"))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT g.id, g.name
		FROM genres g
		INNER JOIN genres_venues j ON j.genre_id = g.id
		WHERE j.venue_id = $1
		ORDER BY g.name ASC
	`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Jazz"))

	mock.ExpectQuery(regexp.QuoteMeta(showJoin + `
		WHERE s.venue_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "artist_id", "venue_id", "start_time",
			"artist_name", "artist_image_link", "venue_name", "venue_image_link",
		}))

	detail, err := s.GetVenue(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetVenue error: %v", err)
	}
	if detail.ShowsCount != 0 || detail.UpcomingShowsCount != 0 || detail.PastShowsCount != 0 {
		t.Fatalf("expected zero show counts, got %+v", detail)
	}
	if !detail.SeekingTalent {
		t.Fatal("expected seeking_talent true with a description present")
	}
	if len(detail.Genres) != 1 || detail.Genres[0] != "Jazz" {
		t.Fatalf("expected genres [Jazz], got %v", detail.Genres)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetVenueNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT ` + venueColumns + `
		FROM venues
		WHERE id = $1
	`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "address", "phone",
			"image_link", "facebook_link", "website", "seeking_description",
		}))

	_, err = s.GetVenue(context.Background(), 404)
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestSearchVenues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT ` + venueColumns + `
		FROM venues
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id ASC
	`)).
		WithArgs("Spot").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "address", "phone",
			"image_link", "facebook_link", "website", "seeking_description",
		}).AddRow(int64(5), "The Spot", "SF", "CA", "123 Market St", nil,
			"https://example.com/spot.png", nil, nil, nil))

	venues, err := s.SearchVenues(context.Background(), "Spot")
	if err != nil {
		t.Fatalf("SearchVenues error: %v", err)
	}
	if len(venues) != 1 || venues[0].Name != "The Spot" {
		t.Fatalf("unexpected search result: %+v", venues)
	}
}
