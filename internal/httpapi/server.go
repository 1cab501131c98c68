package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"gigbook/internal/store"
	"gigbook/shared/go/models"
)

// VenueService coordinates venue directory operations
type VenueService interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	Delete(ctx context.Context, id int64) error
	ListByArea(ctx context.Context) ([]models.VenueGroup, error)
	Search(ctx context.Context, term string) ([]models.Venue, error)
	Get(ctx context.Context, id int64) (*models.VenueDetail, error)
	Choices(ctx context.Context) ([]models.RefOption, error)
}

// ArtistService coordinates artist directory operations
type ArtistService interface {
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.ArtistRef, error)
	Search(ctx context.Context, term string) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (*models.ArtistDetail, error)
	Choices(ctx context.Context) ([]models.RefOption, error)
}

// ShowService coordinates booking operations
type ShowService interface {
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
	List(ctx context.Context) ([]models.ShowWithDetails, error)
	Upcoming(ctx context.Context) ([]models.ShowWithDetails, error)
	Past(ctx context.Context) ([]models.ShowWithDetails, error)
	Search(ctx context.Context, term string) ([]models.ShowWithDetails, error)
}

// GenreService exposes the provisioned genre list
type GenreService interface {
	List(ctx context.Context) ([]models.Genre, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
	genres  GenreService
}

// New configures a Server with the given services.
func New(venues VenueService, artists ArtistService, shows ShowService, genres GenreService) *Server {
	return &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
		genres:  genres,
	}
}

// Routes exposes the HTTP handlers for the booking directory.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Venue routes
	mux.HandleFunc("GET /api/v1/venues", s.handleListVenues)
	mux.HandleFunc("POST /api/v1/venues", s.handleCreateVenue)
	mux.HandleFunc("GET /api/v1/venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /api/v1/venues/choices", s.handleVenueChoices)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)
	mux.HandleFunc("PUT /api/v1/venues/{id}", s.handleUpdateVenue)
	mux.HandleFunc("DELETE /api/v1/venues/{id}", s.handleDeleteVenue)

	// Artist routes
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("POST /api/v1/artists", s.handleCreateArtist)
	mux.HandleFunc("GET /api/v1/artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /api/v1/artists/choices", s.handleArtistChoices)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("PUT /api/v1/artists/{id}", s.handleUpdateArtist)
	mux.HandleFunc("DELETE /api/v1/artists/{id}", s.handleDeleteArtist)

	// Show routes
	mux.HandleFunc("GET /api/v1/shows", s.handleListShows)
	mux.HandleFunc("POST /api/v1/shows", s.handleCreateShow)
	mux.HandleFunc("GET /api/v1/shows/search", s.handleSearchShows)

	// Form reference data
	mux.HandleFunc("GET /api/v1/genres", s.handleListGenres)
	mux.HandleFunc("GET /api/v1/states", s.handleListStates)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// searchResponse is the count-plus-records shape of every search result.
type searchResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

func search[T any](data []T) searchResponse[T] {
	if data == nil {
		data = []T{}
	}
	return searchResponse[T]{Count: len(data), Data: data}
}

// writeError maps a service outcome to its response: validation failures
// re-render the form with field messages (400), missing records are 404,
// rolled-back commits are 500 with the entity-named message.
func writeError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}

	if errors.Is(err, store.ErrVenueNotFound) ||
		errors.Is(err, store.ErrArtistNotFound) ||
		errors.Is(err, store.ErrShowNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	var ce *store.CommitError
	if errors.As(err, &ce) {
		evt := log.Error()
		if store.ConstraintRace(err) {
			evt = log.Warn()
		}
		evt.Str("entity", ce.Entity).
			Str("action", ce.Action).
			Err(ce.Unwrap()).
			Msg("mutation rolled back")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: ce.Error()})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// optional converts empty form input to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.genres.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Genres []models.Genre `json:"genres"`
	}{Genres: genres})
}

func (s *Server) handleListStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		States []string `json:"states"`
	}{States: models.States()})
}
