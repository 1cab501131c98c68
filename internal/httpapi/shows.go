package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"gigbook/shared/go/models"
)

type showRequest struct {
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// handleListShows lists all shows, or only the upcoming or past ones
// when the "when" query parameter is set.
func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	var (
		shows []models.ShowWithDetails
		err   error
	)
	switch when := r.URL.Query().Get("when"); when {
	case "":
		shows, err = s.shows.List(r.Context())
	case "upcoming":
		shows, err = s.shows.Upcoming(r.Context())
	case "past":
		shows, err = s.shows.Past(r.Context())
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "when must be upcoming or past"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if shows == nil {
		shows = []models.ShowWithDetails{}
	}
	writeJSON(w, http.StatusOK, struct {
		Shows []models.ShowWithDetails `json:"shows"`
	}{Shows: shows})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.shows.Create(r.Context(), &models.Show{
		ArtistID:  req.ArtistID,
		VenueID:   req.VenueID,
		StartTime: req.StartTime,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSearchShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.shows.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, search(shows))
}
