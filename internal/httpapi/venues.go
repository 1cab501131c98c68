package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gigbook/shared/go/models"
)

type venueRequest struct {
	Name               string  `json:"name"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Address            string  `json:"address"`
	Phone              string  `json:"phone"`
	ImageLink          string  `json:"image_link"`
	FacebookLink       string  `json:"facebook_link"`
	Website            string  `json:"website"`
	SeekingDescription string  `json:"seeking_description"`
	GenreIDs           []int64 `json:"genre_ids"`
}

func (req venueRequest) model() *models.Venue {
	return &models.Venue{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Address:            req.Address,
		Phone:              optional(req.Phone),
		ImageLink:          req.ImageLink,
		FacebookLink:       optional(req.FacebookLink),
		Website:            optional(req.Website),
		SeekingDescription: optional(req.SeekingDescription),
		GenreIDs:           req.GenreIDs,
	}
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := s.venues.ListByArea(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if groups == nil {
		groups = []models.VenueGroup{}
	}
	writeJSON(w, http.StatusOK, struct {
		Areas []models.VenueGroup `json:"areas"`
	}{Areas: groups})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.venues.Create(r.Context(), req.model())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, search(venues))
}

func (s *Server) handleVenueChoices(w http.ResponseWriter, r *http.Request) {
	options, err := s.venues.Choices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Venues []models.RefOption `json:"venues"`
	}{Venues: options})
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	var req venueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	updated, err := s.venues.Update(r.Context(), id, req.model())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
