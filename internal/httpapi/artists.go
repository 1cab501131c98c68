package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gigbook/shared/go/models"
)

type artistRequest struct {
	Name               string  `json:"name"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Phone              string  `json:"phone"`
	ImageLink          string  `json:"image_link"`
	FacebookLink       string  `json:"facebook_link"`
	Website            string  `json:"website"`
	SeekingDescription string  `json:"seeking_description"`
	GenreIDs           []int64 `json:"genre_ids"`
}

func (req artistRequest) model() *models.Artist {
	return &models.Artist{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Phone:              optional(req.Phone),
		ImageLink:          req.ImageLink,
		FacebookLink:       optional(req.FacebookLink),
		Website:            optional(req.Website),
		SeekingDescription: optional(req.SeekingDescription),
		GenreIDs:           req.GenreIDs,
	}
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if artists == nil {
		artists = []models.ArtistRef{}
	}
	writeJSON(w, http.StatusOK, struct {
		Artists []models.ArtistRef `json:"artists"`
	}{Artists: artists})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.artists.Create(r.Context(), req.model())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, search(artists))
}

func (s *Server) handleArtistChoices(w http.ResponseWriter, r *http.Request) {
	options, err := s.artists.Choices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Artists []models.RefOption `json:"artists"`
	}{Artists: options})
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist ID"})
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist ID"})
		return
	}

	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	updated, err := s.artists.Update(r.Context(), id, req.model())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist ID"})
		return
	}

	if err := s.artists.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
