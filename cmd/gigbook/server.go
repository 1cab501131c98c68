package main

import (
	"database/sql"
	"net/http"
	"strings"

	"gigbook/internal/app/artists"
	"gigbook/internal/app/genres"
	"gigbook/internal/app/shows"
	"gigbook/internal/app/venues"
	"gigbook/internal/httpapi"
	"gigbook/internal/store"
	"gigbook/shared/go/middleware"
)

func newHTTPHandler(cfg Config, db *sql.DB) http.Handler {
	dataStore := store.New(db)

	venueSvc := venues.New(dataStore)
	artistSvc := artists.New(dataStore)
	genreSvc := genres.New(dataStore)

	// Show bookings validate their artist and venue up front.
	showSvc := shows.New(dataStore, artistSvc, venueSvc)

	handler := httpapi.New(venueSvc, artistSvc, showSvc, genreSvc).Routes()
	handler = withCORS(cfg.AllowedOrigins, handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
