package models

// Artist represents a performer that gets booked into venues
type Artist struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Phone              *string `json:"phone,omitempty"`
	ImageLink          string  `json:"image_link"`
	FacebookLink       *string `json:"facebook_link,omitempty"`
	Website            *string `json:"website,omitempty"`
	SeekingDescription *string `json:"seeking_description,omitempty"`
	// SeekingVenue is derived from SeekingDescription, never stored
	SeekingVenue bool `json:"seeking_venue"`

	Genres   []string `json:"genres,omitempty"`
	GenreIDs []int64  `json:"genre_ids,omitempty"`
}

// ArtistDetail is an artist plus its show history for the detail page
type ArtistDetail struct {
	Artist
	UpcomingShows      []ShowWithDetails `json:"upcoming_shows"`
	PastShows          []ShowWithDetails `json:"past_shows"`
	UpcomingShowsCount int               `json:"upcoming_shows_count"`
	PastShowsCount     int               `json:"past_shows_count"`
	ShowsCount         int               `json:"shows_count"`
}

// ArtistRef is the (id, name) projection used by the artists index
type ArtistRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
