package models

// Venue represents a physical location that hosts shows
type Venue struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
	// Optional fields, unique when present; empty input is stored as NULL
	Phone              *string `json:"phone,omitempty"`
	ImageLink          string  `json:"image_link"`
	FacebookLink       *string `json:"facebook_link,omitempty"`
	Website            *string `json:"website,omitempty"`
	SeekingDescription *string `json:"seeking_description,omitempty"`
	// SeekingTalent is derived from SeekingDescription, never stored
	SeekingTalent bool `json:"seeking_talent"`

	Genres   []string `json:"genres,omitempty"`
	GenreIDs []int64  `json:"genre_ids,omitempty"`
}

// VenueDetail is a venue plus its show history for the detail page
type VenueDetail struct {
	Venue
	UpcomingShows      []ShowWithDetails `json:"upcoming_shows"`
	PastShows          []ShowWithDetails `json:"past_shows"`
	UpcomingShowsCount int               `json:"upcoming_shows_count"`
	PastShowsCount     int               `json:"past_shows_count"`
	ShowsCount         int               `json:"shows_count"`
}

// VenueGroup collects the venues sharing one exact (state, city) pair
type VenueGroup struct {
	City   string  `json:"city"`
	State  string  `json:"state"`
	Venues []Venue `json:"venues"`
}

// RefOption is a select-list entry for referencing an existing record,
// labeled "ID:<id> <name>"
type RefOption struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
