package models

import "time"

// Show is a booking of one artist at one venue at a start time
type Show struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowWithDetails carries the display fields resolved from the two
// parent records (never stored on the show itself)
type ShowWithDetails struct {
	Show
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	VenueName       string `json:"venue_name"`
	VenueImageLink  string `json:"venue_image_link"`
}

// SplitShows partitions shows into upcoming (start_time >= now) and past
// (start_time <= now). Both comparisons are inclusive, so a show starting
// exactly at now lands in both lists. That boundary is the documented
// behavior and is kept as-is.
func SplitShows(shows []ShowWithDetails, now time.Time) (upcoming, past []ShowWithDetails) {
	for _, sh := range shows {
		if !sh.StartTime.Before(now) {
			upcoming = append(upcoming, sh)
		}
		if !sh.StartTime.After(now) {
			past = append(past, sh)
		}
	}
	return upcoming, past
}
