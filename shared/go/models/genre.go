package models

// Genre is a lookup entity tagged onto venues and artists. Rows are
// provisioned by migration, never created through the API.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
