package model

import "time"

// Showtime is one specific showing of a movie at a theater. Ticketing systems
// mint a fresh seating-map URL per showing, so SeatingURL serves as the
// natural key for deduplication: a request carrying a known URL reuses the
// stored row even if its stated instant differs.
//
// StartsAt is a single timezone-aware instant stored in UTC. A showtime whose
// instant is in the past rejects new subscriptions but keeps any existing ones.
type Showtime struct {
	ID         uint64    `json:"id"`          // showtimes.id
	MovieID    uint64    `json:"movie_id"`    // showtimes.movie_id
	TheaterID  uint64    `json:"theater_id"`  // showtimes.theater_id
	StartsAt   time.Time `json:"starts_at"`   // showtimes.starts_at (UTC)
	SeatingURL string    `json:"seating_url"` // showtimes.seating_url (unique)
}
