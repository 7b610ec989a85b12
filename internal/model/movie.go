package model

import "time"

// Movie is created the first time a subscription references its name and its
// LastDetected timestamp is bumped on every later reference. A separate
// cleanup job can use LastDetected to garbage-collect movies that have not
// been seen recently; this service only maintains the field.
type Movie struct {
	ID           uint64    `json:"id"`            // movies.id
	Name         string    `json:"name"`          // movies.name (unique)
	LastDetected time.Time `json:"last_detected"` // movies.last_detected
}
