package model

// Theater represents a venue from the controlled catalog. Theaters are
// pre-seeded at deploy time; subscription requests naming a theater that is
// not in the catalog are rejected. The timezone is a validated IANA name used
// to render showtimes in local time.
//
// Fields:
//
//	ID       – primary key identifier.
//	Name     – unique, human-readable theater name (natural key).
//	Timezone – IANA timezone name, e.g. "America/New_York".
type Theater struct {
	ID       uint64 `json:"id"`       // theaters.id
	Name     string `json:"name"`     // theaters.name
	Timezone string `json:"timezone"` // theaters.timezone
}
