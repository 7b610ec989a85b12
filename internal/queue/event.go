// Package queue defines message payloads exchanged over the message broker.
//
// Events feed the external availability poller that watches seating maps and
// stamps last_notified on seat notifications; this service only announces
// subscription lifecycle changes and never consumes availability results.
package queue

// NotificationCreatedEvent is published after at least one new seat
// notification has been persisted. It carries enough display data for
// downstream consumers to log or act without querying the primary database.
type NotificationCreatedEvent struct {
	EventID               string   `json:"event_id"`
	ShowtimeID            uint64   `json:"showtime_id"`
	UserEmail             string   `json:"user_email"`
	SeatNumbers           []string `json:"seats"`
	SpecificallyRequested bool     `json:"specifically_requested"`
	MovieName             string   `json:"movie_name"`
	TheaterName           string   `json:"theater_name"`
	SeatingURL            string   `json:"seating_url"`
	StartsAt              string   `json:"starts_at"`
	CreatedCount          int      `json:"created_count"`
	OccurredAt            string   `json:"occurred_at"`
}

// UnsubscribedEvent is published after one or more seat notifications were
// removed, either by notification id or in bulk by (showtime, email).
type UnsubscribedEvent struct {
	EventID      string `json:"event_id"`
	ShowtimeID   uint64 `json:"showtime_id"`
	UserEmail    string `json:"user_email"`
	RemovedCount int64  `json:"removed_count"`
	OccurredAt   string `json:"occurred_at"`
}
