package model

import "time"

// SeatNotification records a subscriber's interest in one seat of one
// showtime. No two rows may share the same (email, seat, showtime) triple;
// the table enforces this with a composite unique key so that concurrent
// identical requests cannot slip duplicates past the existence check.
//
// SpecificallyRequested distinguishes "watch this named seat" from "tell me
// when any seat frees up". LastNotified is written by the external
// availability poller, never by this service.
type SeatNotification struct {
	ID                    uint64     `json:"id"`                     // seat_notifications.id
	UserEmail             string     `json:"user_email"`             // seat_notifications.user_email
	SeatNumber            string     `json:"seat_number"`            // seat_notifications.seat_number
	ShowtimeID            uint64     `json:"showtime_id"`            // seat_notifications.showtime_id
	SpecificallyRequested bool       `json:"specifically_requested"` // seat_notifications.specifically_requested
	LastNotified          *time.Time `json:"last_notified"`          // seat_notifications.last_notified (nullable)
	CreatedAt             time.Time  `json:"created_at"`             // seat_notifications.created_at
}
