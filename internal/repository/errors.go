// Package repository contains data access logic for the notification
// registry. This file defines error types and helpers reused across the
// repositories. Sentinel values let higher layers such as handlers and
// services distinguish between failure scenarios without string matching.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrTheaterNotFound indicates that a theater name is not part of the
// controlled catalog. The service layer translates this into the
// "unsupported theater" domain rejection.
var ErrTheaterNotFound = errors.New("theater not found")

// ErrMovieNotFound indicates that no movie row matches the requested name.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound indicates that a showtime was not located in the DB.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrNotificationNotFound indicates that a seat notification id did not
// match any row. Handlers render this as the invalid-link page, not as an
// HTTP error.
var ErrNotificationNotFound = errors.New("seat notification not found")

// IsDuplicateEntry reports whether err is a MySQL duplicate-key violation
// (error 1062). Concurrent identical requests can race between the existence
// check and the insert; the unique key makes the losing writer fail with
// 1062, which callers treat as "already exists" rather than a fatal error.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "1062")
}
