// Package service implements the subscription reconciliation logic: resolving
// reference data (theater, movie, showtime) from loosely-structured input,
// idempotent seat-notification creation, and unsubscription. Handlers stay
// thin and translate the sentinel errors defined here into HTTP responses.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/model"
	"github.com/seatwatch/seatwatch/internal/notifier"
	"github.com/seatwatch/seatwatch/internal/queue"
)

// ErrUnsupportedTheater is returned when the requested theater name is not in
// the pre-seeded catalog. It is a domain rejection, not a server failure:
// handlers return it inside a 200 response payload.
var ErrUnsupportedTheater = errors.New("unsupported theater")

// ErrPastShowtime is returned when the requested showtime instant is already
// in the past (UTC) at request time. The check runs before any write so no
// dead showtime rows are persisted.
var ErrPastShowtime = errors.New("showtime is in the past")

// ErrNoSeats is returned when a subscription request carries no usable seat
// identifiers.
var ErrNoSeats = errors.New("no seats requested")

// ErrNoMatch is returned by the unsubscribe operations when nothing matched
// the given reference. Handlers render the invalid-link page for it, with a
// success status, because unsubscribe links are long-lived and may be reused.
var ErrNoMatch = errors.New("no matching notifications")

// TheaterStore is the catalog lookup surface the service needs.
type TheaterStore interface {
	GetByName(ctx context.Context, name string) (*model.Theater, error)
	GetByID(ctx context.Context, id uint64) (*model.Theater, error)
}

// MovieStore resolves and maintains movies referenced by subscriptions.
type MovieStore interface {
	GetByName(ctx context.Context, name string) (*model.Movie, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
	Touch(ctx context.Context, id uint64, at time.Time) error
}

// ShowtimeStore resolves showtimes by their seating-map URL natural key.
type ShowtimeStore interface {
	GetBySeatingURL(ctx context.Context, url string) (*model.Showtime, error)
	GetByID(ctx context.Context, id uint64) (*model.Showtime, error)
	Create(ctx context.Context, s *model.Showtime) error
}

// NotificationStore persists seat notifications.
type NotificationStore interface {
	Exists(ctx context.Context, email, seat string, showtimeID uint64) (bool, error)
	Create(ctx context.Context, n *model.SeatNotification) error
	GetByID(ctx context.Context, id uint64) (*model.SeatNotification, error)
	DeleteByID(ctx context.Context, id uint64) error
	ListByShowtimeAndEmail(ctx context.Context, showtimeID uint64, email string) ([]model.SeatNotification, error)
	DeleteByShowtimeAndEmail(ctx context.Context, showtimeID uint64, email string) (int64, error)
}

// ConfirmationSender delivers the best-effort confirmation email.
type ConfirmationSender interface {
	SendConfirmation(c notifier.Confirmation) error
}

// Service wires the stores, the mailer and the event publishers together.
// All dependencies are injected; tests replace them with fakes. The clock and
// the publish functions are fields so tests can pin time and capture events.
type Service struct {
	theaters      TheaterStore
	movies        MovieStore
	showtimes     ShowtimeStore
	notifications NotificationStore
	mailer        ConfirmationSender
	log           *zap.Logger

	now                 func() time.Time
	publishCreated      func(context.Context, queue.NotificationCreatedEvent) error
	publishUnsubscribed func(context.Context, queue.UnsubscribedEvent) error
}

// New constructs a Service. All dependencies must be non-nil.
func New(theaters TheaterStore, movies MovieStore, showtimes ShowtimeStore, notifications NotificationStore, mailer ConfirmationSender, log *zap.Logger) *Service {
	if theaters == nil || movies == nil || showtimes == nil || notifications == nil || mailer == nil || log == nil {
		panic("nil dependency passed to service.New")
	}
	return &Service{
		theaters:            theaters,
		movies:              movies,
		showtimes:           showtimes,
		notifications:       notifications,
		mailer:              mailer,
		log:                 log,
		now:                 time.Now,
		publishCreated:      queue.PublishNotificationCreated,
		publishUnsubscribed: queue.PublishUnsubscribed,
	}
}

// localFormat renders an instant in the theater's IANA timezone as separate
// date and time strings. An unloadable timezone falls back to UTC rather than
// failing the request.
func localFormat(t time.Time, tz string) (dateLocal, timeLocal string) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return lt.Format("Monday, January 2, 2006"), lt.Format("3:04 PM")
}
