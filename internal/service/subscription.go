package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/model"
	"github.com/seatwatch/seatwatch/internal/notifier"
	"github.com/seatwatch/seatwatch/internal/queue"
	"github.com/seatwatch/seatwatch/internal/repository"
)

// SubscribeRequest is the resolved input for one subscription call.
type SubscribeRequest struct {
	Email                 string
	SeatNumbers           []string
	SeatingURL            string
	MovieName             string
	TheaterName           string
	StartsAt              time.Time
	SpecificallyRequested bool
}

// SubscribeResult reports the outcome of a subscription call. When every
// requested seat already had a matching record, AlreadySubscribed is true and
// no writes occurred.
type SubscribeResult struct {
	AlreadySubscribed bool
	Created           int
	Total             int
}

// Subscribe resolves the reference data for the request and creates one seat
// notification per seat that does not already have one. The past-showtime
// guard runs before any write. On creation of at least one record the
// confirmation email is sent and a lifecycle event is published; both are
// best-effort and never affect the response.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscribeResult, error) {
	seats := dedupeSeats(req.SeatNumbers)
	if len(seats) == 0 {
		return nil, ErrNoSeats
	}

	// Temporal guard: compare against current UTC time before touching the DB,
	// so a dead showtime never gets persisted as a side effect of this call.
	now := s.now().UTC()
	if req.StartsAt.UTC().Before(now) {
		return nil, ErrPastShowtime
	}

	theater, err := s.theaters.GetByName(ctx, req.TheaterName)
	if err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return nil, ErrUnsupportedTheater
		}
		return nil, fmt.Errorf("resolve theater: %w", err)
	}

	movie, err := s.resolveMovie(ctx, req.MovieName, now)
	if err != nil {
		return nil, err
	}

	showtime, err := s.resolveShowtime(ctx, movie.ID, theater.ID, req.StartsAt.UTC(), req.SeatingURL)
	if err != nil {
		return nil, err
	}
	// The stored instant wins when the URL resolves to an existing showtime,
	// so the guard must hold against it too: a stale request stating a future
	// instant must not add notifications to a showing that already started.
	if showtime.StartsAt.UTC().Before(now) {
		return nil, ErrPastShowtime
	}

	var missing []string
	for _, seat := range seats {
		exists, err := s.notifications.Exists(ctx, req.Email, seat, showtime.ID)
		if err != nil {
			return nil, fmt.Errorf("check existing notification: %w", err)
		}
		if !exists {
			missing = append(missing, seat)
		}
	}
	if len(missing) == 0 {
		return &SubscribeResult{AlreadySubscribed: true, Total: len(seats)}, nil
	}

	created := 0
	for _, seat := range missing {
		n := &model.SeatNotification{
			UserEmail:             req.Email,
			SeatNumber:            seat,
			ShowtimeID:            showtime.ID,
			SpecificallyRequested: req.SpecificallyRequested,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			if repository.IsDuplicateEntry(err) {
				// A concurrent identical request won the insert; the row
				// exists now, which is the outcome we wanted.
				continue
			}
			return nil, fmt.Errorf("create notification: %w", err)
		}
		created++
	}
	if created == 0 {
		return &SubscribeResult{AlreadySubscribed: true, Total: len(seats)}, nil
	}

	s.confirmSubscription(ctx, req, seats, theater, movie, showtime, created, now)

	return &SubscribeResult{Created: created, Total: len(seats)}, nil
}

// confirmSubscription sends the confirmation email and publishes the
// lifecycle event. Failures are logged and swallowed: the subscriptions are
// already committed and the caller's response must not depend on delivery.
func (s *Service) confirmSubscription(ctx context.Context, req SubscribeRequest, seats []string, theater *model.Theater, movie *model.Movie, showtime *model.Showtime, created int, now time.Time) {
	dateLocal, timeLocal := localFormat(showtime.StartsAt, theater.Timezone)

	if err := s.mailer.SendConfirmation(notifier.Confirmation{
		Email:                 req.Email,
		SeatNumbers:           seats,
		SpecificallyRequested: req.SpecificallyRequested,
		MovieName:             movie.Name,
		TheaterName:           theater.Name,
		DateLocal:             dateLocal,
		TimeLocal:             timeLocal,
		SeatingURL:            showtime.SeatingURL,
		ShowtimeID:            showtime.ID,
	}); err != nil {
		s.log.Warn("confirmation email failed",
			zap.String("email", req.Email),
			zap.Uint64("showtime_id", showtime.ID),
			zap.Error(err))
	}

	if err := s.publishCreated(ctx, queue.NotificationCreatedEvent{
		EventID:               uuid.NewString(),
		ShowtimeID:            showtime.ID,
		UserEmail:             req.Email,
		SeatNumbers:           seats,
		SpecificallyRequested: req.SpecificallyRequested,
		MovieName:             movie.Name,
		TheaterName:           theater.Name,
		SeatingURL:            showtime.SeatingURL,
		StartsAt:              showtime.StartsAt.UTC().Format(time.RFC3339),
		CreatedCount:          created,
		OccurredAt:            now.Format(time.RFC3339),
	}); err != nil {
		s.log.Warn("publish created event failed",
			zap.Uint64("showtime_id", showtime.ID),
			zap.Error(err))
	}
}

// resolveMovie looks a movie up by exact name, creating it on first reference
// and bumping last_detected on every later one. A lost creation race is
// resolved by re-reading the winner's row.
func (s *Service) resolveMovie(ctx context.Context, name string, now time.Time) (*model.Movie, error) {
	m, err := s.movies.GetByName(ctx, name)
	switch {
	case err == nil:
		if err := s.movies.Touch(ctx, m.ID, now); err != nil {
			return nil, fmt.Errorf("bump movie last_detected: %w", err)
		}
		m.LastDetected = now
		return m, nil
	case errors.Is(err, repository.ErrMovieNotFound):
		m = &model.Movie{Name: name, LastDetected: now}
		if err := s.movies.Create(ctx, m); err != nil {
			if repository.IsDuplicateEntry(err) {
				return s.movies.GetByName(ctx, name)
			}
			return nil, fmt.Errorf("create movie: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("resolve movie: %w", err)
	}
}

// resolveShowtime looks a showtime up by seating-map URL, creating it when
// first referenced. An existing row is reused as-is; a mismatch between the
// request's stated instant and the stored one is ignored, since the URL
// identifies the showing.
func (s *Service) resolveShowtime(ctx context.Context, movieID, theaterID uint64, startsAt time.Time, seatingURL string) (*model.Showtime, error) {
	st, err := s.showtimes.GetBySeatingURL(ctx, seatingURL)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, repository.ErrShowtimeNotFound):
		st = &model.Showtime{
			MovieID:    movieID,
			TheaterID:  theaterID,
			StartsAt:   startsAt,
			SeatingURL: seatingURL,
		}
		if err := s.showtimes.Create(ctx, st); err != nil {
			if repository.IsDuplicateEntry(err) {
				return s.showtimes.GetBySeatingURL(ctx, seatingURL)
			}
			return nil, fmt.Errorf("create showtime: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("resolve showtime: %w", err)
	}
}

// dedupeSeats drops empty and repeated seat identifiers while preserving the
// request order.
func dedupeSeats(seats []string) []string {
	unique := make([]string, 0, len(seats))
	seen := make(map[string]struct{})
	for _, seat := range seats {
		if seat == "" {
			continue
		}
		if _, ok := seen[seat]; !ok {
			seen[seat] = struct{}{}
			unique = append(unique, seat)
		}
	}
	return unique
}
