package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seatwatch/seatwatch/internal/model"
)

// seedSubscription installs a showtime with its references and n seat
// notifications for the given email, returning the showtime id.
func seedSubscription(env *testEnv, email string, seats ...string) uint64 {
	env.movies.put(model.Movie{ID: 1, Name: "Heart Eyes", LastDetected: testNow})
	env.showtimes.put(model.Showtime{
		ID:         1,
		MovieID:    1,
		TheaterID:  1,
		StartsAt:   time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC),
		SeatingURL: "https://t/123",
	})
	for _, seat := range seats {
		_ = env.notifications.Create(context.Background(), &model.SeatNotification{
			UserEmail:             email,
			SeatNumber:            seat,
			ShowtimeID:            1,
			SpecificallyRequested: true,
		})
	}
	return 1
}

func TestUnsubscribeByIDRemovesRowAndResolvesDisplayData(t *testing.T) {
	env := newTestEnv(t)
	seedSubscription(env, "a@x.com", "A1")

	removed, err := env.svc.UnsubscribeByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("UnsubscribeByID: %v", err)
	}
	if removed.Seat != "A1" {
		t.Fatalf("seat = %q, want A1", removed.Seat)
	}
	if removed.MovieName != "Heart Eyes" || removed.TheaterName != "AMC Empire 25" {
		t.Fatalf("references not resolved: %+v", removed)
	}
	// 23:30 UTC on March 14 is 7:30 PM March 14 in New York (EDT).
	if removed.DateLocal != "Saturday, March 14, 2026" {
		t.Fatalf("date = %q", removed.DateLocal)
	}
	if removed.TimeLocal != "7:30 PM" {
		t.Fatalf("time = %q", removed.TimeLocal)
	}
	if env.notifications.count() != 0 {
		t.Fatal("row must be deleted")
	}
	if len(env.removedEvents) != 1 || env.removedEvents[0].RemovedCount != 1 {
		t.Fatalf("unexpected unsubscribe events: %+v", env.removedEvents)
	}
}

func TestUnsubscribeByIDUnknownID(t *testing.T) {
	env := newTestEnv(t)
	seedSubscription(env, "a@x.com", "A1")

	_, err := env.svc.UnsubscribeByID(context.Background(), 999)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got err=%v, want ErrNoMatch", err)
	}
	if env.notifications.count() != 1 {
		t.Fatal("table must be unchanged on an unknown id")
	}
}

func TestUnsubscribeByIDPersistenceFailure(t *testing.T) {
	env := newTestEnv(t)
	seedSubscription(env, "a@x.com", "A1")
	env.notifications.deleteErr = errors.New("lock wait timeout")

	_, err := env.svc.UnsubscribeByID(context.Background(), 1)
	if err == nil || errors.Is(err, ErrNoMatch) {
		t.Fatalf("persistence failure must surface as a real error, got %v", err)
	}
}

func TestUnsubscribeByShowtimeEmailBulk(t *testing.T) {
	env := newTestEnv(t)
	showtimeID := seedSubscription(env, "a@x.com", "A1", "A2", "A3")
	// Another subscriber on the same showtime must be untouched.
	_ = env.notifications.Create(context.Background(), &model.SeatNotification{
		UserEmail: "b@y.com", SeatNumber: "C1", ShowtimeID: showtimeID,
	})

	removal, err := env.svc.UnsubscribeByShowtimeEmail(context.Background(), showtimeID, "a@x.com")
	if err != nil {
		t.Fatalf("UnsubscribeByShowtimeEmail: %v", err)
	}
	if removal.Removed != 3 {
		t.Fatalf("removed = %d, want 3", removal.Removed)
	}
	if env.notifications.count() != 1 {
		t.Fatalf("got %d rows left, want 1 (other subscriber)", env.notifications.count())
	}
	if len(env.removedEvents) != 1 || env.removedEvents[0].RemovedCount != 3 {
		t.Fatalf("unexpected unsubscribe events: %+v", env.removedEvents)
	}
}

func TestUnsubscribeByShowtimeEmailNoMatches(t *testing.T) {
	env := newTestEnv(t)
	showtimeID := seedSubscription(env, "a@x.com", "A1")

	_, err := env.svc.UnsubscribeByShowtimeEmail(context.Background(), showtimeID, "stranger@z.com")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got err=%v, want ErrNoMatch", err)
	}
	if env.notifications.count() != 1 {
		t.Fatal("table must be unchanged when nothing matches")
	}
}

func TestUnsubscribeByShowtimeEmailUnknownShowtime(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.UnsubscribeByShowtimeEmail(context.Background(), 42, "a@x.com")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got err=%v, want ErrNoMatch", err)
	}
}
