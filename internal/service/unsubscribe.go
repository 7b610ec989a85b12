package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/model"
	"github.com/seatwatch/seatwatch/internal/queue"
	"github.com/seatwatch/seatwatch/internal/repository"
)

// RemovedNotification describes a single deleted seat notification with the
// display data the confirmation page renders.
type RemovedNotification struct {
	Seat        string
	MovieName   string
	TheaterName string
	DateLocal   string
	TimeLocal   string
}

// BulkRemoval reports a (showtime, email)-scoped unsubscription.
type BulkRemoval struct {
	Removed     int64
	MovieName   string
	TheaterName string
	DateLocal   string
	TimeLocal   string
}

// UnsubscribeByID deletes one seat notification and returns its display data.
// ErrNoMatch means nothing was deleted (unknown or already-used link); any
// other error is a persistence failure that handlers surface as a server
// error.
func (s *Service) UnsubscribeByID(ctx context.Context, id uint64) (*RemovedNotification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("load notification: %w", err)
	}

	showtime, movie, theater, err := s.loadShowtimeRefs(ctx, n.ShowtimeID)
	if err != nil {
		return nil, err
	}

	if err := s.notifications.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			// Deleted concurrently between lookup and delete; same outcome
			// for the subscriber as a stale link.
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("delete notification: %w", err)
	}

	s.announceUnsubscribed(ctx, showtime.ID, n.UserEmail, 1)

	dateLocal, timeLocal := localFormat(showtime.StartsAt, theater.Timezone)
	return &RemovedNotification{
		Seat:        n.SeatNumber,
		MovieName:   movie.Name,
		TheaterName: theater.Name,
		DateLocal:   dateLocal,
		TimeLocal:   timeLocal,
	}, nil
}

// UnsubscribeByShowtimeEmail deletes every notification the given address
// holds for the given showtime, in one transaction. ErrNoMatch means no row
// matched (including an unknown showtime id).
func (s *Service) UnsubscribeByShowtimeEmail(ctx context.Context, showtimeID uint64, email string) (*BulkRemoval, error) {
	showtime, err := s.showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("load showtime: %w", err)
	}

	// Resolve display data before deleting so a reference lookup failure
	// cannot surface after the rows are already gone.
	movie, theater, err := s.loadRefs(ctx, showtime)
	if err != nil {
		return nil, err
	}

	removed, err := s.notifications.DeleteByShowtimeAndEmail(ctx, showtimeID, email)
	if err != nil {
		return nil, fmt.Errorf("delete notifications: %w", err)
	}
	if removed == 0 {
		return nil, ErrNoMatch
	}

	s.announceUnsubscribed(ctx, showtimeID, email, removed)

	dateLocal, timeLocal := localFormat(showtime.StartsAt, theater.Timezone)
	return &BulkRemoval{
		Removed:     removed,
		MovieName:   movie.Name,
		TheaterName: theater.Name,
		DateLocal:   dateLocal,
		TimeLocal:   timeLocal,
	}, nil
}

// loadShowtimeRefs resolves a showtime and its movie/theater references by
// explicit queries (no in-memory object graph; each entity is fetched by id).
func (s *Service) loadShowtimeRefs(ctx context.Context, showtimeID uint64) (*model.Showtime, *model.Movie, *model.Theater, error) {
	showtime, err := s.showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load showtime: %w", err)
	}
	movie, theater, err := s.loadRefs(ctx, showtime)
	if err != nil {
		return nil, nil, nil, err
	}
	return showtime, movie, theater, nil
}

func (s *Service) loadRefs(ctx context.Context, showtime *model.Showtime) (*model.Movie, *model.Theater, error) {
	movie, err := s.movies.GetByID(ctx, showtime.MovieID)
	if err != nil {
		return nil, nil, fmt.Errorf("load movie: %w", err)
	}
	theater, err := s.theaters.GetByID(ctx, showtime.TheaterID)
	if err != nil {
		return nil, nil, fmt.Errorf("load theater: %w", err)
	}
	return movie, theater, nil
}

// announceUnsubscribed publishes the lifecycle event; failures are logged
// only, the delete is already committed.
func (s *Service) announceUnsubscribed(ctx context.Context, showtimeID uint64, email string, removed int64) {
	if err := s.publishUnsubscribed(ctx, queue.UnsubscribedEvent{
		EventID:      uuid.NewString(),
		ShowtimeID:   showtimeID,
		UserEmail:    email,
		RemovedCount: removed,
		OccurredAt:   s.now().UTC().Format(time.RFC3339),
	}); err != nil {
		s.log.Warn("publish unsubscribed event failed",
			zap.Uint64("showtime_id", showtimeID),
			zap.Error(err))
	}
}
