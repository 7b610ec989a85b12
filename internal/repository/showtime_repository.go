package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seatwatch/seatwatch/internal/model"
)

// ShowtimeRepo manages persistence for showtimes. The seating-map URL is the
// natural key: ticketing systems mint a fresh URL per showing, so a request
// carrying a known URL refers to an existing showtime regardless of any other
// field it states.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// GetBySeatingURL retrieves a showtime by its seating-map URL. It returns
// ErrShowtimeNotFound if there is no matching row.
func (r *ShowtimeRepo) GetBySeatingURL(ctx context.Context, url string) (*model.Showtime, error) {
	const q = `SELECT id, movie_id, theater_id, starts_at, seating_url FROM showtimes WHERE seating_url = ?`
	var s model.Showtime
	err := r.db.QueryRowContext(ctx, q, url).Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartsAt, &s.SeatingURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a showtime by its primary key. It returns
// ErrShowtimeNotFound if there is no matching row.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, movie_id, theater_id, starts_at, seating_url FROM showtimes WHERE id = ?`
	var s model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartsAt, &s.SeatingURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new showtime and assigns the generated ID back to the
// struct. seating_url carries a unique key; concurrent creation of the same
// URL fails with a duplicate-entry error, which callers should resolve by
// re-reading via GetBySeatingURL.
func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	const q = `INSERT INTO showtimes (movie_id, theater_id, starts_at, seating_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.TheaterID, s.StartsAt.UTC(), s.SeatingURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}
