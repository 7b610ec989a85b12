package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/seatwatch/seatwatch/internal/model"
)

// MovieRepo manages persistence for movies. Movies are created lazily when a
// subscription first references their name; every later reference bumps
// last_detected so a cleanup job can expire movies no longer being scraped.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// GetByName retrieves a movie by its exact name. It returns ErrMovieNotFound
// if there is no matching row.
func (r *MovieRepo) GetByName(ctx context.Context, name string) (*model.Movie, error) {
	const q = `SELECT id, name, last_detected FROM movies WHERE name = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, name).Scan(&m.ID, &m.Name, &m.LastDetected)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByID retrieves a movie by its primary key. It returns ErrMovieNotFound
// if there is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, name, last_detected FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.LastDetected)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new movie and assigns the generated ID back to the struct.
// The movie name carries a unique key, so a concurrent creation of the same
// name fails with a duplicate-entry error; callers should detect it with
// IsDuplicateEntry and re-read the winner's row.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (name, last_detected) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.LastDetected.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Touch sets last_detected on an existing movie to the given instant.
func (r *MovieRepo) Touch(ctx context.Context, id uint64, at time.Time) error {
	const q = `UPDATE movies SET last_detected = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, at.UTC(), id)
	return err
}
