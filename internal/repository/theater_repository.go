package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seatwatch/seatwatch/internal/model"
)

// TheaterRepo manages read access to the pre-seeded theater catalog.
// Theaters are never created through the request path; unknown names are
// rejected so that every showtime carries trustworthy timezone metadata.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo {
	return &TheaterRepo{db: db}
}

// GetByName retrieves a theater by its exact name. It returns
// ErrTheaterNotFound when the name is not in the catalog.
func (r *TheaterRepo) GetByName(ctx context.Context, name string) (*model.Theater, error) {
	const q = `SELECT id, name, timezone FROM theaters WHERE name = ?`
	var t model.Theater
	err := r.db.QueryRowContext(ctx, q, name).Scan(&t.ID, &t.Name, &t.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a theater by its primary key. It returns
// ErrTheaterNotFound if there is no matching row.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	const q = `SELECT id, name, timezone FROM theaters WHERE id = ?`
	var t model.Theater
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns the full theater catalog ordered by name. When the catalog is
// empty it returns an empty slice and nil error.
func (r *TheaterRepo) List(ctx context.Context) ([]model.Theater, error) {
	const q = `SELECT id, name, timezone FROM theaters ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Theater
	for rows.Next() {
		var t model.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.Timezone); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
