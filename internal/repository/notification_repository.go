package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seatwatch/seatwatch/internal/model"
)

// NotificationRepo manages persistence for seat notifications.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo constructs a NotificationRepo with the given DB handle.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin transactions
// spanning multiple statements when fine-grained control is needed.
func (r *NotificationRepo) DB() *sql.DB {
	return r.db
}

// Exists reports whether a notification row already exists for the
// (email, seat, showtime) triple.
func (r *NotificationRepo) Exists(ctx context.Context, email, seat string, showtimeID uint64) (bool, error) {
	const q = `SELECT 1 FROM seat_notifications WHERE user_email = ? AND seat_number = ? AND showtime_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, email, seat, showtimeID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create inserts a new seat notification and assigns the generated ID back to
// the struct. The table carries a unique key on (user_email, seat_number,
// showtime_id); a concurrent duplicate insert fails with error 1062, which
// callers detect via IsDuplicateEntry and count as already subscribed.
func (r *NotificationRepo) Create(ctx context.Context, n *model.SeatNotification) error {
	const q = `INSERT INTO seat_notifications (user_email, seat_number, showtime_id, specifically_requested)
               VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, n.UserEmail, n.SeatNumber, n.ShowtimeID, n.SpecificallyRequested)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// GetByID retrieves a seat notification by its primary key. It returns
// ErrNotificationNotFound if there is no matching row.
func (r *NotificationRepo) GetByID(ctx context.Context, id uint64) (*model.SeatNotification, error) {
	const q = `SELECT id, user_email, seat_number, showtime_id, specifically_requested, last_notified, created_at
               FROM seat_notifications WHERE id = ?`
	var n model.SeatNotification
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&n.ID, &n.UserEmail, &n.SeatNumber, &n.ShowtimeID, &n.SpecificallyRequested, &n.LastNotified, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// DeleteByID removes a single seat notification. It returns
// ErrNotificationNotFound when no row matched.
func (r *NotificationRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM seat_notifications WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// ListByShowtimeAndEmail returns all notifications a subscriber holds for one
// showtime, ordered by seat number. When none exist it returns an empty slice
// and nil error.
func (r *NotificationRepo) ListByShowtimeAndEmail(ctx context.Context, showtimeID uint64, email string) ([]model.SeatNotification, error) {
	const q = `SELECT id, user_email, seat_number, showtime_id, specifically_requested, last_notified, created_at
               FROM seat_notifications WHERE showtime_id = ? AND user_email = ?
               ORDER BY seat_number ASC`
	rows, err := r.db.QueryContext(ctx, q, showtimeID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.SeatNotification
	for rows.Next() {
		var n model.SeatNotification
		if err := rows.Scan(
			&n.ID, &n.UserEmail, &n.SeatNumber, &n.ShowtimeID, &n.SpecificallyRequested, &n.LastNotified, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByShowtimeAndEmail removes every notification a subscriber holds for
// one showtime inside a single transaction and returns the number of rows
// removed. A failure rolls the transaction back so no partial delete is
// visible. Zero removed rows is not an error; callers decide how to render it.
func (r *NotificationRepo) DeleteByShowtimeAndEmail(ctx context.Context, showtimeID uint64, email string) (n int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	// Ensure rollback or commit at the end; a commit failure surfaces to the caller.
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	const q = `DELETE FROM seat_notifications WHERE showtime_id = ? AND user_email = ?`
	var res sql.Result
	res, err = tx.ExecContext(ctx, q, showtimeID, email)
	if err != nil {
		return 0, err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
