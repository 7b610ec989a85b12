package service

import (
	"context"
	"fmt"
	"time"

	"github.com/seatwatch/seatwatch/internal/model"
	"github.com/seatwatch/seatwatch/internal/notifier"
	"github.com/seatwatch/seatwatch/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics the service
// relies on: sentinel not-found errors and duplicate-entry failures on unique
// key collisions (injected per test where a race is being simulated).

type fakeTheaters struct {
	byID map[uint64]*model.Theater
}

func newFakeTheaters(theaters ...model.Theater) *fakeTheaters {
	f := &fakeTheaters{byID: make(map[uint64]*model.Theater)}
	for i := range theaters {
		t := theaters[i]
		f.byID[t.ID] = &t
	}
	return f
}

func (f *fakeTheaters) GetByName(_ context.Context, name string) (*model.Theater, error) {
	for _, t := range f.byID {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrTheaterNotFound
}

func (f *fakeTheaters) GetByID(_ context.Context, id uint64) (*model.Theater, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrTheaterNotFound
	}
	cp := *t
	return &cp, nil
}

type fakeMovies struct {
	byID      map[uint64]*model.Movie
	nextID    uint64
	createErr error // returned once by Create when set
	touched   []uint64
}

func newFakeMovies() *fakeMovies {
	return &fakeMovies{byID: make(map[uint64]*model.Movie), nextID: 1}
}

func (f *fakeMovies) GetByName(_ context.Context, name string) (*model.Movie, error) {
	for _, m := range f.byID {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (f *fakeMovies) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovies) Create(_ context.Context, m *model.Movie) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	m.ID = f.nextID
	f.nextID++
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMovies) Touch(_ context.Context, id uint64, at time.Time) error {
	m, ok := f.byID[id]
	if !ok {
		return repository.ErrMovieNotFound
	}
	m.LastDetected = at
	f.touched = append(f.touched, id)
	return nil
}

// put installs a pre-existing movie without going through Create.
func (f *fakeMovies) put(m model.Movie) {
	f.byID[m.ID] = &m
	if m.ID >= f.nextID {
		f.nextID = m.ID + 1
	}
}

type fakeShowtimes struct {
	byID    map[uint64]*model.Showtime
	nextID  uint64
	created int
}

func newFakeShowtimes() *fakeShowtimes {
	return &fakeShowtimes{byID: make(map[uint64]*model.Showtime), nextID: 1}
}

func (f *fakeShowtimes) GetBySeatingURL(_ context.Context, url string) (*model.Showtime, error) {
	for _, s := range f.byID {
		if s.SeatingURL == url {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrShowtimeNotFound
}

func (f *fakeShowtimes) GetByID(_ context.Context, id uint64) (*model.Showtime, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrShowtimeNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShowtimes) Create(_ context.Context, s *model.Showtime) error {
	s.ID = f.nextID
	f.nextID++
	f.created++
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeShowtimes) put(s model.Showtime) {
	f.byID[s.ID] = &s
	if s.ID >= f.nextID {
		f.nextID = s.ID + 1
	}
}

type fakeNotifications struct {
	byID      map[uint64]*model.SeatNotification
	nextID    uint64
	createErr func(n *model.SeatNotification) error // consulted before every insert when set
	deleteErr error
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{byID: make(map[uint64]*model.SeatNotification), nextID: 1}
}

func tripleKey(email, seat string, showtimeID uint64) string {
	return fmt.Sprintf("%s|%s|%d", email, seat, showtimeID)
}

func (f *fakeNotifications) Exists(_ context.Context, email, seat string, showtimeID uint64) (bool, error) {
	for _, n := range f.byID {
		if tripleKey(n.UserEmail, n.SeatNumber, n.ShowtimeID) == tripleKey(email, seat, showtimeID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) Create(_ context.Context, n *model.SeatNotification) error {
	if f.createErr != nil {
		if err := f.createErr(n); err != nil {
			return err
		}
	}
	n.ID = f.nextID
	f.nextID++
	cp := *n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeNotifications) GetByID(_ context.Context, id uint64) (*model.SeatNotification, error) {
	n, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotifications) DeleteByID(_ context.Context, id uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotificationNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeNotifications) ListByShowtimeAndEmail(_ context.Context, showtimeID uint64, email string) ([]model.SeatNotification, error) {
	var out []model.SeatNotification
	for _, n := range f.byID {
		if n.ShowtimeID == showtimeID && n.UserEmail == email {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) DeleteByShowtimeAndEmail(_ context.Context, showtimeID uint64, email string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var removed int64
	for id, n := range f.byID {
		if n.ShowtimeID == showtimeID && n.UserEmail == email {
			delete(f.byID, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeNotifications) count() int { return len(f.byID) }

type fakeMailer struct {
	sent    []notifier.Confirmation
	sendErr error
}

func (f *fakeMailer) SendConfirmation(c notifier.Confirmation) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, c)
	return nil
}
