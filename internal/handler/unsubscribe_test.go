package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/service"
)

type stubUnsubscriber struct {
	removed *service.RemovedNotification
	bulk    *service.BulkRemoval
	err     error

	gotID         uint64
	gotShowtimeID uint64
	gotEmail      string
}

func (s *stubUnsubscriber) UnsubscribeByID(_ context.Context, id uint64) (*service.RemovedNotification, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.removed, nil
}

func (s *stubUnsubscriber) UnsubscribeByShowtimeEmail(_ context.Context, showtimeID uint64, email string) (*service.BulkRemoval, error) {
	s.gotShowtimeID = showtimeID
	s.gotEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.bulk, nil
}

func getUnsubscribeByID(t *testing.T, stub *stubUnsubscriber, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/unsubscribe/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)

	h := NewUnsubscribeHandler(stub, zap.NewNop())
	if err := h.ByID(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func getUnsubscribeBulk(t *testing.T, stub *stubUnsubscriber, showtimeID, email string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe/"+showtimeID+"/"+email, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/unsubscribe/:showtimeId/:email")
	c.SetParamNames("showtimeId", "email")
	c.SetParamValues(showtimeID, email)

	h := NewUnsubscribeHandler(stub, zap.NewNop())
	if err := h.ByShowtimeEmail(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestUnsubscribeByIDRendersConfirmation(t *testing.T) {
	stub := &stubUnsubscriber{removed: &service.RemovedNotification{
		Seat:        "A1",
		MovieName:   "Heart Eyes",
		TheaterName: "AMC Empire 25",
		DateLocal:   "Saturday, March 14, 2026",
		TimeLocal:   "7:30 PM",
	}}
	rec := getUnsubscribeByID(t, stub, "42")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotID != 42 {
		t.Fatalf("id = %d, want 42", stub.gotID)
	}
	body := rec.Body.String()
	for _, want := range []string{"A1", "Heart Eyes", "AMC Empire 25", "Saturday, March 14, 2026", "7:30 PM"} {
		if !strings.Contains(body, want) {
			t.Fatalf("confirmation page missing %q", want)
		}
	}
}

func TestUnsubscribeByIDInvalidLinkIsStillOK(t *testing.T) {
	tests := []struct {
		name string
		stub *stubUnsubscriber
		id   string
	}{
		{"unknown id", &stubUnsubscriber{err: service.ErrNoMatch}, "999"},
		{"non-numeric id", &stubUnsubscriber{}, "not-a-number"},
		{"zero id", &stubUnsubscriber{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := getUnsubscribeByID(t, tt.stub, tt.id)
			// The invalid-link page rides a success status: unsubscribe links
			// are long-lived and clicking one twice is normal.
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "no longer valid") {
				t.Fatal("expected the invalid-link page")
			}
		})
	}
}

func TestUnsubscribeByIDPersistenceFailure(t *testing.T) {
	stub := &stubUnsubscriber{err: errors.New("lock wait timeout")}
	rec := getUnsubscribeByID(t, stub, "42")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestUnsubscribeBulkPluralWording(t *testing.T) {
	tests := []struct {
		name    string
		removed int64
		want    string
	}{
		{"plural", 3, "3 seat notifications"},
		{"singular", 1, "1 seat notification"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubUnsubscriber{bulk: &service.BulkRemoval{
				Removed:     tt.removed,
				MovieName:   "Heart Eyes",
				TheaterName: "AMC Empire 25",
				DateLocal:   "Saturday, March 14, 2026",
				TimeLocal:   "7:30 PM",
			}}
			rec := getUnsubscribeBulk(t, stub, "7", "a@x.com")

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, "Unsubscribed from "+tt.want) {
				t.Fatalf("page missing %q wording:\n%s", tt.want, body)
			}
			if tt.removed == 1 && strings.Contains(body, "1 seat notifications") {
				t.Fatal("singular form must not carry a trailing s")
			}
		})
	}
}

func TestUnsubscribeBulkDecodesEmailParam(t *testing.T) {
	stub := &stubUnsubscriber{bulk: &service.BulkRemoval{Removed: 1}}
	rec := getUnsubscribeBulk(t, stub, "7", "a%40x.com")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotShowtimeID != 7 {
		t.Fatalf("showtimeID = %d, want 7", stub.gotShowtimeID)
	}
	if stub.gotEmail != "a@x.com" {
		t.Fatalf("email = %q, want decoded a@x.com", stub.gotEmail)
	}
}

func TestUnsubscribeBulkInvalidLink(t *testing.T) {
	stub := &stubUnsubscriber{err: service.ErrNoMatch}
	rec := getUnsubscribeBulk(t, stub, "7", "a@x.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no longer valid") {
		t.Fatal("expected the invalid-link page")
	}
}

func TestUnsubscribeBulkPersistenceFailure(t *testing.T) {
	stub := &stubUnsubscriber{err: errors.New("tx rollback")}
	rec := getUnsubscribeBulk(t, stub, "7", "a@x.com")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
