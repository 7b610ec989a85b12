package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/service"
	"github.com/seatwatch/seatwatch/internal/view"
)

// UnsubscribeService is the part of the service layer this handler consumes.
type UnsubscribeService interface {
	UnsubscribeByID(ctx context.Context, id uint64) (*service.RemovedNotification, error)
	UnsubscribeByShowtimeEmail(ctx context.Context, showtimeID uint64, email string) (*service.BulkRemoval, error)
}

// UnsubscribeHandler serves the unsubscribe links embedded in confirmation
// email. Both endpoints render HTML, not JSON: they are opened in a browser.
type UnsubscribeHandler struct {
	Svc UnsubscribeService
	Log *zap.Logger
}

// NewUnsubscribeHandler constructs an UnsubscribeHandler. Both dependencies
// must be non-nil.
func NewUnsubscribeHandler(svc UnsubscribeService, log *zap.Logger) *UnsubscribeHandler {
	if svc == nil || log == nil {
		panic("nil dependency passed to NewUnsubscribeHandler")
	}
	return &UnsubscribeHandler{Svc: svc, Log: log}
}

// ByID handles GET /unsubscribe/:id. A reference that matches nothing renders
// the invalid-link page with a 200 status, since these links are long-lived
// and may be clicked again after the notification is already gone. Only a
// persistence failure produces a server-error status.
func (h *UnsubscribeHandler) ByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		// A mangled link and an expired one look the same to the subscriber.
		return h.invalidLink(c)
	}
	removed, err := h.Svc.UnsubscribeByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoMatch) {
			return h.invalidLink(c)
		}
		h.Log.Error("unsubscribe by id failed", zap.Uint64("id", id), zap.Error(err))
		return c.String(http.StatusInternalServerError, "something went wrong, please try again later")
	}
	page, err := view.UnsubscribedSeat(removed.Seat, removed.MovieName, removed.TheaterName, removed.DateLocal, removed.TimeLocal)
	if err != nil {
		return c.String(http.StatusInternalServerError, "something went wrong, please try again later")
	}
	return c.HTML(http.StatusOK, page)
}

// ByShowtimeEmail handles GET /unsubscribe/:showtimeId/:email and removes
// every notification the address holds for that showtime.
func (h *UnsubscribeHandler) ByShowtimeEmail(c echo.Context) error {
	showtimeID, err := strconv.ParseUint(c.Param("showtimeId"), 10, 64)
	if err != nil || showtimeID == 0 {
		return h.invalidLink(c)
	}
	email := c.Param("email")
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}
	if email == "" {
		return h.invalidLink(c)
	}
	removal, err := h.Svc.UnsubscribeByShowtimeEmail(c.Request().Context(), showtimeID, email)
	if err != nil {
		if errors.Is(err, service.ErrNoMatch) {
			return h.invalidLink(c)
		}
		h.Log.Error("bulk unsubscribe failed",
			zap.Uint64("showtime_id", showtimeID),
			zap.String("email", email),
			zap.Error(err))
		return c.String(http.StatusInternalServerError, "something went wrong, please try again later")
	}
	page, err := view.UnsubscribedBulk(removal.Removed, removal.MovieName, removal.TheaterName, removal.DateLocal, removal.TimeLocal)
	if err != nil {
		return c.String(http.StatusInternalServerError, "something went wrong, please try again later")
	}
	return c.HTML(http.StatusOK, page)
}

func (h *UnsubscribeHandler) invalidLink(c echo.Context) error {
	page, err := view.InvalidLink()
	if err != nil {
		return c.String(http.StatusInternalServerError, "something went wrong, please try again later")
	}
	return c.HTML(http.StatusOK, page)
}
