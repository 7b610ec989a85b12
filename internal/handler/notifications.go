package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/service"
)

// SubscriptionService is the part of the service layer this handler consumes.
type SubscriptionService interface {
	Subscribe(ctx context.Context, req service.SubscribeRequest) (*service.SubscribeResult, error)
}

// NotificationHandler serves the subscription endpoint used by the browser
// extension.
type NotificationHandler struct {
	Svc SubscriptionService
	Log *zap.Logger
}

// NewNotificationHandler constructs a NotificationHandler. Both dependencies
// must be non-nil.
func NewNotificationHandler(svc SubscriptionService, log *zap.Logger) *NotificationHandler {
	if svc == nil || log == nil {
		panic("nil dependency passed to NewNotificationHandler")
	}
	return &NotificationHandler{Svc: svc, Log: log}
}

// Create handles POST /notifications. Domain rejections (unsupported theater,
// past showtime) come back as a 200 response carrying an "error" payload
// field; the extension branches on the payload, not the status code.
func (h *NotificationHandler) Create(c echo.Context) error {
	var body struct {
		Email                  string    `json:"email"`
		SeatNumbers            []string  `json:"seatNumbers"`
		URL                    string    `json:"url"`
		Movie                  string    `json:"movie"`
		Theater                string    `json:"theater"`
		Showtime               time.Time `json:"showtime"`
		AreSpecificallyRequest bool      `json:"areSpecificallyRequested"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.TrimSpace(body.Email)
	switch {
	case email == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	case strings.TrimSpace(body.URL) == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url is required"})
	case strings.TrimSpace(body.Movie) == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie is required"})
	case strings.TrimSpace(body.Theater) == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "theater is required"})
	case body.Showtime.IsZero():
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime is required"})
	}

	result, err := h.Svc.Subscribe(c.Request().Context(), service.SubscribeRequest{
		Email:                 email,
		SeatNumbers:           body.SeatNumbers,
		SeatingURL:            strings.TrimSpace(body.URL),
		MovieName:             strings.TrimSpace(body.Movie),
		TheaterName:           strings.TrimSpace(body.Theater),
		StartsAt:              body.Showtime,
		SpecificallyRequested: body.AreSpecificallyRequest,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seatNumbers is required"})
		case errors.Is(err, service.ErrUnsupportedTheater):
			return c.JSON(http.StatusOK, echo.Map{"error": "theater is not supported"})
		case errors.Is(err, service.ErrPastShowtime):
			return c.JSON(http.StatusOK, echo.Map{"error": "showtime is already in the past"})
		}
		h.Log.Error("subscribe failed", zap.String("email", email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if result.AlreadySubscribed {
		return c.JSON(http.StatusOK, echo.Map{"exists": true})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"exists":  false,
		"created": result.Created,
		"total":   result.Total,
	})
}
