// Package router defines how HTTP routes are registered for the API.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/seatwatch/seatwatch/internal/handler"
)

// RegisterRoutes wires every endpoint of the service onto the provided Echo
// instance.
//
// CORS is restricted to the configured allow-list (the browser extension's
// origin plus local development origins) and only applies meaningfully to
// POST /notifications; the unsubscribe pages are plain browser navigations.
// The rate limiter guards the subscription endpoint only; unsubscribe links
// arrive from email clients and must always work.
func RegisterRoutes(e *echo.Echo, n *handler.NotificationHandler, u *handler.UnsubscribeHandler, t *handler.TheaterHandler, corsOrigins []string, rateLimiter echo.MiddlewareFunc) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Subscription endpoint used by the extension.
	e.POST("/notifications", n.Create, rateLimiter)

	// Supported theater catalog.
	e.GET("/theaters", t.List)

	// Unsubscribe links embedded in confirmation email. The single-id and the
	// (showtime, email) bulk form differ only in path depth.
	e.GET("/unsubscribe/:id", u.ByID)
	e.GET("/unsubscribe/:showtimeId/:email", u.ByShowtimeEmail)
}
