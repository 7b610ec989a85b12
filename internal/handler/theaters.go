package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/model"
)

const (
	theaterCacheKey = "theaters:catalog"
	theaterCacheTTL = 5 * time.Minute
)

// TheaterLister is the catalog read surface this handler needs.
type TheaterLister interface {
	List(ctx context.Context) ([]model.Theater, error)
}

// TheaterHandler exposes the supported theater catalog so the extension can
// tell users up front which venues work. The catalog changes rarely, so
// responses are cached in Redis when a client is available.
type TheaterHandler struct {
	Repo  TheaterLister
	Redis *redis.Client // may be nil; caching is then skipped
	Log   *zap.Logger
}

// NewTheaterHandler constructs a TheaterHandler. Repo and log must be
// non-nil; rdb may be nil to disable caching.
func NewTheaterHandler(repo TheaterLister, rdb *redis.Client, log *zap.Logger) *TheaterHandler {
	if repo == nil || log == nil {
		panic("nil dependency passed to NewTheaterHandler")
	}
	return &TheaterHandler{Repo: repo, Redis: rdb, Log: log}
}

// List handles GET /theaters.
func (h *TheaterHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if h.Redis != nil {
		if cached, err := h.Redis.Get(ctx, theaterCacheKey).Bytes(); err == nil {
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	theaters, err := h.Repo.List(ctx)
	if err != nil {
		h.Log.Error("list theaters failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if theaters == nil {
		theaters = []model.Theater{}
	}

	body, err := json.Marshal(theaters)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encoding error"})
	}
	if h.Redis != nil {
		// Cache fill is best-effort; a Redis hiccup must not fail the request.
		if err := h.Redis.Set(ctx, theaterCacheKey, body, theaterCacheTTL).Err(); err != nil {
			h.Log.Warn("theater cache fill failed", zap.Error(err))
		}
	}
	return c.JSONBlob(http.StatusOK, body)
}
