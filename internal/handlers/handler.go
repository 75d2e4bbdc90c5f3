package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/harentsoaR/mamacare-api/internal/services"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services the HTTP endpoints delegate to.
type Handler struct {
	Auth    *services.AuthService
	History *services.HistoryService
	Catalog *services.CatalogService
	DB      Pinger
	Logger  *slog.Logger

	RefreshTTL   time.Duration
	CookieSecure bool
}

func NewHandler(auth *services.AuthService, history *services.HistoryService, catalog *services.CatalogService, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		Auth:       auth,
		History:    history,
		Catalog:    catalog,
		DB:         db,
		Logger:     logger,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}
