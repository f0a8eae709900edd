// Package httpapi assembles the HTTP surface: middleware, the domain routes
// and the health check.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"bookstore/internal/cart"
	"bookstore/internal/catalog"
	"bookstore/internal/favorites"
	"bookstore/internal/httpx"
	"bookstore/internal/orders"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Catalog   catalog.Service
	Cart      cart.Service
	Favorites favorites.Service
	Orders    orders.Service
	DB        Pinger
	Logger    zerolog.Logger
	// Limiter is optional; nil disables rate limiting.
	Limiter *rate.Limiter
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(Trace)

	r.Get("/healthz", health(d.DB, d.Logger))

	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(RateLimit(d.Limiter))
		}
		catalog.NewHandler(d.Catalog, d.Logger).Routes(r)
		cart.NewHandler(d.Cart, d.Logger).Routes(r)
		favorites.NewHandler(d.Favorites, d.Logger).Routes(r)
		orders.NewHandler(d.Orders, d.Logger).Routes(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.Message{Message: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, httpx.Message{Message: "Method Not Allowed"})
	})
	return r
}

func health(db Pinger, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn().Err(err).Msg("health check failed")
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
