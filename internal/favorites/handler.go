// internal/favorites/handler.go
package favorites

import (
	"net/http"

	"bookstore/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	service Service
	logger  zerolog.Logger
}

func NewHandler(service Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the favorites endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/favorites", h.HandleListFavorites)
	r.Post("/favorites", h.HandleAddFavorite)
}

func (h *Handler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string `json:"email"`
		BookID string `json:"bookId"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.service.AddFavorite(r.Context(), req.Email, req.BookID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Book added to favorites"})
}

func (h *Handler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListFavorites(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}
