// internal/cart/handler.go
package cart

import (
	"net/http"

	"bookstore/internal/apperror"
	"bookstore/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	service Service
	logger  zerolog.Logger
}

func NewHandler(service Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// removalResponse is the body of both removal endpoints.
type removalResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type addItemResponse struct {
	Message     string `json:"message"`
	NewCartItem *Item  `json:"newCartItem"`
}

// Routes mounts the cart endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/cart", h.HandleListItems)
	r.Post("/cart", h.HandleAddItem)
	r.Delete("/cart/{bookId}", h.HandleRemoveItemByBook)
	r.Delete("/del", h.HandleRemoveItem)
}

func (h *Handler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListItems(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if len(entries) == 0 {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.Message{Message: "No items in cart"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, addItemResponse{Message: "Item added to cart", NewCartItem: item})
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookName string `json:"bookName"`
		Email    string `json:"email"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.writeRemoval(w, r, apperror.InvalidInput(msgMissingRemoval))
		return
	}

	h.writeRemoval(w, r, h.service.RemoveItem(r.Context(), req.Email, req.BookName))
}

func (h *Handler) HandleRemoveItemByBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "bookId"))
	if err != nil {
		h.writeRemoval(w, r, apperror.NotFound(msgNotInCart))
		return
	}

	h.writeRemoval(w, r, h.service.RemoveItemByBook(r.Context(), r.URL.Query().Get("email"), bookID))
}

func (h *Handler) writeRemoval(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		httpx.WriteJSON(w, http.StatusOK, removalResponse{Success: true, Message: "Book removed from cart."})
		return
	}

	status := apperror.StatusCode(err)
	msg := apperror.MessageOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("cart removal failed")
		msg = "Internal server error."
	}
	httpx.WriteJSON(w, status, removalResponse{Success: false, Message: msg})
}
