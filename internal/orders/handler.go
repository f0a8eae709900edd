// internal/orders/handler.go
package orders

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

type placeOrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// Routes mounts the order endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/orders", h.HandlePlaceOrder)
	r.Get("/orders", h.HandleListUserOrders)
	r.Get("/getAllOrders", h.HandleListOrders)
}

func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, placeOrderResponse{Message: "Order placed successfully", Order: order})
}

func (h *Handler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleListUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrdersByUser(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}
