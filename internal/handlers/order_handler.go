package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// PlaceOrder handles POST /api/order
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Bad request", h.log)
		return
	}

	receipt, err := h.orderService.PlaceOrder(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, receipt, h.log)
}

// ListOrders handles GET /api/order/{username}
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	orders, err := h.orderService.ListOrders(r.Context(), username)
	if err != nil {
		WriteServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}
