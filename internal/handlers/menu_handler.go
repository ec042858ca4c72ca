package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brewline/coffee-api/internal/service"
	"github.com/brewline/coffee-api/internal/validation"
	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service  *service.MenuService
	validate *validatorv10.Validate
	logger   *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, validate *validatorv10.Validate, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// ListMenu handles GET /api/coffee
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetItem handles GET /api/coffee/{id}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// CreateItem handles POST /api/menu
func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req validation.MenuItemRequest
	if err := validation.Decode(r.Body, &req, h.validate); err != nil {
		h.logger.Warn("invalid menu item request", "error", err)
		WriteError(w, http.StatusBadRequest, validation.Message(err), h.logger)
		return
	}

	item, err := h.service.AddItem(r.Context(), req.ID, service.MenuItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, item, h.logger)
}

// UpdateItem handles PUT /api/menu/{id}
func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req validation.MenuItemUpdateRequest
	if err := validation.Decode(r.Body, &req, h.validate); err != nil {
		h.logger.Warn("invalid menu update request", "id", id, "error", err)
		WriteError(w, http.StatusBadRequest, validation.Message(err), h.logger)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, service.MenuItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// DeleteItem handles DELETE /api/menu/{id}
func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), id); err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, "Product deleted successfully", h.logger)
}

// itemID parses the {id} URL parameter, writing a 400 when it is not a positive integer
func (h *MenuHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("invalid menu item ID", "id", raw)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return 0, false
	}
	return id, true
}
