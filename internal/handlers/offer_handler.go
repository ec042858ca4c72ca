package handlers

import (
	"log/slog"
	"net/http"

	"github.com/brewline/coffee-api/internal/service"
	"github.com/brewline/coffee-api/internal/validation"
	validatorv10 "github.com/go-playground/validator/v10"
)

// OfferHandler handles campaign offer HTTP requests
type OfferHandler struct {
	service  *service.OfferService
	validate *validatorv10.Validate
	logger   *slog.Logger
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(service *service.OfferService, validate *validatorv10.Validate, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// CreateOffer handles POST /api/offers
// Every product must be on the menu; the stored offer embeds the products.
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req validation.OfferRequest
	if err := validation.Decode(r.Body, &req, h.validate); err != nil {
		h.logger.Warn("invalid offer request", "error", err)
		WriteError(w, http.StatusBadRequest, validation.Message(err), h.logger)
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), req.Products, req.Price)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, offer, h.logger)
}

// ListOffers handles GET /api/offers
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListOffers(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, offers, h.logger)
}
