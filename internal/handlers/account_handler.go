package handlers

import (
	"log/slog"
	"net/http"

	"github.com/brewline/coffee-api/internal/service"
	"github.com/brewline/coffee-api/internal/validation"
	validatorv10 "github.com/go-playground/validator/v10"
)

// AccountHandler handles account registration
type AccountHandler struct {
	service  *service.AccountService
	validate *validatorv10.Validate
	logger   *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service *service.AccountService, validate *validatorv10.Validate, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// Register handles POST /api/account
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.AccountRequest
	if err := validation.Decode(r.Body, &req, h.validate); err != nil {
		h.logger.Warn("invalid account request", "error", err)
		WriteError(w, http.StatusBadRequest, validation.Message(err), h.logger)
		return
	}

	account, err := h.service.Register(r.Context(), service.NewAccount{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, account, h.logger)
}
