package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// NewAccount is the input for registering an account
type NewAccount struct {
	Username string
	Password string
	Email    string
	Role     string
}

// AccountService manages customer and staff accounts
type AccountService struct {
	repo       repository.AccountRepository
	log        *slog.Logger
	nowFunc    func() time.Time
	bcryptCost int
}

// NewAccountService creates a new account service
func NewAccountService(repo repository.AccountRepository, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:       repo,
		log:        log.With("component", "accounts"),
		nowFunc:    time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register stores a new account with a hashed password
func (s *AccountService) Register(ctx context.Context, in NewAccount) (*models.Account, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || in.Email == "" || in.Role == "" {
		return nil, badRequest("Bad request", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, badRequest("Password is too long", err)
		}
		return nil, internal("failed to hash password", err)
	}

	account := models.Account{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Role:         in.Role,
		CreatedAt:    s.nowFunc().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, conflict("Email or username already exists", err)
		}
		return nil, internal("failed to store account", err)
	}

	s.log.Info("account registered", "username", account.Username, "role", account.Role)
	return &account, nil
}

// Exists reports whether an account is registered under username
func (s *AccountService) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrAccountNotFound):
		return false, nil
	default:
		return false, err
	}
}
