package repository

import (
	"context"
	"sync"

	"github.com/brewline/coffee-api/internal/models"
)

// InMemoryAccountRepository implements AccountRepository with in-memory storage
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

// NewInMemoryAccountRepository creates an empty account repository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[string]models.Account),
	}
}

// Create stores a new account; usernames are unique
func (r *InMemoryAccountRepository) Create(ctx context.Context, account models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Username]; exists {
		return ErrAccountExists
	}
	r.accounts[account.Username] = account
	return nil
}

// GetByUsername returns the account registered under username
func (r *InMemoryAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	account, exists := r.accounts[username]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}
