package service

import (
	"context"
	"strings"
	"testing"

	"github.com/brewline/coffee-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAccountService() (*AccountService, *repository.InMemoryAccountRepository) {
	repo := repository.NewInMemoryAccountRepository()
	svc := NewAccountService(repo, discardLogger())
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo
}

func TestAccountService_Register(t *testing.T) {
	svc, repo := newTestAccountService()
	ctx := context.Background()

	account, err := svc.Register(ctx, NewAccount{Username: "alice", Password: "s3cret", Email: "alice@example.com", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.False(t, account.CreatedAt.IsZero())

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))

	_, err = svc.Register(ctx, NewAccount{Username: "alice", Password: "other", Email: "a2@example.com", Role: "user"})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	svc, _ := newTestAccountService()

	tests := []struct {
		name string
		in   NewAccount
	}{
		{"no username", NewAccount{Password: "p", Email: "e@example.com", Role: "user"}},
		{"blank username", NewAccount{Username: "  ", Password: "p", Email: "e@example.com", Role: "user"}},
		{"no password", NewAccount{Username: "u", Email: "e@example.com", Role: "user"}},
		{"no email", NewAccount{Username: "u", Password: "p", Role: "user"}},
		{"no role", NewAccount{Username: "u", Password: "p", Email: "e@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			assert.Equal(t, KindBadRequest, KindOf(err))
		})
	}
}

func TestAccountService_Register_PasswordTooLong(t *testing.T) {
	svc, _ := newTestAccountService()

	_, err := svc.Register(context.Background(), NewAccount{
		Username: "u", Password: strings.Repeat("x", 80), Email: "e@example.com", Role: "user",
	})
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestAccountService_Exists(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	ok, err := svc.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Register(ctx, NewAccount{Username: "alice", Password: "p", Email: "alice@example.com", Role: "user"})
	require.NoError(t, err)

	ok, err = svc.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}
