package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAccountRepository keeps accounts in a table with a unique username
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account models.Account) error {
	_, err := executor(ctx, r.db).Exec(ctx,
		`INSERT INTO accounts (username, password_hash, email, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		account.Username, account.PasswordHash, account.Email, account.Role, account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := executor(ctx, r.db).QueryRow(ctx,
		`SELECT username, password_hash, email, role, created_at FROM accounts WHERE username = $1`,
		username,
	).Scan(&account.Username, &account.PasswordHash, &account.Email, &account.Role, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
