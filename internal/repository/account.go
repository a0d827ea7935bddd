package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"

	"github.com/accountd/accountd/internal/model"
)

// Common errors for account repository operations.
// Every account store reports these, whatever its engine.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already exists")
)

// AddAccount stores a new account under a freshly generated ULID and
// returns the row as read back from the database.
func (r *Repository) AddAccount(ctx context.Context, input model.AddAccountInput) (*model.Account, error) {
	query := `
		INSERT INTO accounts (id, name, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	id := ulid.Make().String()

	_, err := r.pool.Exec(ctx, query,
		id,
		input.Name,
		input.Email,
		input.Password,
		time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	account, err := r.GetAccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back account: %w", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by its ID.
func (r *Repository) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	query := `
		SELECT id, name, email, password
		FROM accounts
		WHERE id = $1
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Password,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return &account, nil
}
