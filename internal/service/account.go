// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/repository"
)

// Service errors.
var (
	ErrEmailInUse = errors.New("email already in use")
)

// AccountRepository persists new accounts.
// Implemented by repository.Repository and mongodb.Store.
type AccountRepository interface {
	AddAccount(ctx context.Context, input model.AddAccountInput) (*model.Account, error)
}

// AccountService handles account business logic.
type AccountService struct {
	repo    AccountRepository
	metrics metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo AccountRepository, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		repo:    repo,
		metrics: recorder,
	}
}

// Add creates an account from already validated input.
// The input is handed to the store unchanged.
func (s *AccountService) Add(ctx context.Context, input model.AddAccountInput) (*model.Account, error) {
	account, err := s.repo.AddAccount(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to add account: %w", err)
	}

	s.metrics.IncAccountCreated()

	return account, nil
}
