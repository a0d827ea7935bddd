//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/accountd/accountd/internal/testutil"
)

// ============================================================================
// Account Repository Integration Tests
// ============================================================================

func TestIntegrationAccountRepository_AddAccount(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	input := testutil.NewTestAccountInput(t)

	account, err := repo.AddAccount(ctx, input)
	if err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	if account.ID == "" {
		t.Fatal("ID should be assigned")
	}
	if account.Name != input.Name {
		t.Errorf("Name mismatch: got %q, want %q", account.Name, input.Name)
	}
	if account.Email != input.Email {
		t.Errorf("Email mismatch: got %q, want %q", account.Email, input.Email)
	}
	if account.Password != input.Password {
		t.Errorf("Password mismatch: got %q, want %q", account.Password, input.Password)
	}

	stored, err := repo.GetAccountByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if *stored != *account {
		t.Errorf("stored account %+v differs from returned %+v", stored, account)
	}
}

func TestIntegrationAccountRepository_AddAccount_DistinctIDs(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	first, err := repo.AddAccount(ctx, testutil.NewTestAccountInput(t))
	if err != nil {
		t.Fatalf("AddAccount (first) failed: %v", err)
	}
	second, err := repo.AddAccount(ctx, testutil.NewTestAccountInput(t))
	if err != nil {
		t.Fatalf("AddAccount (second) failed: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("expected distinct IDs, both were %q", first.ID)
	}
}

func TestIntegrationAccountRepository_AddAccount_DuplicateEmail(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	input := testutil.NewTestAccountInput(t)
	if _, err := repo.AddAccount(ctx, input); err != nil {
		t.Fatalf("AddAccount (first) failed: %v", err)
	}

	_, err := repo.AddAccount(ctx, input)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationAccountRepository_NotFound(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	if _, err := repo.GetAccountByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound by ID, got: %v", err)
	}
}

func newAccountTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetAccountsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset accounts schema: %v", err)
	}

	return ctx, repo
}
