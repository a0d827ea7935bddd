package service

import (
	"context"
	"errors"
	"testing"

	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/repository"
)

// fakeAccountRepository records the input it receives.
type fakeAccountRepository struct {
	calls  []model.AddAccountInput
	result *model.Account
	err    error
}

func (f *fakeAccountRepository) AddAccount(ctx context.Context, input model.AddAccountInput) (*model.Account, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func validInput() model.AddAccountInput {
	return model.AddAccountInput{
		Name:     "valid_name",
		Email:    "valid_email@mail.com",
		Password: "valid_password",
	}
}

func TestAccountService_Add_PassesInputThrough(t *testing.T) {
	repo := &fakeAccountRepository{result: &model.Account{ID: "valid_id"}}
	svc := NewAccountService(repo, nil)

	input := validInput()
	if _, err := svc.Add(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.calls) != 1 {
		t.Fatalf("expected 1 repository call, got %d", len(repo.calls))
	}
	if repo.calls[0] != input {
		t.Errorf("repository received %+v, want %+v", repo.calls[0], input)
	}
}

func TestAccountService_Add_ReturnsStoredAccount(t *testing.T) {
	stored := &model.Account{
		ID:       "valid_id",
		Name:     "valid_name",
		Email:    "valid_email@mail.com",
		Password: "valid_password",
	}
	recorder := metrics.NewInMemory()
	svc := NewAccountService(&fakeAccountRepository{result: stored}, recorder)

	account, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account != stored {
		t.Errorf("expected stored account to be returned as is, got %+v", account)
	}
	if got := recorder.Snapshot().AccountsCreated; got != 1 {
		t.Errorf("AccountsCreated = %d, want 1", got)
	}
}

func TestAccountService_Add_Errors(t *testing.T) {
	storageErr := errors.New("connection reset")

	tests := []struct {
		name     string
		repoErr  error
		wantErr  error
		wantWrap bool
	}{
		{"duplicate_email", repository.ErrEmailExists, ErrEmailInUse, false},
		{"storage_fault", storageErr, storageErr, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := metrics.NewInMemory()
			svc := NewAccountService(&fakeAccountRepository{err: test.repoErr}, recorder)

			account, err := svc.Add(context.Background(), validInput())
			if account != nil {
				t.Errorf("expected no account on failure, got %+v", account)
			}
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
			if test.wantWrap && err == test.wantErr {
				t.Errorf("expected storage error to be wrapped")
			}
			if got := recorder.Snapshot().AccountsCreated; got != 0 {
				t.Errorf("AccountsCreated = %d, want 0", got)
			}
		})
	}
}
