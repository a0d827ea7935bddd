// Package controller turns transport requests into validated domain calls
// and maps their outcomes back into response envelopes.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/service"
)

// Controller handles one request and produces one envelope.
type Controller interface {
	Handle(ctx context.Context, req Request) Response
}

// EmailValidator decides whether a string is a well-formed email address.
// Malformed input yields false; an error means the validator itself failed.
type EmailValidator interface {
	IsValid(email string) (bool, error)
}

// AddAccount creates an account from validated input.
type AddAccount interface {
	Add(ctx context.Context, input model.AddAccountInput) (*model.Account, error)
}

// SignUpController validates signup requests and creates accounts.
type SignUpController struct {
	emailValidator EmailValidator
	addAccount     AddAccount
	logger         *slog.Logger
	metrics        metrics.Recorder
}

// NewSignUpController creates a new SignUpController.
func NewSignUpController(emailValidator EmailValidator, addAccount AddAccount, logger *slog.Logger, recorder metrics.Recorder) *SignUpController {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SignUpController{
		emailValidator: emailValidator,
		addAccount:     addAccount,
		logger:         logger,
		metrics:        recorder,
	}
}

// Handle runs the signup pipeline. Checks run in a fixed order and the
// first violation wins. Collaborator faults, including panics, become a
// 500 whose body never carries the fault.
func (c *SignUpController) Handle(ctx context.Context, req Request) (resp Response) {
	start := time.Now()
	defer func() {
		if rvr := recover(); rvr != nil {
			c.logger.ErrorContext(ctx, "signup_failed", slog.Any("panic", rvr))
			resp = c.reject(ServerError(InternalError()))
		}
		c.metrics.ObserveSignupDuration(time.Since(start))
	}()

	body := req.Body

	for _, p := range body.ordered() {
		if p.param.missing() {
			return c.reject(BadRequest(MissingParam(p.name)))
		}
		if p.param.NotString {
			return c.reject(BadRequest(InvalidParam(p.name)))
		}
	}

	if body.Password.Value != body.PasswordConfirmation.Value {
		return c.reject(BadRequest(InvalidParam(FieldPasswordConfirmation)))
	}

	valid, err := c.emailValidator.IsValid(body.Email.Value)
	if err != nil {
		return c.fault(ctx, "email validation", err)
	}
	if !valid {
		return c.reject(BadRequest(InvalidParam(FieldEmail)))
	}

	input := model.AddAccountInput{
		Name:     body.Name.Value,
		Email:    body.Email.Value,
		Password: body.Password.Value,
	}

	account, err := c.addAccount.Add(ctx, input)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			return c.reject(BadRequest(InvalidParam(FieldEmail)))
		}
		return c.fault(ctx, "add account", err)
	}

	c.logger.InfoContext(ctx, "account_created", slog.String("account_id", account.ID))

	return OK(account)
}

// fault logs a collaborator error and normalizes it to a 500.
func (c *SignUpController) fault(ctx context.Context, stage string, err error) Response {
	c.logger.ErrorContext(ctx, "signup_failed",
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
	return c.reject(ServerError(InternalError()))
}

// reject records the rejection reason of a non-200 envelope.
func (c *SignUpController) reject(resp Response) Response {
	if desc, ok := resp.Body.(ErrorDescriptor); ok {
		switch desc.Kind {
		case KindMissingParam:
			c.metrics.IncSignupRejected(metrics.ReasonMissingParam)
		case KindInvalidParam:
			c.metrics.IncSignupRejected(metrics.ReasonInvalidParam)
		default:
			c.metrics.IncSignupRejected(metrics.ReasonServerError)
		}
	}
	return resp
}
