// Package model defines domain entities for the application.
package model

// Account is a stored account as read back from the account store.
// ID is assigned by the store and is opaque to callers.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddAccountInput is the validated data needed to create an account.
// It is only built once a signup request passed every check.
type AddAccountInput struct {
	Name     string
	Email    string
	Password string
}
