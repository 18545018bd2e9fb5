// Package accounts implements the credential store: account persistence,
// password hashing and verification.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

// Repository is the narrow capability contract the identity services require
// from a credential store. Soft business failures (duplicate username/email,
// constraint violations on save) are reported as failed Outcomes; absent
// records as common.ErrorNotFound; infrastructure failures as other errors.
type Repository interface {
	// CreateAccount hashes the password and persists a new account.
	CreateAccount(ctx context.Context, username, email, password string) (models.Outcome, error)

	// VerifyPassword returns the account when the password matches the
	// stored hash for the username, common.ErrorNotFound otherwise.
	VerifyPassword(ctx context.Context, username, password string) (*models.Account, error)

	// FindByID looks an account up by its immutable id.
	FindByID(ctx context.Context, id string) (*models.Account, error)

	// Save persists the account's mutable profile fields.
	Save(ctx context.Context, account *models.Account) (models.Outcome, error)
}
