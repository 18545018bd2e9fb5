// Package services contains the server-side business logic: credential
// registration and validation, token issuance, and profile mutation.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/auth"
	"github.com/dmitrijs2005/usermgmt/internal/server/config"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/repositories/accounts"
)

// RegisterRequest is the transient payload of a registration call.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// LoginRequest is the transient payload of a login call.
type LoginRequest struct {
	Username string
	Password string
}

// AuthService orchestrates registration and login. Registration is a
// pass-through to the credential store so that credential policy stays
// centralized there; login validates credentials and mints a bearer token.
type AuthService struct {
	repo          accounts.Repository
	jwtSecret     []byte
	issuer        string
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService from the credential store and
// server config.
func NewAuthService(repo accounts.Repository, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		issuer:        cfg.TokenIssuer,
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register forwards the request to the credential store and returns its
// outcome unchanged. A duplicate username or email is a failed Outcome; only
// an unreachable store is an error.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (models.Outcome, error) {
	outcome, err := s.repo.CreateAccount(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return models.Outcome{}, fmt.Errorf("creating account: %w", err)
	}
	return outcome, nil
}

// Login validates the credentials against the store. Rejected credentials
// (unknown username or password mismatch) are a normal negative result and
// return an empty token with a nil error; a non-nil error always means the
// store or the signer failed to run.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	account, err := s.repo.VerifyPassword(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("verifying credentials: %w", err)
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.issuer, s.tokenValidity, time.Now())
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	return token, nil
}
