package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/repositories/accounts"
)

// UpdateStatus tags the result of a profile update so every failure path is
// visible at the call site.
type UpdateStatus int

const (
	// UpdateSucceeded: the asset reference and timestamp were persisted.
	UpdateSucceeded UpdateStatus = iota
	// UpdateInvalidUpload: the asset reference was empty; the store was
	// never touched.
	UpdateInvalidUpload
	// UpdateAccountNotFound: the authenticated caller's account vanished.
	// A data-integrity condition, fatal to the request.
	UpdateAccountNotFound
	// UpdateFailed: the store rejected the mutation; Reasons carries the
	// store's report.
	UpdateFailed
)

// UpdateResult is the tagged outcome of UpdateProfile.
type UpdateResult struct {
	Status  UpdateStatus
	Reasons []string
}

// ProfileService resolves caller identity from a claim set and applies
// profile mutations through the credential store.
type ProfileService struct {
	repo accounts.Repository
}

func NewProfileService(repo accounts.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// ResolveAccountID extracts the stable account identifier from a caller's
// claim set. It is pure: no store access, identical behavior for every
// entry point that needs the caller's identity.
func (s *ProfileService) ResolveAccountID(claims models.ClaimSet) (string, bool) {
	id, ok := claims.Get(models.ClaimSubject)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// GetProfile loads the caller's account. common.ErrorNotFound means the
// account vanished after authentication.
func (s *ProfileService) GetProfile(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}
	return account, nil
}

// UpdateProfile stores the uploaded asset reference and its timestamp on the
// caller's account. The empty-reference check runs before any store access,
// so a malformed request never touches state. No retries: ordering between
// concurrent updates to the same account is the store's concern.
func (s *ProfileService) UpdateProfile(ctx context.Context, accountID, assetRef string, uploadedAt time.Time) (UpdateResult, error) {
	if assetRef == "" {
		return UpdateResult{Status: UpdateInvalidUpload, Reasons: []string{"invalid upload"}}, nil
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return UpdateResult{Status: UpdateAccountNotFound, Reasons: []string{"account not found"}}, nil
		}
		return UpdateResult{}, fmt.Errorf("looking up account: %w", err)
	}

	account.AvatarKey = assetRef
	account.AvatarUploadedAt = &uploadedAt

	outcome, err := s.repo.Save(ctx, account)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("saving account: %w", err)
	}
	if !outcome.Succeeded {
		return UpdateResult{Status: UpdateFailed, Reasons: outcome.Reasons}, nil
	}

	return UpdateResult{Status: UpdateSucceeded}, nil
}
