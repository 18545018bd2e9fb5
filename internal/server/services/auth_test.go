package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/auth"
	"github.com/dmitrijs2005/usermgmt/internal/server/config"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

// --- helpers ---

type fakeAccountsRepo struct {
	createOutcome models.Outcome
	createErr     error
	created       []RegisterRequest

	verifyOut *models.Account
	verifyErr error

	findOut *models.Account
	findErr error
	findN   int

	saveOutcome models.Outcome
	saveErr     error
	saveN       int
	saved       *models.Account
}

func (f *fakeAccountsRepo) CreateAccount(ctx context.Context, username, email, password string) (models.Outcome, error) {
	f.created = append(f.created, RegisterRequest{Username: username, Email: email, Password: password})
	return f.createOutcome, f.createErr
}

func (f *fakeAccountsRepo) VerifyPassword(ctx context.Context, username, password string) (*models.Account, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyOut, nil
}

func (f *fakeAccountsRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	f.findN++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeAccountsRepo) Save(ctx context.Context, account *models.Account) (models.Outcome, error) {
	f.saveN++
	f.saved = account
	return f.saveOutcome, f.saveErr
}

func newAuthService(repo *fakeAccountsRepo) *AuthService {
	cfg := &config.Config{
		SecretKey:             "k",
		TokenIssuer:           "usermgmt",
		TokenValidityDuration: time.Hour,
	}
	return NewAuthService(repo, cfg)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- Register ---

func TestRegister_PassesOutcomeThrough(t *testing.T) {
	repo := &fakeAccountsRepo{createOutcome: models.OutcomeOK()}
	s := newAuthService(repo)

	outcome, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !outcome.Succeeded {
		t.Fatalf("expected succeeded outcome")
	}
	if len(repo.created) != 1 || repo.created[0].Username != "alice" {
		t.Fatalf("store not called with request: %+v", repo.created)
	}
}

func TestRegister_DuplicateIsFailedOutcome(t *testing.T) {
	repo := &fakeAccountsRepo{createOutcome: models.OutcomeFailed("username already exists")}
	s := newAuthService(repo)

	outcome, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("duplicate must not be an error: %v", err)
	}
	if outcome.Succeeded {
		t.Fatalf("expected failed outcome")
	}
	if outcome.Reasons[0] != "username already exists" {
		t.Fatalf("reason must name the duplicate field: %v", outcome.Reasons)
	}
}

func TestRegister_StoreFailureIsError(t *testing.T) {
	repo := &fakeAccountsRepo{createErr: errBoom{}}
	s := newAuthService(repo)

	_, err := s.Register(context.Background(), RegisterRequest{Username: "alice"})
	if err == nil {
		t.Fatalf("expected error when store is unreachable")
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	repo := &fakeAccountsRepo{verifyOut: &models.Account{ID: "acc-1", UserName: "alice"}}
	s := newAuthService(repo)

	token, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := auth.ParseClaimSet(token, []byte("k"))
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if sub, _ := claims.Get(models.ClaimSubject); sub != "acc-1" {
		t.Fatalf("token subject mismatch: %q", sub)
	}
}

func TestLogin_RejectedCredentialsAreNotAnError(t *testing.T) {
	repo := &fakeAccountsRepo{verifyErr: common.ErrorNotFound}
	s := newAuthService(repo)

	token, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	if err != nil {
		t.Fatalf("credential mismatch must not be an error: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
}

func TestLogin_StoreFailureIsError(t *testing.T) {
	repo := &fakeAccountsRepo{verifyErr: errBoom{}}
	s := newAuthService(repo)

	_, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw"})
	if err == nil {
		t.Fatalf("expected error when store is unreachable")
	}
	if errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("store failure must not be masked as rejection")
	}
}

func TestLogin_MissingSecretFailsLoudly(t *testing.T) {
	repo := &fakeAccountsRepo{verifyOut: &models.Account{ID: "acc-1"}}
	s := NewAuthService(repo, &config.Config{SecretKey: "", TokenValidityDuration: time.Hour})

	_, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw"})
	if !errors.Is(err, common.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
