package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	accountID := "acc-123"

	tok, err := GenerateToken(accountID, secret, "usermgmt", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseClaimSet(tok, secret)
	if err != nil {
		t.Fatalf("ParseClaimSet error: %v", err)
	}
	sub, ok := claims.Get(models.ClaimSubject)
	if !ok || sub != accountID {
		t.Fatalf("subject mismatch: got %q want %q", sub, accountID)
	}
	iss, _ := claims.Get(models.ClaimIssuer)
	if iss != "usermgmt" {
		t.Fatalf("issuer mismatch: got %q", iss)
	}
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := GenerateToken("acc-1", nil, "", time.Hour, time.Now())
	if !errors.Is(err, common.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestGenerateToken_DefaultValidity(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	now := time.Unix(1700000000, 0)

	tok, err := GenerateToken("acc-1", secret, "", 0, now)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	parsed := &Claims{}
	if _, err := jwt.ParseWithClaims(tok, parsed, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := now.Add(DefaultTokenValidity)
	if !parsed.ExpiresAt.Time.Equal(want) {
		t.Fatalf("expiry mismatch: got %v want %v", parsed.ExpiresAt.Time, want)
	}
}

func TestGenerateToken_SameAccountDifferentMoments(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	now := time.Unix(1700000000, 0)

	tok1, err := GenerateToken("acc-1", secret, "", time.Hour, now)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	tok2, err := GenerateToken("acc-1", secret, "", time.Hour, now.Add(time.Second))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if tok1 == tok2 {
		t.Fatalf("tokens issued a second apart must differ in expiry")
	}

	for _, tok := range []string{tok1, tok2} {
		claims, err := ParseClaimSet(tok, secret)
		if err != nil {
			t.Fatalf("ParseClaimSet error: %v", err)
		}
		if sub, _ := claims.Get(models.ClaimSubject); sub != "acc-1" {
			t.Fatalf("subject mismatch: got %q", sub)
		}
	}
}

func TestParseClaimSet_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("a1", secret, "", time.Second, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseClaimSet(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseClaimSet_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("a2", []byte("right-secret"), "", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseClaimSet(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseClaimSet_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseClaimSet("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
