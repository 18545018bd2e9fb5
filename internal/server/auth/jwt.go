// Package auth issues and verifies the signed bearer tokens asserting an
// account id.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

// DefaultTokenValidity is used when the configured validity is unset.
const DefaultTokenValidity = 15 * time.Minute

// Claims carries the registered JWT claims; the account id travels in the
// Subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 JWT for the given account id, valid from now
// until now+validity (DefaultTokenValidity when validity <= 0). An empty
// secret is a configuration fault and fails with common.ErrMissingSecret
// rather than producing an unverifiable token.
func GenerateToken(accountID string, secret []byte, issuer string, validity time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", common.ErrMissingSecret
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseClaimSet verifies the token signature and expiry and returns the
// embedded claims as an ordered ClaimSet.
func ParseClaimSet(tokenString string, secret []byte) (models.ClaimSet, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return models.ClaimSet{
		{Name: models.ClaimSubject, Value: claims.Subject},
		{Name: models.ClaimIssuer, Value: claims.Issuer},
	}, nil
}
