package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/usermgmt/internal/server/auth"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ClaimSetFromContext returns the caller's claim set placed into the request
// context by the authenticate middleware.
func ClaimSetFromContext(ctx context.Context) (models.ClaimSet, bool) {
	claims, ok := ctx.Value(claimsKey).(models.ClaimSet)
	return claims, ok
}

// authenticate verifies the bearer token and stores the resulting claim set
// in the request context. Verification failures end the request with 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.writeError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		tokenString := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			s.writeError(w, http.StatusUnauthorized, "empty token")
			return
		}

		claims, err := auth.ParseClaimSet(tokenString, s.jwtSecret)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
