package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/accountd/internal/auth"
	"github.com/vaughan-dsouza/accountd/internal/utils"
)

type ctxKey string

const ctxClaimsKey ctxKey = "claims"

// Auth validates the bearer token against the given verifier and stores its
// claims in the request context.
func Auth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				utils.JSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.JSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the verified claims stored by Auth, if any.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxClaimsKey).(*auth.Claims)
	return claims, ok
}
