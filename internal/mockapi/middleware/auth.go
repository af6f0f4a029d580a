package middleware

import (
	"context"
	"net/http"

	"github.com/itamhack/hackctl/internal/auth"
	"github.com/itamhack/hackctl/internal/mockapi/problem"
)

type contextKeyAuth string

const claimsKey contextKeyAuth = "claims"

// Authenticate validates the bearer token and lets the request through only
// when its role is one of allowed.
func Authenticate(tokens *auth.TokenIssuer, allowed ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Not authenticated", nil)
				return
			}
			claims, err := tokens.Verify(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Could not validate credentials", nil)
				return
			}
			if !auth.HasRole(claims.Role, allowed...) {
				problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Claims returns the token claims of an authenticated request, or nil.
func Claims(r *http.Request) *auth.Claims {
	if r == nil {
		return nil
	}
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
