// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/models"
)

type claimsKey struct{}

// RequireDJ rejects requests without a valid "Authorization: Bearer" token
// and stores the token claims in the request context
func RequireDJ(tm *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := tm.Validate(strings.TrimSpace(token))
		if err != nil {
			slog.Info("rejected token", "path", r.URL.Path, "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	}
}

// RequireSuperadmin is RequireDJ plus a superadmin role check
func RequireSuperadmin(tm *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return RequireDJ(tm, func(w http.ResponseWriter, r *http.Request) {
		claims, _ := DJFromContext(r)
		if claims.Role != models.RoleSuperadmin {
			ErrorResponse(w, http.StatusForbidden, "Superadmin access required")
			return
		}
		next(w, r)
	})
}

// DJFromContext returns the claims stored by RequireDJ
func DJFromContext(r *http.Request) (auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(auth.Claims)
	return claims, ok
}
