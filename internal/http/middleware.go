package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware validates the bearer token the storefront backend issued at
// login. The raw token stays in the request context because downstream
// backend calls forward it as-is.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			userID := userIDFromClaims(claims)
			if userID == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "token has no user id")
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", userID)
			ctx = context.WithValue(ctx, "auth_token", token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userIDFromClaims reads the user id from the claims the backend puts in its
// tokens ("id"), falling back to the registered subject.
func userIDFromClaims(claims jwt.MapClaims) string {
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
