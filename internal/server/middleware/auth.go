// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// subjectKey is the context key for storing the authenticated subject ID.
const subjectKey ContextKey = "subjectID"

// TokenValidator validates bearer tokens. The interface keeps this package
// free of a dependency on the concrete JWT service.
type TokenValidator interface {
	ValidateToken(tokenString string) (SubjectGetter, error)
}

// SubjectGetter extracts the subject ID from validated token claims.
type SubjectGetter interface {
	GetSubject() uuid.UUID
}

// Auth returns middleware that rejects requests without a valid bearer token
// and stores the authenticated subject on the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// "Bearer" is matched case-insensitively.
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.GetSubject())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject extracts the authenticated subject ID from the request context.
func GetSubject(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(subjectKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("subject ID not found in request context")
	}
	return id, nil
}
