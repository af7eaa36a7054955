package middleware

import (
	"errors"
	"strings"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/services"

	"github.com/gin-gonic/gin"
)

// ClaimsContextKey is where verified identity claims live in the gin
// context.
const ClaimsContextKey = "claims"

// AuthMiddleware is the server-side security boundary: it extracts the
// bearer token, verifies it, and injects the claims for downstream
// handlers. A missing credential and a bad one are distinct failures.
func AuthMiddleware(verifier services.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.Verify(token)
		if err != nil {
			apperrors.Abort(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// GetClaims returns the verified claims set by AuthMiddleware.
func GetClaims(c *gin.Context) (*services.Claims, error) {
	val, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, errors.New("claims not found in context")
	}
	claims, ok := val.(*services.Claims)
	if !ok || claims == nil {
		return nil, errors.New("claims have invalid type in context")
	}
	return claims, nil
}
