package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the identity fields embedded in a session token.
type Claims struct {
	ID    int64
	Email string
	Name  string
}

// TokenIssuer signs identity claims into a bearer token.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
}

// TokenVerifier checks a bearer token and recovers its claims.
type TokenVerifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// TokenService issues and verifies HS256 session tokens. Tokens are
// stateless: nothing is persisted and nothing can be revoked. With a
// zero ttl no expiry claim is set, matching the legacy storefront;
// operators can opt into expiring tokens via TOKEN_TTL without any
// caller changing.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if secret == "" {
		panic("JWT secret not configured")
	}
	return &TokenService{secretKey: []byte(secret), ttl: ttl}
}

// Issue creates a signed session token carrying the identity claims.
func (s *TokenService) Issue(claims Claims) (string, error) {
	mapClaims := jwt.MapClaims{
		"sub":   claims.ID,
		"email": claims.Email,
		"name":  claims.Name,
		"typ":   "session",
		"iat":   time.Now().Unix(),
	}
	if s.ttl > 0 {
		mapClaims["exp"] = time.Now().Add(s.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(s.secretKey)
}

// Verify parses and validates a session token.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, ok := mapClaims["typ"].(string); !ok || typ != "session" {
		return nil, fmt.Errorf("invalid token type")
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token: user ID (sub) claim is missing or not a number")
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: email claim is missing or not a string")
	}
	name, ok := mapClaims["name"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: name claim is missing or not a string")
	}

	return &Claims{ID: int64(sub), Email: email, Name: name}, nil
}
