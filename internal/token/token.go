package token

import (
	"errors"
	"fmt"
	"time" // Time for token expiration

	"book_market/internal/domain"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// MinSecretLen is the minimum accepted signing key length. A shorter key is a
// configuration error and must be rejected at startup, never per-request.
const MinSecretLen = 32

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = 2 * time.Hour

// ErrInvalidToken covers expired, malformed and mis-signed tokens uniformly.
var ErrInvalidToken = errors.New("invalid token")

// Claims embedded in every issued token
type Claims struct {
	UserID               uint   `json:"user_id"`   // Subject user ID
	Username             string `json:"username"`  // Display name
	IsSeller             bool   `json:"is_seller"` // Seller flag
	jwt.RegisteredClaims        // Standard JWT claims
}

// Identity is the verified assertion handed to callers. Authorization checks
// use UserID as the sole source of the acting user's id.
type Identity struct {
	UserID   uint
	Username string
	IsSeller bool
}

// Service issues and verifies signed identity tokens. Stateless: there is no
// revocation list, logout is client-side only.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New builds a token service. Fails if the signing key is shorter than
// MinSecretLen; callers are expected to treat that as a startup failure.
func New(secret string, ttl time.Duration) (*Service, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d characters, got %d", MinSecretLen, len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the given user
func (s *Service) Issue(user *domain.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,       // Subject user ID
		Username: user.Username, // Display name
		IsSeller: user.IsSeller, // Seller flag
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)), // Fixed validity window
			IssuedAt:  jwt.NewNumericDate(time.Now()),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// Verify parses and validates a token string, returning the embedded identity.
// Any failure (expiry, bad signature, garbage input) yields ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		IsSeller: claims.IsSeller,
	}, nil
}
