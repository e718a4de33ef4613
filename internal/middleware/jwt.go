package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"book_market/internal/token" // Identity token service

	"github.com/gin-gonic/gin" // Gin web framework
)

// IdentityKey is the gin context key holding the verified identity
const IdentityKey = "identity"

// JWTAuthMiddleware verifies the bearer token and stores the verified
// identity in the context. The identity is the sole source of the acting
// user's id for every ownership check downstream.
func JWTAuthMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		identity, err := tokens.Verify(tokenStr)              // Verify signature, expiry, well-formedness
		if err != nil {
			// Expired, malformed and mis-signed tokens are rejected uniformly
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(IdentityKey, identity) // Store verified identity in context
		c.Next()                     // Proceed to the next handler
	}
}

// IdentityFrom extracts the verified identity stored by JWTAuthMiddleware
func IdentityFrom(c *gin.Context) (*token.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*token.Identity)
	return identity, ok
}
