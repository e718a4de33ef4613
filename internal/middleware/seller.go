package middleware

import (
	"net/http" // HTTP status codes

	"book_market/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// SellerOnlyMiddleware re-checks the seller flag against the database on each
// request, so revoking seller status takes effect without waiting for token
// expiry.
func SellerOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c) // Get verified identity from context
		// Check if identity exists in context
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, identity.UserID).Error; err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Seller access required"})
			return
		}
		// Check the seller flag
		if !user.IsSeller {
			// If not a seller, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Seller access required"})
			return
		}
		// If seller, proceed to the next handler
		c.Next()
	}
}
