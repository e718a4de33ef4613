package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Timestamps

	"book_market/internal/marketplace" // Marketplace service
	"book_market/internal/middleware"  // Identity extraction
	"book_market/internal/utils"       // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// OrderResponse is the buyer-facing projection of a completed purchase
type OrderResponse struct {
	ID        uint      `json:"id"`         // Order ID
	BookTitle string    `json:"book_title"` // Resolved book title
	Buyer     string    `json:"buyer"`      // Resolved buyer username
	OrderDate time.Time `json:"order_date"` // Purchase timestamp
}

// BuyHandler purchases a book for the authenticated user
func BuyHandler(svc *marketplace.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c) // Get verified identity from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the book id from the path
		bookID, err := strconv.ParseUint(c.Param("bookId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
			return
		}
		// Run the atomic purchase: debit, sold flip and order commit together
		order, err := svc.Buy(identity.UserID, uint(bookID))
		if err != nil {
			respondError(c, err)
			return
		}
		// The purchased book leaves the public listing
		_ = utils.InvalidateBooksCache(context.Background(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Purchase successful", "order_id": order.ID})
	}
}

// MyOrdersHandler returns the authenticated user's purchases
func MyOrdersHandler(svc *marketplace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c) // Get verified identity from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Fetch orders filtered by the identity's user id
		orders, err := svc.MyOrders(identity.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]OrderResponse, len(orders)) // Map rows to the buyer-facing projection
		for i, o := range orders {
			resp[i] = OrderResponse{
				ID:        o.ID,             // Order ID
				BookTitle: o.Book.Title,     // Resolved book title
				Buyer:     o.Buyer.Username, // Resolved buyer username
				OrderDate: o.OrderDate,      // Purchase timestamp
			}
		}
		c.JSON(http.StatusOK, resp) // Return the orders
	}
}
