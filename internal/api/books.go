package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"book_market/internal/domain"      // Importing domain models
	"book_market/internal/marketplace" // Marketplace service
	"book_market/internal/middleware"  // Identity extraction
	"book_market/internal/utils"       // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// BookResponse is the public projection of a listing, with the category name
// and seller username resolved
type BookResponse struct {
	ID       uint    `json:"id"`       // Book ID
	Title    string  `json:"title"`    // Book title
	Author   string  `json:"author"`   // Book author
	Price    float64 `json:"price"`    // Listing price
	Category string  `json:"category"` // Resolved category name
	Seller   string  `json:"seller"`   // Resolved seller username
}

// Request struct for creating or editing a listing
type BookRequest struct {
	Title    string  `json:"title" binding:"required"` // Title must be provided
	Author   string  `json:"author"`                   // Author is optional
	Price    float64 `json:"price"`                    // Price, non-negative
	Category string  `json:"category"`                 // Category name, created on first use
}

// toBookResponse maps a book row to its public projection
func toBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:       b.ID,              // Book ID
		Title:    b.Title,           // Book title
		Author:   b.Author,          // Book author
		Price:    b.Price,           // Listing price
		Category: b.Category.Name,   // Resolved category name
		Seller:   b.Seller.Username, // Resolved seller username
	}
}

// ListBooksHandler returns all unsold listings, served from cache when fresh
func ListBooksHandler(svc *marketplace.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Try the cached listing first
		if rdb != nil {
			var cached []BookResponse
			if found, err := utils.GetCache(ctx, rdb, utils.BooksCacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached) // Return cached listing
				return
			}
		}
		// Not cached, fetch from the database
		books, err := svc.ListBooks()
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]BookResponse, len(books)) // Map rows to the public projection
		for i, b := range books {
			resp[i] = toBookResponse(b)
		}
		// Cache the listing until the next mutation or TTL expiry
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, utils.BooksCacheKey, resp, utils.BooksCacheTTL)
		}
		c.JSON(http.StatusOK, resp) // Return the listing
	}
}

// AddBookHandler creates a listing for the authenticated seller
func AddBookHandler(svc *marketplace.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c) // Get verified identity from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req BookRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the listing; ownership is recorded from the identity only
		book, err := svc.AddBook(identity.UserID, req.Title, req.Author, req.Price, req.Category)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.InvalidateBooksCache(context.Background(), rdb) // Drop the stale listing cache
		c.JSON(http.StatusOK, toBookResponse(*book))              // Return the new listing
	}
}

// EditBookHandler updates a listing owned by the authenticated seller
func EditBookHandler(svc *marketplace.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c) // Get verified identity from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the book id from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
			return
		}
		var req BookRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply the edit; the catalog rejects non-owners
		book, err := svc.EditBook(uint(id), identity.UserID, req.Title, req.Author, req.Price)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.InvalidateBooksCache(context.Background(), rdb) // Drop the stale listing cache
		c.JSON(http.StatusOK, toBookResponse(*book))              // Return the updated listing
	}
}

// DeleteBookHandler removes a listing owned by the authenticated seller
func DeleteBookHandler(svc *marketplace.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c) // Get verified identity from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the book id from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
			return
		}
		// Remove the listing; the catalog rejects non-owners
		if err := svc.RemoveBook(uint(id), identity.UserID); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.InvalidateBooksCache(context.Background(), rdb) // Drop the stale listing cache
		c.JSON(http.StatusOK, gin.H{"message": "Book removed"})   // Return success response
	}
}

// MyBooksHandler returns the authenticated seller's own listings
func MyBooksHandler(svc *marketplace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c) // Get verified identity from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Fetch listings filtered by the identity's user id
		books, err := svc.MyBooks(identity.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, books) // Return raw rows, as the original API does
	}
}
