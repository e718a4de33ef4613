package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"book_market/internal/marketplace" // Marketplace service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Username string  `json:"username" binding:"required"` // Username must be provided
	Password string  `json:"password" binding:"required"` // Password must be provided
	Budget   float64 `json:"budget"`                      // Starting balance, non-negative
	IsSeller bool    `json:"is_seller"`                   // Whether the user may list books
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username) // Regex to match alphabetic characters only
	return matched                                            // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// RegisterHandler creates a new user account with a starting budget
func RegisterHandler(svc *marketplace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphabetic only"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		// Validate the starting budget
		if req.Budget < 0 {
			// A negative budget is rejected, not silently accepted
			c.JSON(http.StatusBadRequest, gin.H{"error": "Budget must be non-negative"})
			return
		}
		// Register with lowercase username to ensure uniqueness
		if _, err := svc.Register(strings.ToLower(req.Username), req.Password, req.Budget, req.IsSeller); err != nil {
			respondError(c, err) // Map conflict/validation errors
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(svc *marketplace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Verify credentials and issue a token
		tok, err := svc.Login(strings.ToLower(req.Username), req.Password)
		if err != nil {
			respondError(c, err) // Unknown user and wrong password fail identically
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: tok})
	}
}
