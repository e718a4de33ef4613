package marketplace

import (
	"time"

	"book_market/internal/domain"
	"book_market/internal/shared"
	"book_market/internal/store"
	"book_market/internal/token"

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Service orchestrates registration, login, listing management and the
// purchase path. All authorization rules are enforced here or in the stores
// it delegates to; handlers only translate results to HTTP.
type Service struct {
	db       *gorm.DB
	tokens   *token.Service
	catalog  *store.CatalogStore
	accounts *store.AccountLedger
	orders   *store.OrderLedger
}

// New wires a marketplace service over the database and token service
func New(db *gorm.DB, tokens *token.Service) *Service {
	return &Service{
		db:       db,
		tokens:   tokens,
		catalog:  store.NewCatalogStore(db),
		accounts: store.NewAccountLedger(db),
		orders:   store.NewOrderLedger(db),
	}
}

// Register creates a user with a bcrypt-hashed credential and a starting
// balance. Hashing happens before any storage work; it is deliberately
// expensive and must not run inside a transaction.
func (s *Service) Register(username, password string, budget float64, isSeller bool) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, shared.ErrInvalidArgument
	}
	if budget < 0 {
		return nil, shared.ErrInvalidArgument
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.accounts.CreateUser(username, string(hash), budget, isSeller)
}

// Login verifies the supplied credential and issues an identity token.
// Unknown usernames and wrong passwords fail identically.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.accounts.FindByUsername(username)
	if err != nil {
		return "", shared.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", shared.ErrUnauthorized
	}
	return s.tokens.Issue(user)
}

// ListBooks returns all unsold listings
func (s *Service) ListBooks() ([]domain.Book, error) {
	return s.catalog.ListAvailable()
}

// AddBook creates a listing for a seller; non-sellers are rejected
func (s *Service) AddBook(sellerID uint, title, author string, price float64, category string) (*domain.Book, error) {
	user, err := s.accounts.GetUser(sellerID)
	if err != nil {
		return nil, err
	}
	if !user.IsSeller {
		return nil, shared.ErrForbidden
	}
	return s.catalog.CreateBook(sellerID, title, author, price, category)
}

// EditBook updates a listing; the catalog enforces ownership
func (s *Service) EditBook(bookID, editorID uint, title, author string, price float64) (*domain.Book, error) {
	return s.catalog.UpdateBook(bookID, editorID, title, author, price)
}

// RemoveBook deletes a listing; the catalog enforces ownership
func (s *Service) RemoveBook(bookID, editorID uint) error {
	return s.catalog.DeleteBook(bookID, editorID)
}

// MyBooks returns the caller's own listings
func (s *Service) MyBooks(sellerID uint) ([]domain.Book, error) {
	return s.catalog.ListBySeller(sellerID)
}

// MyOrders returns the caller's own purchases
func (s *Service) MyOrders(buyerID uint) ([]domain.Order, error) {
	return s.orders.ListForBuyer(buyerID)
}

// Buy purchases a book for the buyer. The debit, the sold-flag flip and the
// order insert commit as one transaction; any failed step rolls the whole
// purchase back, so no reader ever observes a debited-but-no-order state.
func (s *Service) Buy(buyerID, bookID uint) (*domain.Order, error) {
	buyer, err := s.accounts.GetUser(buyerID)
	if err != nil {
		return nil, err
	}
	book, err := s.catalog.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book.Sold {
		return nil, shared.ErrAlreadySold
	}
	if buyer.Balance < book.Price {
		return nil, shared.ErrInsufficientFunds
	}

	var order *domain.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// The conditional UPDATE re-checks sufficiency under the transaction,
		// so a concurrent purchase cannot ride on the stale pre-check above
		if err := s.accounts.WithTx(tx).Debit(buyerID, book.Price); err != nil {
			return err
		}
		if err := s.catalog.WithTx(tx).MarkSold(bookID); err != nil {
			return err
		}
		var err error
		order, err = s.orders.WithTx(tx).Record(bookID, buyerID, time.Now().UTC())
		return err
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"buyer_id": buyerID,     // Buyer user ID
			"book_id":  bookID,      // Book ID
			"price":    book.Price,  // Book price
			"error":    err.Error(), // Error message
		}).Warn("Purchase failed")
		return nil, err
	}
	// Log successful purchase
	logrus.WithFields(logrus.Fields{
		"buyer_id":  buyerID,                         // Buyer user ID
		"book_id":   bookID,                          // Book ID
		"order_id":  order.ID,                        // Order ID
		"price":     book.Price,                      // Book price
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Purchase completed")
	return order, nil
}
