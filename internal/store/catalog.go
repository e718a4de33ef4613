package store

import (
	"errors"

	"book_market/internal/domain"
	"book_market/internal/shared"

	"gorm.io/gorm" // GORM ORM library
)

// CatalogStore owns Book and Category rows. Ownership of a book is enforced
// here: only the seller recorded on the row may mutate or delete it.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a catalog store over the given database handle
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// WithTx returns a copy of the store bound to the given transaction
func (s *CatalogStore) WithTx(tx *gorm.DB) *CatalogStore {
	return &CatalogStore{db: tx}
}

// ResolveOrCreateCategory returns the category with the given name, creating
// it on first use. The unique index on the name serializes concurrent
// creators: the loser of the race retries the lookup instead of producing a
// duplicate row.
func (s *CatalogStore) ResolveOrCreateCategory(name string) (*domain.Category, error) {
	if name == "" {
		return nil, shared.ErrInvalidArgument
	}
	var category domain.Category
	err := s.db.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil // Existing category
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category = domain.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent caller created it first; use theirs
			if err := s.db.Where("name = ?", name).First(&category).Error; err != nil {
				return nil, err
			}
			return &category, nil
		}
		return nil, err
	}
	return &category, nil
}

// CreateBook resolves the category and persists a new listing for the seller
func (s *CatalogStore) CreateBook(sellerID uint, title, author string, price float64, categoryName string) (*domain.Book, error) {
	if title == "" || price < 0 {
		return nil, shared.ErrInvalidArgument
	}
	category, err := s.ResolveOrCreateCategory(categoryName)
	if err != nil {
		return nil, err
	}
	book := domain.Book{
		Title:      title,
		Author:     author,
		Price:      price,
		CategoryID: category.ID,
		SellerID:   sellerID,
	}
	if err := s.db.Create(&book).Error; err != nil {
		return nil, err
	}
	book.Category = *category
	return &book, nil
}

// GetByID returns a book with its category and seller resolved
func (s *CatalogStore) GetByID(id uint) (*domain.Book, error) {
	var book domain.Book
	err := s.db.Preload("Category").Preload("Seller").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListAvailable returns all unsold books with category and seller resolved
func (s *CatalogStore) ListAvailable() ([]domain.Book, error) {
	var books []domain.Book
	err := s.db.Preload("Category").Preload("Seller").
		Where("sold = ?", false).
		Find(&books).Error
	return books, err
}

// ListBySeller returns every book listed by the given seller
func (s *CatalogStore) ListBySeller(sellerID uint) ([]domain.Book, error) {
	var books []domain.Book
	err := s.db.Preload("Category").Where("seller_id = ?", sellerID).Find(&books).Error
	return books, err
}

// UpdateBook applies title/author/price changes after the ownership check
func (s *CatalogStore) UpdateBook(id, editorID uint, title, author string, price float64) (*domain.Book, error) {
	if price < 0 {
		return nil, shared.ErrInvalidArgument
	}
	book, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book.SellerID != editorID {
		return nil, shared.ErrForbidden
	}
	book.Title = title
	book.Author = author
	book.Price = price
	if err := s.db.Model(&domain.Book{ID: book.ID}).
		Updates(map[string]any{"title": title, "author": author, "price": price}).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes a listing permanently after the ownership check
func (s *CatalogStore) DeleteBook(id, editorID uint) error {
	book, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if book.SellerID != editorID {
		return shared.ErrForbidden
	}
	return s.db.Delete(&domain.Book{}, id).Error
}

// MarkSold flips the sold flag exactly once. The predicate on the current
// flag makes the flip atomic: a second buyer's transaction affects zero rows
// and fails with ErrAlreadySold.
func (s *CatalogStore) MarkSold(id uint) error {
	res := s.db.Model(&domain.Book{}).
		Where("id = ? AND sold = ?", id, false).
		Update("sold", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrAlreadySold
	}
	return nil
}
