package store

import (
	"time"

	"book_market/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// OrderLedger is an append-only record of completed purchases. Referential
// validity of the book and buyer ids is guaranteed by the purchase
// orchestration; no row here is ever updated or deleted.
type OrderLedger struct {
	db *gorm.DB
}

// NewOrderLedger creates an order ledger over the given database handle
func NewOrderLedger(db *gorm.DB) *OrderLedger {
	return &OrderLedger{db: db}
}

// WithTx returns a copy of the ledger bound to the given transaction
func (l *OrderLedger) WithTx(tx *gorm.DB) *OrderLedger {
	return &OrderLedger{db: tx}
}

// Record appends an order linking buyer, book and purchase time
func (l *OrderLedger) Record(bookID, buyerID uint, orderDate time.Time) (*domain.Order, error) {
	order := domain.Order{
		BookID:    bookID,
		BuyerID:   buyerID,
		OrderDate: orderDate,
	}
	if err := l.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForBuyer returns the buyer's orders with book and buyer resolved, in
// insertion order
func (l *OrderLedger) ListForBuyer(buyerID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := l.db.Preload("Book").Preload("Buyer").
		Where("buyer_id = ?", buyerID).
		Order("id asc").
		Find(&orders).Error
	return orders, err
}
