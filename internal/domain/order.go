package domain

import "time"

// Order Model
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`           // Primary key
	BookID    uint      `gorm:"not null" json:"book_id"`        // Foreign key to the purchased Book
	Book      Book      `json:"-"`                              // Book relation, resolved on demand
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"` // Foreign key to the buying User
	Buyer     User      `json:"-"`                              // Buyer relation, resolved on demand
	OrderDate time.Time `gorm:"not null" json:"order_date"`     // Purchase timestamp, immutable after insert
}
