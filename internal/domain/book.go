package domain

// Category Model
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`             // Primary key
	Name string `gorm:"uniqueIndex;not null" json:"name"` // Unique category name, created lazily on first use
}

// Book Model
type Book struct {
	ID         uint     `gorm:"primaryKey" json:"id"`               // Primary key
	Title      string   `gorm:"not null" json:"title"`              // Book title
	Author     string   `json:"author"`                             // Book author
	Price      float64  `gorm:"not null" json:"price"`              // Listing price, non-negative
	Sold       bool     `gorm:"not null;default:false" json:"sold"` // Set once inside the purchase transaction
	CategoryID uint     `gorm:"not null" json:"category_id"`        // Foreign key to Category
	Category   Category `json:"-"`                                  // Category relation, resolved on demand
	SellerID   uint     `gorm:"not null;index" json:"seller_id"`    // Foreign key to the owning seller User
	Seller     User     `json:"-"`                                  // Seller relation, resolved on demand
}
