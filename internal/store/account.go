package store

import (
	"errors"

	"book_market/internal/domain"
	"book_market/internal/shared"

	"gorm.io/gorm" // GORM ORM library
)

// AccountLedger owns User rows and their balances. The only mutation it
// offers after creation is the purchase debit.
type AccountLedger struct {
	db *gorm.DB
}

// NewAccountLedger creates an account ledger over the given database handle
func NewAccountLedger(db *gorm.DB) *AccountLedger {
	return &AccountLedger{db: db}
}

// WithTx returns a copy of the ledger bound to the given transaction
func (l *AccountLedger) WithTx(tx *gorm.DB) *AccountLedger {
	return &AccountLedger{db: tx}
}

// CreateUser persists a new user with the given hashed credential and
// starting balance. Fails with ErrConflict on a duplicate username.
func (l *AccountLedger) CreateUser(username, passwordHash string, balance float64, isSeller bool) (*domain.User, error) {
	if username == "" || balance < 0 {
		return nil, shared.ErrInvalidArgument
	}
	user := domain.User{
		Username: username,
		Password: passwordHash,
		Balance:  balance,
		IsSeller: isSeller,
	}
	if err := l.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// GetUser returns a user by id
func (l *AccountLedger) GetUser(id uint) (*domain.User, error) {
	var user domain.User
	err := l.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns a user by their unique username, used for login
func (l *AccountLedger) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := l.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Debit subtracts amount from the user's balance. The sufficiency check is
// part of the UPDATE predicate, so two concurrent debits can never drive the
// balance negative: the second one affects zero rows.
func (l *AccountLedger) Debit(userID uint, amount float64) error {
	if amount < 0 {
		return shared.ErrInvalidArgument
	}
	res := l.db.Model(&domain.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means either no such user or not enough money
		if _, err := l.GetUser(userID); err != nil {
			return err
		}
		return shared.ErrInsufficientFunds
	}
	return nil
}
