package store_test

import (
	"testing"
	"time"

	"book_market/internal/domain"
	"book_market/internal/shared"
	"book_market/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_DuplicateUsername(t *testing.T) {
	conn := newTestDB(t)
	accounts := store.NewAccountLedger(conn)

	_, err := accounts.CreateUser("alice", "hash", 100, false)
	require.NoError(t, err)

	_, err = accounts.CreateUser("alice", "hash", 50, true)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestCreateUser_NegativeBalance(t *testing.T) {
	conn := newTestDB(t)
	accounts := store.NewAccountLedger(conn)

	_, err := accounts.CreateUser("alice", "hash", -5, false)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestFindByUsername(t *testing.T) {
	conn := newTestDB(t)
	accounts := store.NewAccountLedger(conn)
	seedUser(t, conn, "alice", 100, false)

	user, err := accounts.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, 100.0, user.Balance)

	_, err = accounts.FindByUsername("nobody")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDebit_SubtractsExactly(t *testing.T) {
	conn := newTestDB(t)
	accounts := store.NewAccountLedger(conn)
	user := seedUser(t, conn, "alice", 100, false)

	require.NoError(t, accounts.Debit(user.ID, 40))

	reloaded, err := accounts.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, reloaded.Balance)
}

func TestDebit_InsufficientFundsIsNoOp(t *testing.T) {
	conn := newTestDB(t)
	accounts := store.NewAccountLedger(conn)
	user := seedUser(t, conn, "alice", 30, false)

	err := accounts.Debit(user.ID, 40)
	assert.ErrorIs(t, err, shared.ErrInsufficientFunds)

	reloaded, err := accounts.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, reloaded.Balance)
}

func TestDebit_UnknownUser(t *testing.T) {
	conn := newTestDB(t)
	accounts := store.NewAccountLedger(conn)

	assert.ErrorIs(t, accounts.Debit(999, 10), shared.ErrNotFound)
}

func TestOrderLedger_RecordAndList(t *testing.T) {
	conn := newTestDB(t)
	orders := store.NewOrderLedger(conn)
	buyer := seedUser(t, conn, "alice", 100, false)
	seller := seedUser(t, conn, "bob", 0, true)
	book := domain.Book{Title: "Dune", Price: 40, CategoryID: 1, SellerID: seller.ID}
	require.NoError(t, conn.Create(&book).Error)

	_, err := orders.Record(book.ID, buyer.ID, time.Now().UTC())
	require.NoError(t, err)

	listed, err := orders.ListForBuyer(buyer.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Dune", listed[0].Book.Title)
	assert.Equal(t, "alice", listed[0].Buyer.Username)

	// Another buyer sees nothing
	other, err := orders.ListForBuyer(seller.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}
