package store_test

import (
	"testing"

	"book_market/internal/domain"
	"book_market/internal/shared"
	"book_market/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrCreateCategory_Idempotent(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)

	first, err := catalog.ResolveOrCreateCategory("scifi")
	require.NoError(t, err)
	second, err := catalog.ResolveOrCreateCategory("scifi")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, conn.Model(&domain.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveOrCreateCategory_EmptyName(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)

	_, err := catalog.ResolveOrCreateCategory("")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestCreateBook_SharesCategoryRow(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	seller := seedUser(t, conn, "bob", 0, true)

	_, err := catalog.CreateBook(seller.ID, "Dune", "Herbert", 40, "scifi")
	require.NoError(t, err)
	_, err = catalog.CreateBook(seller.ID, "Foundation", "Asimov", 30, "scifi")
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&domain.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateBook_NegativePrice(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	seller := seedUser(t, conn, "bob", 0, true)

	_, err := catalog.CreateBook(seller.ID, "Dune", "Herbert", -1, "scifi")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestUpdateBook_OwnershipEnforced(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	owner := seedUser(t, conn, "bob", 0, true)
	intruder := seedUser(t, conn, "eve", 0, true)

	book, err := catalog.CreateBook(owner.ID, "Dune", "Herbert", 40, "scifi")
	require.NoError(t, err)

	_, err = catalog.UpdateBook(book.ID, intruder.ID, "Stolen", "Nobody", 1)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	// Fields must be unchanged after the rejected edit
	reloaded, err := catalog.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", reloaded.Title)
	assert.Equal(t, 40.0, reloaded.Price)

	// The owner's edit goes through
	updated, err := catalog.UpdateBook(book.ID, owner.ID, "Dune Messiah", "Herbert", 45)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 45.0, updated.Price)
}

func TestUpdateBook_NotFound(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)

	_, err := catalog.UpdateBook(999, 1, "x", "y", 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteBook_OwnershipEnforced(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	owner := seedUser(t, conn, "bob", 0, true)
	intruder := seedUser(t, conn, "eve", 0, true)

	book, err := catalog.CreateBook(owner.ID, "Dune", "Herbert", 40, "scifi")
	require.NoError(t, err)

	assert.ErrorIs(t, catalog.DeleteBook(book.ID, intruder.ID), shared.ErrForbidden)
	require.NoError(t, catalog.DeleteBook(book.ID, owner.ID))

	_, err = catalog.GetByID(book.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMarkSold_OnlyOnce(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	seller := seedUser(t, conn, "bob", 0, true)

	book, err := catalog.CreateBook(seller.ID, "Dune", "Herbert", 40, "scifi")
	require.NoError(t, err)

	require.NoError(t, catalog.MarkSold(book.ID))
	assert.ErrorIs(t, catalog.MarkSold(book.ID), shared.ErrAlreadySold)
}

func TestListAvailable_ExcludesSold(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	seller := seedUser(t, conn, "bob", 0, true)

	kept, err := catalog.CreateBook(seller.ID, "Dune", "Herbert", 40, "scifi")
	require.NoError(t, err)
	gone, err := catalog.CreateBook(seller.ID, "Foundation", "Asimov", 30, "scifi")
	require.NoError(t, err)
	require.NoError(t, catalog.MarkSold(gone.ID))

	books, err := catalog.ListAvailable()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, kept.ID, books[0].ID)
	assert.Equal(t, "scifi", books[0].Category.Name)
	assert.Equal(t, "bob", books[0].Seller.Username)
}

func TestListBySeller(t *testing.T) {
	conn := newTestDB(t)
	catalog := store.NewCatalogStore(conn)
	bob := seedUser(t, conn, "bob", 0, true)
	carol := seedUser(t, conn, "carol", 0, true)

	_, err := catalog.CreateBook(bob.ID, "Dune", "Herbert", 40, "scifi")
	require.NoError(t, err)
	_, err = catalog.CreateBook(carol.ID, "Emma", "Austen", 20, "classics")
	require.NoError(t, err)

	books, err := catalog.ListBySeller(bob.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}
