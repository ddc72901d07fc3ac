package books

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "books.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createBook(t *testing.T, repo *Repository, title, author, genre string, year int) *entities.Book {
	t.Helper()
	b := &entities.Book{Title: title, Author: author, Genre: genre, Year: year}
	require.NoError(t, repo.CreateBook(context.Background(), b))
	return b
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("assigns an ID", func(t *testing.T) {
		b := createBook(t, repo, "Dune", "Herbert", "SciFi", 1965)
		assert.NotZero(t, b.ID)

		got, err := repo.GetBookByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "Herbert", got.Author)
		assert.Equal(t, "SciFi", got.Genre)
		assert.Equal(t, 1965, got.Year)
	})

	t.Run("ignores a caller-supplied ID", func(t *testing.T) {
		b := &entities.Book{ID: 9999, Title: "Emma", Author: "Austen", Genre: "Novel", Year: 1815}
		require.NoError(t, repo.CreateBook(ctx, b))
		assert.NotEqual(t, uint(9999), b.ID)
	})

	t.Run("rejects an empty title before persisting", func(t *testing.T) {
		before, err := repo.CountBooks(ctx)
		require.NoError(t, err)

		err = repo.CreateBook(ctx, &entities.Book{Author: "Nobody", Genre: "None", Year: 2000})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))

		after, err := repo.CountBooks(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing book is ErrNotFound", func(t *testing.T) {
		_, err := repo.GetBookByID(ctx, 424242)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_UpdateBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	original := createBook(t, repo, "Dune", "Herbert", "SciFi", 1965)

	t.Run("applies new values", func(t *testing.T) {
		update := &entities.Book{ID: original.ID, Title: "Dune Messiah", Author: "Frank Herbert", Genre: "SciFi", Year: 1969}
		require.NoError(t, repo.UpdateBook(ctx, update))

		got, err := repo.GetBookByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, 1969, got.Year)
		assert.Equal(t, original.ID, got.ID)
	})

	t.Run("validation failure leaves the row unchanged", func(t *testing.T) {
		update := &entities.Book{ID: original.ID, Title: "Changed", Author: "", Genre: "SciFi", Year: 1969}
		err := repo.UpdateBook(ctx, update)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))

		got, err := repo.GetBookByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, "Frank Herbert", got.Author)
	})

	t.Run("missing book is not recreated", func(t *testing.T) {
		err := repo.UpdateBook(ctx, &entities.Book{ID: 777, Title: "Ghost", Author: "A", Genre: "G", Year: 1})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetBookByID(ctx, 777)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	b := createBook(t, repo, "Dune", "Herbert", "SciFi", 1965)

	require.NoError(t, repo.DeleteBook(ctx, b.ID))

	_, err := repo.GetBookByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.DeleteBook(ctx, b.ID), ErrNotFound)
}

func TestRepository_Search(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		createBook(t, repo, fmt.Sprintf("Foundation %d", i), "Asimov", "SciFi", 1950+i)
	}
	createBook(t, repo, "Emma", "Austen", "Novel", 1815)
	createBook(t, repo, "100% Pure", "Someone", "Essay", 2001)
	createBook(t, repo, "1000 Pure", "Someone", "Essay", 2002)

	cfg := catalog.DefaultConfig()

	t.Run("first page and total", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("title", "Foundation", "1"), 5)
		require.NoError(t, err)
		assert.Len(t, books, 5)
		assert.Equal(t, int64(7), total)
		assert.Equal(t, "Foundation 1", books[0].Title)
	})

	t.Run("second page is the remainder in insertion order", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("title", "Foundation", "2"), 5)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, int64(7), total)
		assert.Equal(t, "Foundation 6", books[0].Title)
		assert.Equal(t, "Foundation 7", books[1].Title)
	})

	t.Run("page is a subset of the count", func(t *testing.T) {
		all, err := repo.ListMatching(ctx, cfg.NewQuery("author", "asim", ""))
		require.NoError(t, err)
		page, total, err := repo.Search(ctx, cfg.NewQuery("author", "asim", "1"), 5)
		require.NoError(t, err)

		assert.Equal(t, int64(len(all)), total)
		ids := map[uint]bool{}
		for _, b := range all {
			ids[b.ID] = true
		}
		for _, b := range page {
			assert.True(t, ids[b.ID])
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		books, _, err := repo.Search(ctx, cfg.NewQuery("genre", "novel", "1"), 5)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Emma", books[0].Title)
	})

	t.Run("year column matches digits", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("year", "195", "1"), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		assert.Len(t, books, 7)
	})

	t.Run("percent sign is literal", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("title", "100%", "1"), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, books, 1)
		assert.Equal(t, "100% Pure", books[0].Title)
	})

	t.Run("no matches", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("title", "Ulysses", "1"), 5)
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.Zero(t, total)
	})

	t.Run("out of range page still counts", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("title", "Foundation", "9"), 5)
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.Equal(t, int64(7), total)
	})

	t.Run("page zero skips the page query", func(t *testing.T) {
		books, total, err := repo.Search(ctx, cfg.NewQuery("title", "Foundation", "0"), 5)
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.Equal(t, int64(7), total)
	})

	t.Run("unknown column searches the default column", func(t *testing.T) {
		books, _, err := repo.Search(ctx, catalog.Query{Column: "nope", SearchWord: "Emma", Page: 1}, 5)
		require.NoError(t, err)
		require.Len(t, books, 1)
	})
}
