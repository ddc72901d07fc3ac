package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// memoryStore filters an in-memory slice the way the SQL store does.
type memoryStore struct {
	books []entities.Book
	err   error
	calls int
}

func (m *memoryStore) Search(_ context.Context, q Query, pageSize int) ([]entities.Book, int64, error) {
	m.calls++
	if m.err != nil {
		return nil, 0, m.err
	}

	var matched []entities.Book
	for _, b := range m.books {
		var value string
		switch q.Column {
		case "title":
			value = b.Title
		case "author":
			value = b.Author
		case "genre":
			value = b.Genre
		}
		if strings.Contains(strings.ToLower(value), strings.ToLower(q.SearchWord)) {
			matched = append(matched, b)
		}
	}

	total := int64(len(matched))
	if !q.InRange() {
		return nil, total, nil
	}
	start := q.Offset(pageSize)
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func seedBooks(n int, title string) []entities.Book {
	books := make([]entities.Book, n)
	for i := range books {
		books[i] = entities.Book{ID: uint(i + 1), Title: title, Author: "Author", Genre: "Genre", Year: 2000 + i}
	}
	return books
}

func TestSearcher_List(t *testing.T) {
	store := &memoryStore{books: append(seedBooks(12, "Dune"), seedBooks(2, "Emma")...)}
	s := NewSearcher(DefaultConfig(), store)

	t.Run("first page is full", func(t *testing.T) {
		res, err := s.List(context.Background(), s.Query("title", "Dune", "1"))
		require.NoError(t, err)
		assert.Len(t, res.Books, 5)
		assert.Equal(t, int64(12), res.Total)
		assert.Equal(t, 3, res.TotalPages)
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		res, err := s.List(context.Background(), s.Query("title", "Dune", "3"))
		require.NoError(t, err)
		assert.Len(t, res.Books, 2)
		assert.Equal(t, 3, res.TotalPages)
	})

	t.Run("no matches is an empty result", func(t *testing.T) {
		_, err := s.List(context.Background(), s.Query("title", "Ulysses", "1"))
		require.Error(t, err)
		assert.Equal(t, apperr.KindEmptyResult, apperr.KindOf(err))
	})

	t.Run("page past the end is an empty result", func(t *testing.T) {
		_, err := s.List(context.Background(), s.Query("title", "Dune", "4"))
		assert.Equal(t, apperr.KindEmptyResult, apperr.KindOf(err))
	})

	t.Run("page zero is an empty result", func(t *testing.T) {
		_, err := s.List(context.Background(), s.Query("title", "", "0"))
		assert.Equal(t, apperr.KindEmptyResult, apperr.KindOf(err))
	})
}

func TestSearcher_ListStoreFailure(t *testing.T) {
	store := &memoryStore{err: errors.New("database is locked")}
	s := NewSearcher(DefaultConfig(), store)

	_, err := s.List(context.Background(), s.Query("", "", ""))

	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "database is locked")
}

func TestNewSearcher_RepairsConfig(t *testing.T) {
	s := NewSearcher(Config{PageSize: 0, DefaultColumn: "isbn"}, &memoryStore{})

	cfg := s.Config()
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "title", cfg.DefaultColumn)
	assert.Equal(t, entities.BookColumns, cfg.Columns)
}
