package http

import (
	"context"

	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// *books.Repository, *catalog.Searcher and *tasks.Client satisfy them.

// BookStore provides the primary-key operations behind the form routes.
type BookStore interface {
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id uint) error
	ListMatching(ctx context.Context, q catalog.Query) ([]entities.Book, error)
	BookCounter
}

// BookCounter reports how many books the catalog holds.
type BookCounter interface {
	CountBooks(ctx context.Context) (int64, error)
}

// BookLister pages through filtered books.
type BookLister interface {
	Query(column, searchWord, page string) catalog.Query
	List(ctx context.Context, q catalog.Query) (catalog.Result, error)
}

// ExportEnqueuer schedules a CSV export in the background and returns the task ID.
type ExportEnqueuer interface {
	EnqueueExport(ctx context.Context, column, searchWord string) (string, error)
}
