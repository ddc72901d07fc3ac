// Package books provides database operations for the book catalog.
//
// # Interface Implementation
//
//	var _ catalog.Store = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, 123)
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// ErrNotFound is returned when no book has the requested ID.
var ErrNotFound = errors.New("book not found")

var _ catalog.Store = (*Repository)(nil)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// matching filters on column LIKE %word%. Columns outside the whitelist never
// reach the SQL text.
func matching(tx *gorm.DB, q catalog.Query) *gorm.DB {
	column := q.Column
	if !entities.IsBookColumn(column) {
		column = catalog.DefaultConfig().DefaultColumn
	}
	return tx.Where(column+` LIKE ? ESCAPE '\'`, q.Pattern())
}

// Search returns one page of matching books and the total match count. Both
// queries run in the same transaction so they see the same snapshot.
func (r *Repository) Search(ctx context.Context, q catalog.Query, pageSize int) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := matching(tx.Model(&entities.Book{}), q).Count(&total).Error; err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		if !q.InRange() {
			return nil
		}
		err := matching(tx, q).
			Order("id ASC").
			Offset(q.Offset(pageSize)).
			Limit(pageSize).
			Find(&books).Error
		if err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// ListMatching returns every book matching q, ignoring pagination.
func (r *Repository) ListMatching(ctx context.Context, q catalog.Query) ([]entities.Book, error) {
	var books []entities.Book
	err := matching(r.db.WithContext(ctx), q).Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

// CreateBook inserts a new book. Validation errors come back untouched so
// callers can re-render the form.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	book.ID = 0
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		if apperr.IsValidation(err) {
			return err
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// UpdateBook copies the descriptive fields of book onto the stored row with
// the same ID. The ID itself is never changed. On a validation error the
// stored row is left as it was.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		err := tx.First(&existing, book.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get book %d: %w", book.ID, err)
		}

		existing.Title = book.Title
		existing.Author = book.Author
		existing.Genre = book.Genre
		existing.Year = book.Year

		if err := tx.Save(&existing).Error; err != nil {
			if apperr.IsValidation(err) {
				return err
			}
			return fmt.Errorf("update book %d: %w", book.ID, err)
		}

		*book = existing
		return nil
	})
}

// DeleteBook permanently removes a book.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBooks returns the number of stored books.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}
