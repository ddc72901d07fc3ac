package importers

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// BookCreator persists a single validated book.
// *books.Repository satisfies it.
type BookCreator interface {
	CreateBook(ctx context.Context, book *entities.Book) error
}

type ImportResult struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Pipeline stores parsed books one by one. A rejected book does not stop
// the import.
type Pipeline struct {
	store BookCreator
}

func NewPipeline(store BookCreator) *Pipeline {
	return &Pipeline{store: store}
}

// Import creates each row's book. Failures are reported by CSV line when the
// row has one.
func (p *Pipeline) Import(ctx context.Context, rows []Row) ImportResult {
	result := ImportResult{}

	for i := range rows {
		if err := ctx.Err(); err != nil {
			result.Failed += len(rows) - i
			result.Errors = append(result.Errors, fmt.Sprintf("import cancelled: %v", err))
			break
		}

		row := &rows[i]
		if err := p.store.CreateBook(ctx, &row.Book); err != nil {
			log.Printf("Failed to import book '%s' by %s: %v", row.Book.Title, row.Book.Author, err)
			result.Failed++
			result.Errors = append(result.Errors, rowError(row, err))
			continue
		}
		result.Created++
	}

	log.Printf("Import completed: %d books created, %d failed", result.Created, result.Failed)
	return result
}

func rowError(row *Row, err error) string {
	if row.Line > 0 {
		return fmt.Sprintf("Line %d: %q: %v", row.Line, row.Book.Title, err)
	}
	return fmt.Sprintf("%q: %v", row.Book.Title, err)
}
