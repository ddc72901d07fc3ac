package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/exporters"
)

// ExportQueueName identifies the export queue in the tasks database.
const ExportQueueName = "export_catalog"

// BookSource lists the books an export covers.
type BookSource interface {
	ListMatching(ctx context.Context, q catalog.Query) ([]entities.Book, error)
}

// ExportCatalogTask writes a CSV snapshot of the books matching the filter.
// An empty SearchWord exports the whole catalog.
type ExportCatalogTask struct {
	Column     string `json:"column"`
	SearchWord string `json:"search_word"`
}

func (t ExportCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ExportQueueName,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportCatalogProcessor creates a processor that reads from source and
// writes through exporter.
func ExportCatalogProcessor(source BookSource, exporter exporters.BookExporter, cfg catalog.Config) backlite.QueueProcessor[ExportCatalogTask] {
	return func(ctx context.Context, task ExportCatalogTask) error {
		q := cfg.NewQuery(task.Column, task.SearchWord, "")

		books, err := source.ListMatching(ctx, q)
		if err != nil {
			return fmt.Errorf("list books for export: %w", err)
		}

		result, err := exporter.Export(books)
		if err != nil {
			return fmt.Errorf("export books: %w", err)
		}

		log.Printf("[TASK] Exported %d books (column=%s, searchWord=%q) to %s",
			result.BooksProcessed, q.Column, q.SearchWord, result.Path)
		return nil
	}
}

func NewExportCatalogQueue(source BookSource, exporter exporters.BookExporter, cfg catalog.Config) backlite.Queue {
	return backlite.NewQueue(ExportCatalogProcessor(source, exporter, cfg))
}
