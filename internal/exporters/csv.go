package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// CSVHeader is the first row of every export. The importer accepts the same
// layout, so an export can be loaded back as is.
var CSVHeader = []string{"id", "title", "author", "genre", "year"}

// WriteCSV writes books as CSV, header first.
func WriteCSV(w io.Writer, books []entities.Book) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, book := range books {
		record := []string{
			strconv.FormatUint(uint64(book.ID), 10),
			book.Title,
			book.Author,
			book.Genre,
			strconv.Itoa(book.Year),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write book %d: %w", book.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Filename names an export taken at t, e.g. books-20240615-143000.csv.
func Filename(t time.Time) string {
	return "books-" + t.Format("20060102-150405") + ".csv"
}

// CSVExporter writes catalog snapshots into a directory.
type CSVExporter struct {
	dir string
	now func() time.Time
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{
		dir: dir,
		now: time.Now,
	}
}

// Export writes books to a new timestamped file. The file appears under its
// final name only once it is complete.
func (e *CSVExporter) Export(books []entities.Book) (ExportResult, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, Filename(e.now()))
	tmp, err := os.CreateTemp(e.dir, ".books-*.csv.tmp")
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, books); err != nil {
		tmp.Close()
		return ExportResult{}, err
	}
	if err := tmp.Close(); err != nil {
		return ExportResult{}, fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return ExportResult{}, fmt.Errorf("failed to move export into place: %w", err)
	}

	log.Printf("Exported %d books to %s", len(books), path)
	return ExportResult{BooksProcessed: len(books), Path: path}, nil
}

var _ BookExporter = (*CSVExporter)(nil)
