package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/exporters"
)

// ExportCSVCommand writes the catalog, optionally filtered, as CSV.
type ExportCSVCommand struct {
	OutputPath   string
	DatabasePath string
	Column       string
	SearchWord   string

	out io.Writer
}

func NewExportCSVCommand() *ExportCSVCommand {
	return &ExportCSVCommand{out: os.Stdout}
}

func (cmd *ExportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ContinueOnError)

	fs.StringVar(&cmd.OutputPath, "out", "", "Output file (default: stdout)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.StringVar(&cmd.Column, "column", config.DefaultSearchColumn, "Column to filter on: title, author, genre or year")
	fs.StringVar(&cmd.SearchWord, "search", "", "Only export books whose column contains this text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-csv [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export books as CSV (id,title,author,genre,year).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-csv -out books.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-csv -column author -search Herbert\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportCSVCommand) Run(ctx context.Context) error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	q := catalog.DefaultConfig().NewQuery(cmd.Column, cmd.SearchWord, "")
	found, err := books.NewRepository(db.DB).ListMatching(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	w := cmd.out
	if cmd.OutputPath != "" {
		file, err := os.Create(cmd.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := exporters.WriteCSV(w, found); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if cmd.OutputPath != "" {
		fmt.Fprintf(cmd.out, "Exported %d books to %s\n", len(found), cmd.OutputPath)
	}
	return nil
}
