package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/importers"
)

// ImportCSVCommand loads books from a CSV file into the catalog.
type ImportCSVCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool

	out io.Writer
}

func NewImportCSVCommand() *ImportCSVCommand {
	return &ImportCSVCommand{out: os.Stdout}
}

func (cmd *ImportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and report without storing anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-csv -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books from a CSV file with a title,author,genre,year header.\n")
		fmt.Fprintf(os.Stderr, "Files written by export-csv can be imported as is.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file books.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-csv -file books.csv -db ./other.db -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCSVCommand) Run(ctx context.Context) error {
	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	parsed, rowErrors, err := importers.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("failed to parse CSV file: %w", err)
	}

	fmt.Fprintf(cmd.out, "Parsed %d books from %s\n", len(parsed), cmd.FilePath)
	for _, e := range rowErrors {
		fmt.Fprintf(cmd.out, "  %s\n", e)
	}

	if cmd.DryRun {
		for i, row := range parsed {
			book := row.Book
			fmt.Fprintf(cmd.out, "%d. %q by %s (%s, %d)\n", i+1, book.Title, book.Author, book.Genre, book.Year)
		}
		fmt.Fprintln(cmd.out, "Dry run: nothing was stored")
		return nil
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

	result := importers.NewPipeline(books.NewRepository(db.DB)).Import(ctx, parsed)

	fmt.Fprintf(cmd.out, "Created: %d\n", result.Created)
	fmt.Fprintf(cmd.out, "Failed: %d\n", result.Failed+len(rowErrors))
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.out, "  %s\n", e)
	}

	return nil
}
