// Package importers loads books from external files into the catalog.
//
// # Flow
//
//	CSV file → ReadCSV → []Row → Pipeline → BookCreator
//
// ReadCSV only parses; rows that cannot be parsed are reported with their
// line number and skipped. Each parsed Row keeps its line so a book the store
// rejects is reported by line too. The Pipeline stores every parsed book through the
// same validated create path the web form uses, so an import can never store
// a book the form would reject.
//
// # Example Usage
//
//	rows, rowErrors, err := importers.ReadCSV(file)
//	result := importers.NewPipeline(repo).Import(ctx, rows)
package importers
