// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - http.BookStore: single-book reads and writes for the HTML forms (internal/http/stores.go)
//   - catalog.Store: filtered count plus one page, from one snapshot (internal/catalog/searcher.go)
//   - tasks.BookSource: unpaginated filtered listing for exports (internal/tasks/export.go)
//   - importers.BookCreator: persists one validated book (internal/importers/pipeline.go)
//
// All four are served by *books.Repository.
//
// ## Catalog
//
//   - http.BookLister: query normalization and paging (internal/http/stores.go),
//     served by *catalog.Searcher
//
// ## Background Work
//
//   - http.ExportEnqueuer and scheduler.ExportEnqueuer: queue a CSV export,
//     served by *tasks.Client
//   - exporters.BookExporter: writes a snapshot somewhere durable
//     (internal/exporters/generic.go)
//
// # Adding a New Export Format
//
//  1. Implement BookExporter in internal/exporters/
//
//     type JSONExporter struct {
//         dir string
//     }
//
//     func (e *JSONExporter) Export(books []entities.Book) (ExportResult, error)
//
//  2. Pass it to tasks.NewExportCatalogQueue in entrypoint.go
//
//  3. Add a compile-time check to checks.go
//
// # Adding a New Searchable Column
//
//  1. Add the field to entities.Book
//
//  2. Append its column name to entities.BookColumns. The catalog only
//     interpolates whitelisted names into SQL.
//
//  3. Add an option label if the template needs one
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
