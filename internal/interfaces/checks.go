package interfaces

// Compile-time interface implementation checks. A concrete type that drifts
// from the interface it is wired into fails the build here.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/exporters"
	"github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/importers"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ catalog.Store = (*books.Repository)(nil)
var _ tasks.BookSource = (*books.Repository)(nil)
var _ importers.BookCreator = (*books.Repository)(nil)

// =============================================================================
// Catalog
// =============================================================================

var _ http.BookLister = (*catalog.Searcher)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.ExportEnqueuer = (*tasks.Client)(nil)
var _ scheduler.ExportEnqueuer = (*tasks.Client)(nil)
var _ exporters.BookExporter = (*exporters.CSVExporter)(nil)
