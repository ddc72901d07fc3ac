package http

import (
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/security"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store    BookStore
	Lister   BookLister
	Database *database.Database

	// Background export (optional)
	Exports ExportEnqueuer

	// Security
	SessionManager *security.SessionManager
	CSRFSecret     []byte // CSRF protection is off when empty
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
