package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/security"
)

// templateFuncs are available to every view.
var templateFuncs = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"subtract": func(a, b int) int {
		return a - b
	},
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(security.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Errors attached by any handler below, including NoRoute, end up here
	router.Use(ErrorResponder(cfg.SessionManager))

	// Load HTML templates with custom functions
	tmpl := template.Must(template.New("").Funcs(templateFuncs).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Store, cfg.Version)
	books := NewBooksController(cfg.Store, cfg.Lister, cfg.SessionManager, cfg.Exports)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Catalog
	router.GET("/", books.Home)
	router.POST("/books", books.Search)
	router.GET("/books", books.List)
	router.GET("/books/new", books.NewBookPage)
	router.POST("/books/new", books.CreateBook)
	router.GET("/books/export.csv", books.DownloadCSV)
	router.POST("/books/export", books.EnqueueExport)
	router.GET("/books/:id", books.EditBookPage)
	router.POST("/books/:id", books.UpdateBook)
	router.POST("/books/:id/delete", books.DeleteBook)

	router.NoRoute(NotFoundHandler)

	return router
}
