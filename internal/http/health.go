package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/database"
)

const healthTimeout = 2 * time.Second

// HealthReport is the /health payload. Books is only set once the catalog
// table answered a count.
type HealthReport struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
	Database  string    `json:"database"`
	Books     *int64    `json:"books,omitempty"`
}

func (r *HealthReport) fail(reason string) {
	r.Status = "unhealthy"
	r.Database = "error: " + reason
}

// HealthController answers liveness probes. A nil database or counter is
// reported but does not make the service unhealthy.
type HealthController struct {
	db      *database.Database
	books   BookCounter
	version string
}

func NewHealthController(db *database.Database, books BookCounter, version string) *HealthController {
	return &HealthController{db: db, books: books, version: version}
}

// Status pings the database and counts the catalog.
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	report := h.check(ctx)

	code := http.StatusOK
	if report.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

func (h *HealthController) check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:    "healthy",
		Version:   h.version,
		CheckedAt: time.Now().UTC(),
		Database:  "not configured",
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			report.fail(err.Error())
			return report
		}
		report.Database = "ok"
	}

	if h.books != nil {
		n, err := h.books.CountBooks(ctx)
		if err != nil {
			report.fail(fmt.Sprintf("count books: %v", err))
			return report
		}
		report.Books = &n
	}
	return report
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
