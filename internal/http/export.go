package http

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/exporters"
)

// DownloadCSV streams every book matching column/searchWord as a CSV
// attachment. Pagination does not apply.
func (bc *BooksController) DownloadCSV(c *gin.Context) {
	q := bc.lister.Query(c.Query("column"), c.Query("searchWord"), "")

	books, err := bc.store.ListMatching(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(apperr.Wrap(err, "Could not export books"))
		return
	}

	filename := exporters.Filename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := exporters.WriteCSV(c.Writer, books); err != nil {
		// Headers are already out, all that is left is to log it.
		log.Printf("CSV download failed after %d books: %v", len(books), err)
	}
}

// EnqueueExport schedules a background CSV snapshot of the filtered catalog.
func (bc *BooksController) EnqueueExport(c *gin.Context) {
	if bc.exports == nil {
		_ = c.Error(apperr.RouteNotFound())
		return
	}

	q := bc.lister.Query(c.PostForm("column"), c.PostForm("searchWord"), "")
	taskID, err := bc.exports.EnqueueExport(c.Request.Context(), q.Column, q.SearchWord)
	if err != nil {
		_ = c.Error(apperr.Wrap(err, "Could not schedule the export"))
		return
	}

	log.Printf("Export task %s queued (column=%s, searchWord=%q)", taskID, q.Column, q.SearchWord)
	bc.sessions.PutFlash(c.Request.Context(), "Export scheduled, the file will appear in the export directory shortly")
	redirectToList(c)
}
