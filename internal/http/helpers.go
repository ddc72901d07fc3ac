package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/security"
)

// --- Parameter Parsing ---

// parseIDParam extracts an unsigned integer ID from URL parameters.
// A malformed ID cannot name a stored book, so it is reported as notFound.
func parseIDParam(c *gin.Context, paramName, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(apperr.NotFound(notFound))
		return 0, false
	}
	return uint(id), true
}

// --- Error Helpers ---

// fail hands err to ErrorResponder. A missing record becomes a not-found
// error carrying notFound; anything untagged becomes an internal error.
func fail(c *gin.Context, err error, notFound string) {
	if errors.Is(err, books.ErrNotFound) {
		_ = c.Error(apperr.NotFound(notFound))
		return
	}
	_ = c.Error(apperr.Wrap(err, "Something went wrong"))
}

// --- Rendering ---

// render adds the values every page needs (CSRF field) and renders name.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFField"] = security.CSRFTokenField(c)
	c.HTML(status, name, data)
}

// redirectToList sends the browser back to the catalog after a form POST.
func redirectToList(c *gin.Context) {
	c.Redirect(http.StatusFound, "/books")
}
