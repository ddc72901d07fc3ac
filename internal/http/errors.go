package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/security"
)

// ErrorResponder renders the last error a handler attached with c.Error.
// Route-not-found errors get the dedicated page-not-found view, everything
// else the generic error view. The response status is the one carried by the
// error; errors without one render with 200.
func ErrorResponder(sessions *security.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperr.Wrap(err, "Something went wrong")
		if appErr.Kind == apperr.KindInternal {
			log.Printf("Internal error (%s %s): %v", c.Request.Method, c.Request.URL.Path, err)
		}

		status := appErr.Status
		if status == 0 {
			status = http.StatusOK
		}

		view := "error"
		if appErr.Kind == apperr.KindRouteNotFound {
			view = "page-not-found"
		}

		render(c, status, view, gin.H{
			"Error":   appErr,
			"Message": appErr.Message,
			"Status":  status,
			"Flash":   sessions.PopFlash(c.Request.Context()),
		})
	}
}

// NotFoundHandler is the trailing catch-all for paths no route matched.
func NotFoundHandler(c *gin.Context) {
	_ = c.Error(apperr.RouteNotFound())
}
