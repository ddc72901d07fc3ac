package http

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/database/books"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id", msgBookNotFound)

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Empty(t, c.Errors)
}

func TestParseIDParam_InvalidIsNotFound(t *testing.T) {
	for _, value := range []string{"abc", "-1", "0", "1.5", "99999999999"} {
		t.Run(value, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: value}}

			id, ok := parseIDParam(c, "id", msgBookNotFound)

			assert.False(t, ok)
			assert.Zero(t, id)
			require.Len(t, c.Errors, 1)
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(c.Errors.Last().Err))
		})
	}
}

func TestFail(t *testing.T) {
	t.Run("missing record becomes not found", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		fail(c, fmt.Errorf("lookup: %w", books.ErrNotFound), msgBookNotExists)

		appErr, ok := apperr.As(c.Errors.Last().Err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
		assert.Equal(t, msgBookNotExists, appErr.Message)
	})

	t.Run("untagged error becomes internal", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		fail(c, errors.New("disk I/O error"), msgBookNotExists)

		assert.Equal(t, apperr.KindInternal, apperr.KindOf(c.Errors.Last().Err))
	})
}
