package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

func TestBookForm_Apply(t *testing.T) {
	t.Run("copies fields and parses the year", func(t *testing.T) {
		book := &entities.Book{ID: 7}
		form := BookForm{Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: "1965"}

		require.NoError(t, form.Apply(book))
		assert.Equal(t, uint(7), book.ID)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, 1965, book.Year)
	})

	t.Run("empty year is left to entity validation", func(t *testing.T) {
		book := &entities.Book{Year: 1965}
		form := BookForm{Title: "Dune", Author: "Herbert", Genre: "SciFi"}

		require.NoError(t, form.Apply(book))
		assert.Zero(t, book.Year)
		assert.True(t, apperr.IsValidation(book.Validate()))
	})

	t.Run("non-numeric year is reported with other field errors", func(t *testing.T) {
		form := BookForm{Title: "", Author: "Herbert", Genre: "SciFi", Year: "nineteen"}

		err := form.Apply(&entities.Book{})
		verr, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindValidation, verr.Kind)

		fields := verr.FieldMap()
		assert.Equal(t, "Title is required", fields["title"])
		assert.Equal(t, "Year must be a whole number", fields["year"])
		assert.Len(t, verr.Fields, 2)
	})
}

func TestBookForm_Trim(t *testing.T) {
	form := BookForm{Title: "  Dune ", Author: "\tHerbert", Genre: "SciFi\n", Year: " 1965 "}
	form.trim()

	assert.Equal(t, BookForm{Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: "1965"}, form)
}

func TestNewBookForm(t *testing.T) {
	form := newBookForm(&entities.Book{Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: 1965})
	assert.Equal(t, BookForm{Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: "1965"}, form)
}
