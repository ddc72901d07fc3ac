package http

import (
	"strconv"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// BookForm holds the submitted create/update form. Values stay strings so a
// rejected form can be shown again exactly as typed.
type BookForm struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	Genre  string `form:"genre"`
	Year   string `form:"year"`
}

func newBookForm(book *entities.Book) BookForm {
	return BookForm{
		Title:  book.Title,
		Author: book.Author,
		Genre:  book.Genre,
		Year:   strconv.Itoa(book.Year),
	}
}

func (f *BookForm) trim() {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Genre = strings.TrimSpace(f.Genre)
	f.Year = strings.TrimSpace(f.Year)
}

// Apply copies the form onto book. A year that is not a whole number is
// reported together with the entity's own field errors.
func (f BookForm) Apply(book *entities.Book) error {
	book.Title = f.Title
	book.Author = f.Author
	book.Genre = f.Genre
	book.Year = 0

	if f.Year == "" {
		return nil // entity validation reports the missing year
	}
	year, err := strconv.Atoi(f.Year)
	if err == nil {
		book.Year = year
		return nil
	}

	fields := []apperr.FieldError{}
	if verr, ok := apperr.As(book.Validate()); ok {
		for _, fe := range verr.Fields {
			if fe.Field != "year" {
				fields = append(fields, fe)
			}
		}
	}
	fields = append(fields, apperr.FieldError{
		Field:   "year",
		Code:    "invalid",
		Message: "Year must be a whole number",
	})
	return apperr.Validation(fields...)
}
