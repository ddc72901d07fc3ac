package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/security"
)

const (
	msgBookNotFound  = "Book not found"
	msgBookNotExists = "The book doesn't exist"
)

// BooksController serves the HTML catalog: list, search, create, edit, delete.
type BooksController struct {
	store    BookStore
	lister   BookLister
	sessions *security.SessionManager
	exports  ExportEnqueuer
}

func NewBooksController(store BookStore, lister BookLister, sessions *security.SessionManager, exports ExportEnqueuer) *BooksController {
	return &BooksController{
		store:    store,
		lister:   lister,
		sessions: sessions,
		exports:  exports,
	}
}

// Home redirects to the catalog.
func (bc *BooksController) Home(c *gin.Context) {
	redirectToList(c)
}

// Search turns the search form into a bookmarkable list URL starting at page 1.
// Older forms post the term as searchKeyWord.
func (bc *BooksController) Search(c *gin.Context) {
	searchWord, ok := c.GetPostForm("searchWord")
	if !ok {
		searchWord = c.PostForm("searchKeyWord")
	}
	q := bc.lister.Query(c.PostForm("column"), searchWord, "1")
	c.Redirect(http.StatusFound, catalog.ListURL(q.Column, q.SearchWord, 1))
}

// List renders one page of books matching column/searchWord.
func (bc *BooksController) List(c *gin.Context) {
	q := bc.lister.Query(c.Query("column"), c.Query("searchWord"), c.Query("page"))

	result, err := bc.lister.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	render(c, http.StatusOK, "index", gin.H{
		"Result":         result,
		"Books":          result.Books,
		"TotalPages":     result.TotalPages,
		"Column":         q.Column,
		"SearchWord":     q.SearchWord,
		"Columns":        entities.BookColumns,
		"Flash":          bc.sessions.PopFlash(c.Request.Context()),
		"ExportsEnabled": bc.exports != nil,
	})
}

// NewBookPage renders the blank creation form.
func (bc *BooksController) NewBookPage(c *gin.Context) {
	render(c, http.StatusOK, "new-book", gin.H{
		"Book":        BookForm{},
		"FieldErrors": map[string]string{},
	})
}

// CreateBook stores a new book. A rejected form is shown again with the
// submitted values and one message per invalid field.
func (bc *BooksController) CreateBook(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(apperr.Internal(err, "Could not read the form"))
		return
	}
	form.trim()

	book := &entities.Book{}
	err := form.Apply(book)
	if err == nil {
		err = bc.store.CreateBook(c.Request.Context(), book)
	}
	if err != nil {
		if verr, ok := apperr.As(err); ok && verr.Kind == apperr.KindValidation {
			render(c, verr.Status, "new-book", gin.H{
				"Book":        form,
				"Errors":      verr.Fields,
				"FieldErrors": verr.FieldMap(),
			})
			return
		}
		_ = c.Error(apperr.Wrap(err, "Could not create the book"))
		return
	}

	bc.sessions.PutFlash(c.Request.Context(), fmt.Sprintf("%q was added", book.Title))
	redirectToList(c)
}

// EditBookPage renders the edit form for one book.
func (bc *BooksController) EditBookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id", msgBookNotFound)
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, msgBookNotFound)
		return
	}

	render(c, http.StatusOK, "update-book", gin.H{
		"Book":        newBookForm(book),
		"BookID":      book.ID,
		"FieldErrors": map[string]string{},
	})
}

// UpdateBook applies the submitted form to an existing book. On a validation
// error the stored book is left untouched.
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", msgBookNotExists)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.store.GetBookByID(ctx, id)
	if err != nil {
		fail(c, err, msgBookNotExists)
		return
	}

	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(apperr.Internal(err, "Could not read the form"))
		return
	}
	form.trim()

	updated := *book
	err = form.Apply(&updated)
	if err == nil {
		err = bc.store.UpdateBook(ctx, &updated)
	}
	if err != nil {
		if verr, ok := apperr.As(err); ok && verr.Kind == apperr.KindValidation {
			render(c, verr.Status, "update-book", gin.H{
				"Book":        form,
				"BookID":      id,
				"Errors":      verr.Fields,
				"FieldErrors": verr.FieldMap(),
			})
			return
		}
		fail(c, err, msgBookNotExists)
		return
	}

	bc.sessions.PutFlash(ctx, fmt.Sprintf("%q was updated", updated.Title))
	redirectToList(c)
}

// DeleteBook permanently removes a book.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", msgBookNotExists)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.store.GetBookByID(ctx, id)
	if err != nil {
		fail(c, err, msgBookNotExists)
		return
	}

	if err := bc.store.DeleteBook(ctx, id); err != nil {
		fail(c, err, msgBookNotExists)
		return
	}

	bc.sessions.PutFlash(ctx, fmt.Sprintf("%q was deleted", book.Title))
	redirectToList(c)
}
