package catalog

import (
	"net/url"
	"strconv"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// Result is one page of matching books plus the numbers needed to paginate.
type Result struct {
	Books      []entities.Book
	Total      int64
	TotalPages int
	Query      Query
}

func (r Result) HasPrev() bool {
	return r.Query.Page > 1
}

func (r Result) HasNext() bool {
	return r.Query.Page < r.TotalPages
}

// Pages lists 1..TotalPages for the pager.
func (r Result) Pages() []int {
	pages := make([]int, r.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// PageURL links to page p of the same search.
func (r Result) PageURL(p int) string {
	return ListURL(r.Query.Column, r.Query.SearchWord, p)
}

// ListURL builds /books?column=..&searchWord=..&page=.. with proper escaping.
func ListURL(column, searchWord string, page int) string {
	v := url.Values{}
	v.Set("column", column)
	v.Set("searchWord", searchWord)
	v.Set("page", strconv.Itoa(page))
	return "/books?" + v.Encode()
}
