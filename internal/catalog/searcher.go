package catalog

import (
	"context"

	"github.com/mrlokans/bookcatalog/internal/apperr"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// Store runs the filtered count and the page query. Implementations must
// return a total consistent with the page (one snapshot).
type Store interface {
	Search(ctx context.Context, q Query, pageSize int) ([]entities.Book, int64, error)
}

type Searcher struct {
	cfg   Config
	store Store
}

func NewSearcher(cfg Config, store Store) *Searcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = entities.BookColumns
	}
	if cfg.DefaultColumn == "" || !entities.IsBookColumn(cfg.DefaultColumn) {
		cfg.DefaultColumn = DefaultConfig().DefaultColumn
	}
	return &Searcher{cfg: cfg, store: store}
}

func (s *Searcher) Config() Config {
	return s.cfg
}

// Query is shorthand for s.Config().NewQuery.
func (s *Searcher) Query(column, searchWord, page string) Query {
	return s.cfg.NewQuery(column, searchWord, page)
}

// List returns one page of books matching q. A page without books, whether
// the search matched nothing or the page is out of range, is an empty-result error.
func (s *Searcher) List(ctx context.Context, q Query) (Result, error) {
	books, total, err := s.store.Search(ctx, q, s.cfg.PageSize)
	if err != nil {
		return Result{}, apperr.Wrap(err, "Could not load books")
	}
	if len(books) == 0 {
		return Result{}, apperr.EmptyResult("No books found")
	}

	return Result{
		Books:      books,
		Total:      total,
		TotalPages: TotalPages(total, s.cfg.PageSize),
		Query:      q,
	}, nil
}
