// Package catalog turns list requests into store queries.
//
// A Query carries the column to filter on, the substring to look for and the
// 1-indexed page. Config holds the page size and the default column; it is
// passed explicitly to everything that paginates.
package catalog

import (
	"strconv"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

type Config struct {
	PageSize      int
	DefaultColumn string
	Columns       []string
}

func DefaultConfig() Config {
	return Config{
		PageSize:      5,
		DefaultColumn: "title",
		Columns:       entities.BookColumns,
	}
}

type Query struct {
	Column     string
	SearchWord string
	Page       int
}

// NewQuery applies defaults to raw request values. The column is interpolated
// into SQL, so anything outside cfg.Columns falls back to the default column.
func (cfg Config) NewQuery(column, searchWord, page string) Query {
	q := Query{
		Column:     cfg.normalizeColumn(column),
		SearchWord: searchWord,
		Page:       1,
	}
	if page != "" {
		if p, err := strconv.Atoi(strings.TrimSpace(page)); err == nil {
			q.Page = p
		}
	}
	return q
}

func (cfg Config) normalizeColumn(column string) string {
	column = strings.ToLower(strings.TrimSpace(column))
	for _, c := range cfg.Columns {
		if c == column {
			return column
		}
	}
	return cfg.DefaultColumn
}

// Offset is the number of rows to skip for q.Page. Pages below 1 give a negative offset.
func (q Query) Offset(pageSize int) int {
	return (q.Page - 1) * pageSize
}

// InRange reports whether the page can hold any rows at all.
func (q Query) InRange() bool {
	return q.Page >= 1
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern is the LIKE pattern matching SearchWord as a literal substring.
// It pairs with ESCAPE '\'.
func (q Query) Pattern() string {
	return "%" + likeEscaper.Replace(q.SearchWord) + "%"
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
