package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

var requiredHeaders = []string{"title", "author", "genre", "year"}

// Row is a parsed book and the line of the file it came from.
type Row struct {
	Line int
	Book entities.Book
}

// ReadCSV parses a catalog CSV file. The header row is required and must name
// title, author, genre and year in any order; other columns (such as id from
// an export) are ignored.
// Returns the parsed rows, any row errors encountered, and a fatal error if
// the file cannot be parsed at all.
func ReadCSV(r io.Reader) ([]Row, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var rows []Row
	var errors []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// ParseError already names its line
			errors = append(errors, err.Error())
			continue
		}
		lineNum, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		book := entities.Book{
			Title:  getCSVValue(record, headerIndex, "title"),
			Author: getCSVValue(record, headerIndex, "author"),
			Genre:  getCSVValue(record, headerIndex, "genre"),
		}

		yearStr := getCSVValue(record, headerIndex, "year")
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Line %d: skipped - year %q is not a whole number", lineNum, yearStr))
			continue
		}
		book.Year = year

		rows = append(rows, Row{Line: lineNum, Book: book})
	}

	return rows, errors, nil
}

func getCSVValue(record []string, headerIndex map[string]int, header string) string {
	if idx, ok := headerIndex[header]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
