package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookcatalog.db"

	// DefaultPageSize is how many books a list page shows
	DefaultPageSize = 5

	// DefaultSearchColumn is searched when the request names no column
	DefaultSearchColumn = "title"
)
