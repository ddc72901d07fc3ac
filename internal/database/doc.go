// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── books/           # Book CRUD and search
//
// # Usage
//
//	db, err := database.NewDatabase("./bookcatalog.db")
//	booksRepo := books.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(ctx, 123)
//
// books.Repository implements catalog.Store (filtered count + page in one
// read transaction) and the http.BookStore interface used by the controllers.
package database
