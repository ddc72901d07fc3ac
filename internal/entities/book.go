package entities

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/mrlokans/bookcatalog/internal/apperr"
)

// Searchable columns, in the order the search form offers them.
var BookColumns = []string{"title", "author", "genre", "year"}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:255" json:"title" validate:"notblank,max=255"`
	Author    string    `gorm:"not null;size:255" json:"author" validate:"notblank,max=255"`
	Genre     string    `gorm:"not null;size:255" json:"genre" validate:"notblank,max=255"`
	Year      int       `gorm:"not null" json:"year" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// Report JSON names so field errors line up with form field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the descriptive fields. It returns an *apperr.Error of
// kind validation listing every rejected field.
func (b *Book) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate book: %w", err)
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:   fe.Field(),
			Code:    fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return apperr.Validation(fields...)
}

func validationMessage(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// BeforeSave runs on every create and update, so nothing invalid reaches the table.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

// IsBookColumn reports whether name is a searchable column.
func IsBookColumn(name string) bool {
	for _, c := range BookColumns {
		if c == name {
			return true
		}
	}
	return false
}
