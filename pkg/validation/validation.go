package validation

import (
	"fmt"
	"strconv"
	"time"

	"bookcatalog/pkg/models"
)

const dateLayout = "2006-01-02"

// BookForm holds a book submission exactly as the user typed it, so a
// rejected form can be re-rendered with the submitted values.
type BookForm struct {
	Title       string
	Author      string
	ReleaseDate string
	PageCount   string
	Publisher   string
}

// Validate checks every field independently and returns all violation
// messages. An empty slice means the form is valid.
func (f *BookForm) Validate() []string {
	var errors []string

	if f.Title == "" {
		errors = append(errors, "Please provide a value for Title")
	} else if len(f.Title) > 255 {
		errors = append(errors, "Title must not be more than 255 characters long")
	}

	if f.Author == "" {
		errors = append(errors, "Please provide a value for Author")
	} else if len(f.Author) > 100 {
		errors = append(errors, "Author must not be more than 100 characters long")
	}

	if f.ReleaseDate == "" {
		errors = append(errors, "Please provide a value for Release Date")
	} else if _, err := time.Parse(dateLayout, f.ReleaseDate); err != nil {
		errors = append(errors, "Please provide a valid date for Release Date")
	}

	if f.PageCount == "" {
		errors = append(errors, "Please provide a value for Page Count")
	} else if pages, err := strconv.Atoi(f.PageCount); err != nil || pages < 0 {
		errors = append(errors, "Please provide a valid integer for Page Count")
	}

	if f.Publisher == "" {
		errors = append(errors, "Please provide a value for Publisher")
	} else if len(f.Publisher) > 100 {
		errors = append(errors, "Publisher must not be more than 100 characters long")
	}

	return errors
}

// Book converts a validated form into a book record. Call Validate first;
// conversion fails on fields that would not have passed it.
func (f *BookForm) Book() (models.Book, error) {
	releaseDate, err := time.Parse(dateLayout, f.ReleaseDate)
	if err != nil {
		return models.Book{}, fmt.Errorf("invalid release date: %w", err)
	}
	pageCount, err := strconv.Atoi(f.PageCount)
	if err != nil {
		return models.Book{}, fmt.Errorf("invalid page count: %w", err)
	}

	return models.Book{
		Title:       f.Title,
		Author:      f.Author,
		ReleaseDate: releaseDate,
		PageCount:   pageCount,
		Publisher:   f.Publisher,
	}, nil
}
