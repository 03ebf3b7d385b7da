package main

import (
	"errors"
	"fmt"

	"bookcatalog/pkg/bookstore"
	"bookcatalog/pkg/models"
)

type bookFinder interface {
	FindByID(id uint) (*models.Book, error)
}

type aggregateFetcher interface {
	FetchAggregate(bookID uint) models.RatingAggregate
}

type bookDetail struct {
	Book    *models.Book
	Ratings models.RatingAggregate
}

// composeDetail merges a book record with its rating aggregate. A missing
// book yields bookstore.ErrNotFound and the ratings service is not called.
// The ratings fetch itself cannot fail (it degrades to the default
// aggregate), so once the book loads the detail always renders.
func composeDetail(finder bookFinder, fetcher aggregateFetcher, id uint) (*bookDetail, error) {
	book, err := finder.FindByID(id)
	if err != nil {
		if errors.Is(err, bookstore.ErrNotFound) {
			return nil, bookstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", id, err)
	}

	return &bookDetail{
		Book:    book,
		Ratings: fetcher.FetchAggregate(id),
	}, nil
}
