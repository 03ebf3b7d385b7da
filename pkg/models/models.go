package models

import (
	"time"
)

type Book struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Author      string    `gorm:"size:100;not null"`
	ReleaseDate time.Time `gorm:"not null"`
	PageCount   int       `gorm:"not null;check:page_count >= 0"`
	Publisher   string    `gorm:"size:100;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RatingEntry is a single rating as the ratings service reports it.
type RatingEntry struct {
	Value int    `json:"value"`
	Email string `json:"email"`
}

// RatingAggregate is the ratings service's summary for one book. It is
// owned by the ratings service and never persisted or cached here.
type RatingAggregate struct {
	Average float64       `json:"average"`
	Ratings []RatingEntry `json:"ratings"`
}

// DefaultAggregate is the fallback used whenever real rating data is
// unobtainable. The ratings slice is empty, not nil, so rendered views
// stay stable.
func DefaultAggregate() RatingAggregate {
	return RatingAggregate{
		Average: 0,
		Ratings: []RatingEntry{},
	}
}
