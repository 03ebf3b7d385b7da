package bookstore

import (
	"errors"

	"gorm.io/gorm"

	"bookcatalog/pkg/models"
)

// ErrNotFound is returned when no book exists for the given id.
var ErrNotFound = errors.New("book not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindAll returns every book ordered by title ascending.
func (s *Store) FindAll() ([]models.Book, error) {
	var books []models.Book
	if err := s.db.Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Store) FindByID(id uint) (*models.Book, error) {
	var book models.Book
	err := s.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (s *Store) Create(book *models.Book) error {
	return s.db.Create(book).Error
}

// Update replaces the mutable fields of the book with the given id.
func (s *Store) Update(id uint, fields models.Book) (*models.Book, error) {
	book, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	book.Title = fields.Title
	book.Author = fields.Author
	book.ReleaseDate = fields.ReleaseDate
	book.PageCount = fields.PageCount
	book.Publisher = fields.Publisher

	if err := s.db.Save(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (s *Store) Delete(id uint) error {
	book, err := s.FindByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(book).Error
}
