package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bookcatalog/pkg/bookstore"
	"bookcatalog/pkg/csrf"
	"bookcatalog/pkg/database"
	"bookcatalog/pkg/ratings"
	"bookcatalog/pkg/validation"
)

var (
	db            *gorm.DB
	store         *bookstore.Store
	ratingsClient *ratings.Client
)

func main() {
	log.Println("Starting catalog service...")

	db = database.InitBookDB()
	store = bookstore.NewStore(db)

	ratingsBase := getEnv("RATINGS_SERVICE_URL", "http://localhost:5001")
	ratingsClient = ratings.NewClient(ratingsBase)

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.tmpl")

	r.GET("/", listBooks)
	r.GET("/books/:id", showBook)
	r.POST("/books/:id/ratings", createRating)

	forms := r.Group("/book", csrf.Middleware())
	forms.GET("/add", addBookForm)
	forms.POST("/add", addBook)
	forms.GET("/edit/:id", editBookForm)
	forms.POST("/edit/:id", editBook)
	forms.GET("/delete/:id", deleteBookForm)
	forms.POST("/delete/:id", deleteBook)

	r.GET("/manage/health", healthCheck)

	port := getEnv("PORT", "8080")
	log.Println("Catalog service starting on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func listBooks(c *gin.Context) {
	books, err := store.FindAll()
	if err != nil {
		log.Printf("Error listing books: %v", err)
		renderServerError(c)
		return
	}
	c.HTML(http.StatusOK, "book-list.tmpl", gin.H{
		"title": "Books",
		"books": books,
	})
}

func showBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	detail, err := composeDetail(store, ratingsClient, id)
	if err != nil {
		if errors.Is(err, bookstore.ErrNotFound) {
			renderNotFound(c)
			return
		}
		log.Printf("Error: %v", err)
		renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "book-show.tmpl", gin.H{
		"title":        detail.Book.Title,
		"book":         detail.Book,
		"ratings":      detail.Ratings,
		"ratingFailed": c.Query("error") == "rating_failed",
	})
}

func createRating(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	value := c.PostForm("value")
	email := c.PostForm("email")

	if err := ratingsClient.SubmitRating(id, value, email); err != nil {
		log.Printf("Error creating rating: %v", err)
		c.Redirect(http.StatusFound, fmt.Sprintf("/books/%d?error=rating_failed", id))
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/books/%d", id))
}

func addBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, "book-add.tmpl", gin.H{
		"title":     "Add Book",
		"form":      validation.BookForm{},
		"csrfToken": csrf.Token(c),
	})
}

func addBook(c *gin.Context) {
	form := bookFormFromRequest(c)

	if errs := form.Validate(); len(errs) > 0 {
		c.HTML(http.StatusOK, "book-add.tmpl", gin.H{
			"title":     "Add Book",
			"form":      form,
			"errors":    errs,
			"csrfToken": csrf.Token(c),
		})
		return
	}

	book, err := form.Book()
	if err != nil {
		log.Printf("Error converting book form: %v", err)
		renderServerError(c)
		return
	}
	if err := store.Create(&book); err != nil {
		log.Printf("Error creating book: %v", err)
		renderServerError(c)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func editBookForm(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := store.FindByID(id)
	if err != nil {
		if errors.Is(err, bookstore.ErrNotFound) {
			renderNotFound(c)
			return
		}
		log.Printf("Error loading book %d: %v", id, err)
		renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "book-edit.tmpl", gin.H{
		"title": "Edit Book",
		"form": validation.BookForm{
			Title:       book.Title,
			Author:      book.Author,
			ReleaseDate: book.ReleaseDate.Format("2006-01-02"),
			PageCount:   strconv.Itoa(book.PageCount),
			Publisher:   book.Publisher,
		},
		"bookID":    book.ID,
		"csrfToken": csrf.Token(c),
	})
}

func editBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	form := bookFormFromRequest(c)

	if errs := form.Validate(); len(errs) > 0 {
		c.HTML(http.StatusOK, "book-edit.tmpl", gin.H{
			"title":     "Edit Book",
			"form":      form,
			"errors":    errs,
			"bookID":    id,
			"csrfToken": csrf.Token(c),
		})
		return
	}

	book, err := form.Book()
	if err != nil {
		log.Printf("Error converting book form: %v", err)
		renderServerError(c)
		return
	}
	if _, err := store.Update(id, book); err != nil {
		if errors.Is(err, bookstore.ErrNotFound) {
			renderNotFound(c)
			return
		}
		log.Printf("Error updating book %d: %v", id, err)
		renderServerError(c)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func deleteBookForm(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := store.FindByID(id)
	if err != nil {
		if errors.Is(err, bookstore.ErrNotFound) {
			renderNotFound(c)
			return
		}
		log.Printf("Error loading book %d: %v", id, err)
		renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "book-delete.tmpl", gin.H{
		"title":     "Delete Book",
		"book":      book,
		"csrfToken": csrf.Token(c),
	})
}

func deleteBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := store.Delete(id); err != nil {
		if errors.Is(err, bookstore.ErrNotFound) {
			renderNotFound(c)
			return
		}
		log.Printf("Error deleting book %d: %v", id, err)
		renderServerError(c)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func healthCheck(c *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Host localhost:8080 is active",
	})
}

// parseBookID reads the :id path segment, which must be a digit sequence.
func parseBookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		renderNotFound(c)
		return 0, false
	}
	return uint(id), true
}

func bookFormFromRequest(c *gin.Context) validation.BookForm {
	return validation.BookForm{
		Title:       c.PostForm("title"),
		Author:      c.PostForm("author"),
		ReleaseDate: c.PostForm("releaseDate"),
		PageCount:   c.PostForm("pageCount"),
		Publisher:   c.PostForm("publisher"),
	}
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not-found.tmpl", gin.H{
		"title":   "Not Found",
		"message": "Book not found",
	})
}

func renderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
		"title":   "Error",
		"message": "Server error",
	})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
