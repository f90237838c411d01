// Package books provides database operations for the book catalog.
package books

import (
	"strings"

	"gorm.io/gorm"

	"library-admin/internal/database"
	"library-admin/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of books, newest first, with author and category
// preloaded.
func (r *Repository) List(page int) ([]entities.Book, database.Pagination, error) {
	query := r.db.Model(&entities.Book{}).
		Preload("Author").Preload("Category").
		Order("created_at DESC")

	var books []entities.Book
	p, err := database.Paginate(query, page, &books)
	return books, p, err
}

// Search returns one page of books matching query under the given field
// filter. Filter values: "title", "author", "category"; anything else
// matches all of title/description/author name/category name. Matching is
// a case-insensitive substring match; author and category names are
// matched through subqueries so no book appears twice.
func (r *Repository) Search(query, filter string, page int) ([]entities.Book, database.Pagination, error) {
	q := r.db.Model(&entities.Book{}).
		Preload("Author").Preload("Category").
		Order("created_at DESC")

	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + query + "%"
		switch filter {
		case "title":
			q = q.Where("LOWER(title) LIKE LOWER(?)", pattern)
		case "author":
			q = q.Where("author_id IN (SELECT id FROM authors WHERE LOWER(name) LIKE LOWER(?))", pattern)
		case "category":
			q = q.Where("category_id IN (SELECT id FROM categories WHERE LOWER(name) LIKE LOWER(?))", pattern)
		default:
			q = q.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR author_id IN (SELECT id FROM authors WHERE LOWER(name) LIKE LOWER(?)) OR category_id IN (SELECT id FROM categories WHERE LOWER(name) LIKE LOWER(?))",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	var books []entities.Book
	p, err := database.Paginate(q, page, &books)
	return books, p, err
}

// GetByID retrieves a book with author and category preloaded.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Category").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

func (r *Repository) Update(book *entities.Book) error {
	return r.db.Save(book).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// Count returns the total number of books.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// Recent returns the n most recently added books.
func (r *Repository) Recent(n int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Category").
		Order("created_at DESC").Limit(n).Find(&books).Error
	return books, err
}
