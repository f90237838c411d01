// Package authors provides database operations for book authors.
package authors

import (
	"gorm.io/gorm"

	"library-admin/internal/database"
	"library-admin/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of authors, alphabetical by name.
func (r *Repository) List(page int) ([]entities.Author, database.Pagination, error) {
	query := r.db.Model(&entities.Author{}).Order("name ASC")

	var authors []entities.Author
	p, err := database.Paginate(query, page, &authors)
	return authors, p, err
}

// All returns every author ordered by name, for form select choices.
func (r *Repository) All() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

func (r *Repository) Update(author *entities.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author; referencing books cascade-delete with it.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Count(&count).Error
	return count, err
}
