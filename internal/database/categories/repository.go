// Package categories provides database operations for book categories.
package categories

import (
	"gorm.io/gorm"

	"library-admin/internal/database"
	"library-admin/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of categories, alphabetical by name.
func (r *Repository) List(page int) ([]entities.Category, database.Pagination, error) {
	query := r.db.Model(&entities.Category{}).Order("name ASC")

	var categories []entities.Category
	p, err := database.Paginate(query, page, &categories)
	return categories, p, err
}

// All returns every category ordered by name, for form select choices.
func (r *Repository) All() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) Update(category *entities.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category; referencing books cascade-delete with it.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Category{}, id).Error
}

func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Category{}).Count(&count).Error
	return count, err
}
