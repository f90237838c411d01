// Package search implements the cross-entity global search: one query
// fanned out across books, users, authors and categories, each capped to a
// small preview count.
package search

import (
	"strings"

	"gorm.io/gorm"

	"library-admin/internal/entities"
)

// Type selects which entity types a global search covers.
type Type string

const (
	TypeAll        Type = "all"
	TypeBooks      Type = "books"
	TypeUsers      Type = "users"
	TypeAuthors    Type = "authors"
	TypeCategories Type = "categories"
)

// PreviewLimit caps the number of matches returned per entity type.
// Global search is a preview, not a listing, so there is no pagination.
const PreviewLimit = 10

// ParseType maps a raw type selector to a known Type, defaulting to all.
func ParseType(raw string) Type {
	switch Type(raw) {
	case TypeBooks, TypeUsers, TypeAuthors, TypeCategories:
		return Type(raw)
	default:
		return TypeAll
	}
}

// Results holds the per-type matches of one global search.
type Results struct {
	Query      string
	Type       Type
	Books      []entities.Book
	Users      []entities.User
	Authors    []entities.Author
	Categories []entities.Category
}

// Service runs global searches against the entity store.
type Service struct {
	db *gorm.DB
}

// NewService creates a new global search service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Global runs the all-fields substring match of every selected entity type
// and returns at most PreviewLimit matches per type. An empty query
// returns empty result sets.
func (s *Service) Global(query string, t Type) (*Results, error) {
	results := &Results{Query: strings.TrimSpace(query), Type: t}
	if results.Query == "" {
		return results, nil
	}
	pattern := "%" + results.Query + "%"

	if t == TypeAll || t == TypeBooks {
		err := s.db.Preload("Author").Preload("Category").
			Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR author_id IN (SELECT id FROM authors WHERE LOWER(name) LIKE LOWER(?)) OR category_id IN (SELECT id FROM categories WHERE LOWER(name) LIKE LOWER(?))",
				pattern, pattern, pattern, pattern,
			).
			Limit(PreviewLimit).Find(&results.Books).Error
		if err != nil {
			return nil, err
		}
	}

	if t == TypeAll || t == TypeUsers {
		err := s.db.Preload("Profile").
			Where(
				"LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR id IN (SELECT user_id FROM user_profiles WHERE LOWER(address) LIKE LOWER(?))",
				pattern, pattern, pattern,
			).
			Limit(PreviewLimit).Find(&results.Users).Error
		if err != nil {
			return nil, err
		}
	}

	if t == TypeAll || t == TypeAuthors {
		err := s.db.Where("LOWER(name) LIKE LOWER(?)", pattern).
			Limit(PreviewLimit).Find(&results.Authors).Error
		if err != nil {
			return nil, err
		}
	}

	if t == TypeAll || t == TypeCategories {
		err := s.db.Where("LOWER(name) LIKE LOWER(?)", pattern).
			Limit(PreviewLimit).Find(&results.Categories).Error
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
