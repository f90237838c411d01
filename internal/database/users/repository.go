// Package users provides database operations for staff accounts and their
// profiles.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername(name)
package users

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"library-admin/internal/database"
	"library-admin/internal/entities"
)

// Repository handles all user and profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of users, newest-joined first.
func (r *Repository) List(page int) ([]entities.User, database.Pagination, error) {
	query := r.db.Model(&entities.User{}).Preload("Profile").Order("date_joined DESC")

	var users []entities.User
	p, err := database.Paginate(query, page, &users)
	return users, p, err
}

// Search returns one page of users matching query under the given field
// filter. An empty query returns the unfiltered listing. Filter values:
// "username", "email", "address", anything else matches all of
// username/email/profile address/profile phone. Matching is a
// case-insensitive substring match. Profile fields are matched through a
// subquery so a user never appears twice.
func (r *Repository) Search(query, filter string, page int) ([]entities.User, database.Pagination, error) {
	q := r.db.Model(&entities.User{}).Preload("Profile").Order("date_joined DESC")

	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + query + "%"
		switch filter {
		case "username":
			q = q.Where("LOWER(username) LIKE LOWER(?)", pattern)
		case "email":
			q = q.Where("LOWER(email) LIKE LOWER(?)", pattern)
		case "address":
			q = q.Where("id IN (SELECT user_id FROM user_profiles WHERE LOWER(address) LIKE LOWER(?))", pattern)
		default:
			q = q.Where(
				"LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR id IN (SELECT user_id FROM user_profiles WHERE LOWER(address) LIKE LOWER(?) OR LOWER(phone_number) LIKE LOWER(?))",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	var users []entities.User
	p, err := database.Paginate(q, page, &users)
	return users, p, err
}

// GetByID retrieves a user with their profile preloaded.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.Preload("Profile").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username, case-insensitively.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether a user other than excludeID already holds
// the username, ignoring case. Pass excludeID 0 when creating.
func (r *Repository) UsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).
		Where("LOWER(username) = LOWER(?) AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Create persists a user together with their profile in one transaction:
// either both rows exist afterwards or neither does.
func (r *Repository) Create(user *entities.User, profile *entities.UserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
}

// Update saves a user and their profile in one transaction.
func (r *Repository) Update(user *entities.User, profile *entities.UserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Save(profile).Error
	})
}

// GetOrCreateProfile returns the user's profile, inserting an empty one if
// absent. A concurrent first access loses the insert race on the unique
// user_id index and re-reads the winner's row.
func (r *Repository) GetOrCreateProfile(userID uint) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	err := r.db.Where(entities.UserProfile{UserID: userID}).FirstOrCreate(&profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = r.db.Where("user_id = ?", userID).First(&profile).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}
	return &profile, nil
}

// Delete removes a user; the profile row goes with it via the foreign-key
// cascade.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}

// Count returns the total number of users.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

// Recent returns the n most recently joined users.
func (r *Repository) Recent(n int) ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("date_joined DESC").Limit(n).Find(&users).Error
	return users, err
}
