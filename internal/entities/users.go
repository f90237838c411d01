package entities

import "time"

// User is a staff account. The username column is declared COLLATE NOCASE
// with a unique index so the store itself rejects usernames that differ
// only by case.
type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"type:TEXT COLLATE NOCASE;uniqueIndex;size:150" json:"username"`
	Email        string       `gorm:"size:254" json:"email,omitempty"`
	PasswordHash string       `gorm:"size:100" json:"-"`
	IsActive     bool         `json:"is_active"`
	Profile      *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	DateJoined   time.Time    `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// UserProfile extends a User 1:1. The unique index on UserID makes
// get-or-create races resolve deterministically: one creator wins, the
// other observes the existing row.
type UserProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex" json:"user_id"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	PhoneNumber  string    `gorm:"size:32" json:"phone_number,omitempty"`
	ProfileImage string    `gorm:"size:1024" json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
