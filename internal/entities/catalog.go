package entities

import "time"

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	Biography string    `gorm:"type:text" json:"biography,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Book always references exactly one Author and one Category. Deleting
// either cascades to the referencing books (sqlite foreign keys are
// enabled in the database DSN). The foreign keys are declared only here
// on the belongs-to side; a second declaration on a has-many side would
// make AutoMigrate emit a duplicate, non-cascading constraint.
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:512" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Copies      int       `gorm:"default:1" json:"copies"`
	Image       string    `gorm:"size:1024" json:"image,omitempty"`
	AuthorID    uint      `gorm:"index" json:"author_id"`
	CategoryID  uint      `gorm:"index" json:"category_id"`
	Author      Author    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Category    Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Category) TableName() string {
	return "categories"
}

func (Book) TableName() string {
	return "books"
}
