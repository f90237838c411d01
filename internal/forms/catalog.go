package forms

import "strings"

// BookForm carries the submitted fields for book creation and editing.
type BookForm struct {
	Title       string
	Description string
	AuthorID    uint
	CategoryID  uint
	Copies      int
}

// Validate returns the accumulated field errors. Author and category are
// references to existing records; the store's foreign keys back the check
// here, which only guards against a missing selection.
func (f *BookForm) Validate() *Errors {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)

	errs := NewErrors()
	checkFields(BookFields, map[string]string{
		"title":       f.Title,
		"description": f.Description,
	}, errs)

	if f.AuthorID == 0 {
		errs.Add("author", "this field is required")
	}
	if f.CategoryID == 0 {
		errs.Add("category", "this field is required")
	}
	if f.Copies < 1 {
		errs.Add("copies", "copies must be a positive integer")
	}

	return errs
}

// AuthorForm carries the submitted fields for author creation and editing.
type AuthorForm struct {
	Name      string
	Biography string
}

func (f *AuthorForm) Validate() *Errors {
	f.Name = strings.TrimSpace(f.Name)

	errs := NewErrors()
	checkFields(AuthorFields, map[string]string{
		"name":      f.Name,
		"biography": f.Biography,
	}, errs)
	return errs
}

// CategoryForm carries the submitted fields for category creation and
// editing.
type CategoryForm struct {
	Name        string
	Description string
}

func (f *CategoryForm) Validate() *Errors {
	f.Name = strings.TrimSpace(f.Name)

	errs := NewErrors()
	checkFields(CategoryFields, map[string]string{
		"name":        f.Name,
		"description": f.Description,
	}, errs)
	return errs
}
