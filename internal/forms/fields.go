package forms

import "fmt"

// Field declares a validation constraint for one form field, independent
// of any presentation concern.
type Field struct {
	Name      string
	Required  bool
	MaxLength int
}

// Field sets per form. Rule-specific checks (uniqueness, password
// confirmation, numeric ranges) run on top of these in each form's
// Validate.
var (
	UserFields = []Field{
		{Name: "username", Required: true, MaxLength: 150},
		{Name: "email", MaxLength: 254},
	}
	ProfileFields = []Field{
		{Name: "address", MaxLength: 1024},
		{Name: "phone_number", MaxLength: 32},
	}
	BookFields = []Field{
		{Name: "title", Required: true, MaxLength: 512},
		{Name: "description"},
	}
	AuthorFields = []Field{
		{Name: "name", Required: true, MaxLength: 256},
		{Name: "biography"},
	}
	CategoryFields = []Field{
		{Name: "name", Required: true, MaxLength: 256},
		{Name: "description"},
	}
)

// checkFields applies the generic required and max-length constraints to
// the submitted values, accumulating failures into errs.
func checkFields(fields []Field, values map[string]string, errs *Errors) {
	for _, f := range fields {
		value := values[f.Name]
		if f.Required && value == "" {
			errs.Add(f.Name, "this field is required")
			continue
		}
		if f.MaxLength > 0 && len(value) > f.MaxLength {
			errs.Add(f.Name, fmt.Sprintf("ensure this value has at most %d characters", f.MaxLength))
		}
	}
}
