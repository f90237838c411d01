// Package forms validates and normalizes submitted form data before it
// reaches the entity store. Validation never writes; errors are
// accumulated per field and reported together rather than raised one at a
// time.
package forms

// Errors collects validation messages keyed by field name, preserving the
// order in which fields first failed.
type Errors struct {
	fields map[string][]string
	order  []string
}

// NewErrors creates an empty error collection.
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add records a message against a field.
func (e *Errors) Add(field, message string) {
	if _, seen := e.fields[field]; !seen {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], message)
}

// HasErrors reports whether any field failed validation.
func (e *Errors) HasErrors() bool {
	return len(e.fields) > 0
}

// Field returns the messages recorded against one field.
func (e *Errors) Field(name string) []string {
	return e.fields[name]
}

// Messages flattens all errors into "field: message" lines, in the order
// fields first failed. All invalid fields are reported, not just the
// first.
func (e *Errors) Messages() []string {
	var out []string
	for _, field := range e.order {
		for _, msg := range e.fields[field] {
			out = append(out, field+": "+msg)
		}
	}
	return out
}
