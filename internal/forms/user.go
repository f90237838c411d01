package forms

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validation messages surfaced to the user.
const (
	MsgUsernameTaken    = "a user with that username already exists"
	MsgPasswordMismatch = "passwords don't match"
	MsgInvalidEmail     = "enter a valid email address"
)

// UsernameChecker answers the case-insensitive uniqueness question,
// excluding the record being edited.
type UsernameChecker interface {
	UsernameTaken(username string, excludeID uint) (bool, error)
}

// UserForm carries the submitted fields for administrative user creation
// and editing. Password is optional: blank on edit means unchanged, blank
// on creation means one is generated.
type UserForm struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Validate normalizes the form and returns the accumulated field errors.
// excludeID is the record being edited (0 when creating) so a user keeps
// their own username. The returned error is a store failure, not a
// validation failure.
func (f *UserForm) Validate(checker UsernameChecker, excludeID uint) (*Errors, error) {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	errs := NewErrors()
	checkFields(UserFields, map[string]string{
		"username": f.Username,
		"email":    f.Email,
	}, errs)

	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		errs.Add("email", MsgInvalidEmail)
	}

	if f.Password != "" && f.PasswordConfirm != "" && f.Password != f.PasswordConfirm {
		errs.Add("password", MsgPasswordMismatch)
	}

	if f.Username != "" {
		taken, err := checker.UsernameTaken(f.Username, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", MsgUsernameTaken)
		}
	}

	return errs, nil
}

// RegisterForm is the self-registration variant of UserForm: the password
// and its confirmation are mandatory.
type RegisterForm struct {
	UserForm
}

// Validate applies the UserForm rules plus the required-password rule.
func (f *RegisterForm) Validate(checker UsernameChecker) (*Errors, error) {
	errs, err := f.UserForm.Validate(checker, 0)
	if err != nil {
		return nil, err
	}

	if f.Password == "" {
		errs.Add("password", "this field is required")
	}
	if f.PasswordConfirm == "" {
		errs.Add("password_confirm", "this field is required")
	}

	return errs, nil
}

// ProfileForm carries the submitted profile fields. Address and phone are
// free text; only the generic length limits apply.
type ProfileForm struct {
	Address     string
	PhoneNumber string
}

// Validate returns the accumulated field errors.
func (f *ProfileForm) Validate() *Errors {
	f.Address = strings.TrimSpace(f.Address)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)

	errs := NewErrors()
	checkFields(ProfileFields, map[string]string{
		"address":      f.Address,
		"phone_number": f.PhoneNumber,
	}, errs)
	return errs
}
