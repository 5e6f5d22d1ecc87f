package signup

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	msgEmailRequired    = "Please enter your email"
	msgCodeRequired     = "Please enter the verification code"
	msgFillAllFields    = "Please fill in all fields"
	msgNameTooShort     = "Name must be three letter at least"
	msgPasswordMismatch = "Passwords do not match"
	msgPasswordTooShort = "Password must be at least 8 characters long"
	msgSessionExpired   = "Session expired. Please start over."

	minNameLength     = 3
	minPasswordLength = 8
)

// ValidationError is a form error caught before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func check(field string, value any, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return &ValidationError{Field: field, Message: err.Error()}
	}
	return nil
}

func equalTo(other string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != other {
			return errors.New(msgPasswordMismatch)
		}
		return nil
	}
}

func validateEmail(email string) error {
	return check("email", email, validation.Required.Error(msgEmailRequired))
}

func validateCode(code string) error {
	return check("code", code, validation.Required.Error(msgCodeRequired))
}

// validateProfile checks the final form in the order the user sees the
// messages: missing fields, name, confirmation, password strength.
func validateProfile(name, password, confirm string) error {
	required := validation.Required.Error(msgFillAllFields)
	if err := check("name", name, required); err != nil {
		return err
	}
	if err := check("password", password, required); err != nil {
		return err
	}
	if err := check("confirm", confirm, required); err != nil {
		return err
	}
	if err := check("name", name, validation.RuneLength(minNameLength, 0).Error(msgNameTooShort)); err != nil {
		return err
	}
	if err := check("confirm", confirm, validation.By(equalTo(password))); err != nil {
		return err
	}
	return check("password", password, validation.RuneLength(minPasswordLength, 0).Error(msgPasswordTooShort))
}
