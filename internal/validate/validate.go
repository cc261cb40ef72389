// Package validate collects field and form validation failures into a list
// of user-facing messages.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPasswordMin = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
	DefaultUsernameMin = 3
	MaxFullnameLength  = 100
	MinAge             = 1
	MaxAge             = 150
)

// formats checks single values against validator tags; it is safe for
// concurrent use.
var formats = validator.New()

// Validator accumulates error messages. Rule methods append on failure and
// report whether the value passed. The zero value is ready to use; a
// Validator is not safe for concurrent use.
type Validator struct {
	errors []string
}

func New() *Validator { return &Validator{} }

func (v *Validator) fail(msg string) bool {
	v.errors = append(v.errors, msg)
	return false
}

func (v *Validator) reset() { v.errors = v.errors[:0] }

// Required fails for empty or whitespace-only values.
func (v *Validator) Required(value, field string) bool {
	if strings.TrimSpace(value) == "" {
		return v.fail(field + " is required")
	}
	return true
}

func (v *Validator) Email(value string) bool {
	if formats.Var(strings.TrimSpace(value), "required,email") != nil {
		return v.fail("Please enter a valid email address")
	}
	return true
}

// Password checks a minimum length in characters and a maximum length in
// bytes; min <= 0 uses DefaultPasswordMin.
func (v *Validator) Password(value string, min int) bool {
	if min <= 0 {
		min = DefaultPasswordMin
	}
	if utf8.RuneCountInString(value) < min {
		return v.fail(fmt.Sprintf("Password must be at least %d characters long", min))
	}
	if len(value) > MaxPasswordBytes {
		return v.fail(fmt.Sprintf("Password must be at most %d bytes long", MaxPasswordBytes))
	}
	return true
}

// Username checks a minimum length; min <= 0 uses DefaultUsernameMin.
func (v *Validator) Username(value string, min int) bool {
	if min <= 0 {
		min = DefaultUsernameMin
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		return v.fail(fmt.Sprintf("Username must be at least %d characters long", min))
	}
	return true
}

func (v *Validator) PasswordsMatch(password, confirm string) bool {
	if password != confirm {
		return v.fail("Passwords do not match")
	}
	return true
}

func (v *Validator) MaxLength(value, field string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		return v.fail(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return true
}

// Age accepts a base-10 integer between MinAge and MaxAge.
func (v *Validator) Age(value string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < MinAge || n > MaxAge {
		return v.fail(fmt.Sprintf("Please enter a valid age (%d-%d)", MinAge, MaxAge))
	}
	return true
}

func (v *Validator) URL(value, field string) bool {
	if formats.Var(strings.TrimSpace(value), "required,url") != nil {
		return v.fail(fmt.Sprintf("Please enter a valid %s URL", field))
	}
	return true
}

// ValidateRegistration runs every signup rule and reports whether all passed.
func (v *Validator) ValidateRegistration(username, email, password, confirm string) bool {
	v.reset()
	if v.Required(username, "Username") {
		v.Username(username, DefaultUsernameMin)
	}
	if v.Required(email, "Email") {
		v.Email(email)
	}
	if v.Required(password, "Password") {
		v.Password(password, DefaultPasswordMin)
	}
	v.PasswordsMatch(password, confirm)
	return !v.HasErrors()
}

func (v *Validator) ValidateLogin(identifier, password string) bool {
	v.reset()
	v.Required(identifier, "Username or email")
	v.Required(password, "Password")
	return !v.HasErrors()
}

// ProfileInput is the raw edit form. Age stays a string so non-numeric input
// can be reported instead of silently dropped.
type ProfileInput struct {
	Fullname string
	Email    string
	Age      string
	LinkedIn string
	GitHub   string
}

// ValidateProfile checks the edit form. Email is required; age, linkedin and
// github are checked only when supplied.
func (v *Validator) ValidateProfile(in ProfileInput) bool {
	v.reset()
	v.MaxLength(in.Fullname, "Full name", MaxFullnameLength)
	if v.Required(in.Email, "Email") {
		v.Email(in.Email)
	}
	if strings.TrimSpace(in.Age) != "" {
		v.Age(in.Age)
	}
	if strings.TrimSpace(in.LinkedIn) != "" {
		v.URL(in.LinkedIn, "LinkedIn")
	}
	if strings.TrimSpace(in.GitHub) != "" {
		v.URL(in.GitHub, "GitHub")
	}
	return !v.HasErrors()
}

// Errors returns a copy of the accumulated messages.
func (v *Validator) Errors() []string {
	return append([]string(nil), v.errors...)
}

func (v *Validator) FirstError() string {
	if len(v.errors) == 0 {
		return ""
	}
	return v.errors[0]
}

func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

func (v *Validator) ErrorsAsString(sep string) string {
	return strings.Join(v.errors, sep)
}
