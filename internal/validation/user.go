// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"bucketlist/internal/auth"
)

const (
	maxEmailLength    = 255
	maxUsernameLength = 25
	maxNameLength     = 25
	maxTitleLength    = 100
	maxItemNameLength = 255
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateEmail checks that email is a single bare address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must not exceed %d characters", maxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if utf8.RuneCountInString(username) > maxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLength)
	}

	// Only allow alphanumeric, dots, underscores and hyphens
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, dots, underscores, and hyphens")
	}

	return nil
}

// ValidateName checks a first or last name. field is used in the error message.
func ValidateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%s must not exceed %d characters", field, maxNameLength)
	}
	return nil
}

// ValidatePassword checks that a password is present and fits bcrypt's input limit.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", auth.MaxPasswordBytes)
	}
	return nil
}
