package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Column widths of the users and files tables, in characters.
const (
	MaxUsernameLength         = 100
	MaxDisplayNameLength      = 200
	MaxCategoryLength         = 100
	MaxOriginalFilenameLength = 200
)

// ErrTooLong is returned when a value does not fit its column.
var ErrTooLong = errors.New("value too long")

func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%s exceeds %d characters: %w", field, limit, ErrTooLong)
	}
	return nil
}

// ValidateUsername reports whether username fits the users table.
func ValidateUsername(username string) error {
	return checkLength("username", username, MaxUsernameLength)
}

// Validate reports the first searchable column that does not fit.
func (f File) Validate() error {
	if err := checkLength("display name", f.DisplayName, MaxDisplayNameLength); err != nil {
		return err
	}
	if err := checkLength("category", f.Category, MaxCategoryLength); err != nil {
		return err
	}
	if err := checkLength("original filename", f.OriginalFilename, MaxOriginalFilenameLength); err != nil {
		return err
	}
	return ValidateUsername(f.UploadedBy)
}
