package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// HexColorRegex matches #RGB and #RRGGBB colors
	HexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors into a per-field map of
// violated rules for the error envelope.
func FormatValidationErrors(err error) map[string][]string {
	errors := make(map[string][]string)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = []string{err.Error()}
		return errors
	}

	for _, e := range validationErrs {
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		var msg string
		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", e.Field())
		case "email":
			msg = "Invalid email format"
		case "min":
			msg = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		case "gte":
			msg = fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
		case "lte":
			msg = fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
		case "eqfield":
			msg = fmt.Sprintf("%s must match %s", e.Field(), e.Param())
		case "url":
			msg = fmt.Sprintf("%s must be a valid URL", e.Field())
		default:
			msg = fmt.Sprintf("%s is invalid", e.Field())
		}
		errors[field] = append(errors[field], msg)
	}

	return errors
}

// ValidateHexColor checks if a string is a valid hex color
func ValidateHexColor(color string) bool {
	return HexColorRegex.MatchString(color)
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 {
		return false, "Username must be at least 3 characters"
	}
	if len(username) > 30 {
		return false, "Username must be at most 30 characters"
	}
	if !usernameRegex.MatchString(username) {
		return false, "Username can only contain letters, numbers, underscores, and hyphens"
	}
	return true, ""
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}

// OneOf reports whether value belongs to the closed set
func OneOf(value string, set []string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
