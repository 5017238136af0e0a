package utils

import "strings"

// Request structs decode optional fields into pointers so that an absent
// field is distinguishable from an explicit zero value.

// IsMissingString reports whether a string field was absent from the payload.
func IsMissingString(v *string) bool {
	return v == nil
}

// IsMissingInt reports whether an integer field was absent from the payload.
func IsMissingInt(v *int) bool {
	return v == nil
}

// IsBlank reports whether a string trims to empty.
func IsBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}

// IsInvalidCount reports whether an integer fails the non-negative rule.
func IsInvalidCount(v int) bool {
	return v < 0
}

// IsSecureURL reports whether a URL uses the https scheme.
func IsSecureURL(v string) bool {
	return strings.HasPrefix(v, "https")
}

// IsValidPassword enforces the password rule: 8-16 characters with at least
// one digit, one lowercase and one uppercase letter.
func IsValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 16 {
		return false
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}
