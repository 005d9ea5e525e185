package env

import (
	"fmt"
	"regexp"
)

var keyPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

// KeyIsValid reports whether key may be patched.
//
// A key is valid if it starts with an uppercase letter or underscore and
// continues with uppercase letters, digits or underscores.
//
// Examples:
//
//	PORT          -> true
//	_PRIVATE      -> true
//	REPO_ROOT_2   -> true
//	1BAD          -> false (starts with a digit)
//	bad-key       -> false (lowercase, dash)
func KeyIsValid(key string) bool {
	return keyPattern.MatchString(key)
}

// ValidateKey returns an ErrInvalidKey error describing why key is rejected.
func ValidateKey(key string) error {
	if key == "" {
		return invalidKeyError(key, "Key cannot be empty")
	}
	if !KeyIsValid(key) {
		return invalidKeyError(key, fmt.Sprintf("Key '%s' should contain only uppercase letters, digits, and underscores", key))
	}
	return nil
}
