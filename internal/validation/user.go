// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	maxNameLen     = 60
	maxBioLen      = 500
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks that the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateDisplayName checks profile/display name bounds. Empty is allowed;
// display names fall back through profile name -> account name -> a default.
func ValidateDisplayName(name string) error {
	if len(name) > maxNameLen {
		return fmt.Errorf("name must not exceed %d characters", maxNameLen)
	}
	return nil
}

// ValidateBio checks bio length.
func ValidateBio(bio string) error {
	if len(bio) > maxBioLen {
		return fmt.Errorf("bio must not exceed %d characters", maxBioLen)
	}
	return nil
}

// NormalizeHashtags lowercases, trims and dedupes hashtags, dropping any
// leading '#' and empty entries. Order of first occurrence is preserved.
func NormalizeHashtags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		t = strings.TrimPrefix(t, "#")
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
