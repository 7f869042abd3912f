package entity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/communehq/commune/internal/domain/apperr"
)

// Constrained string values. Each wrapper is only constructible through
// its Parse function, so holding one means the constraint already held.

// Name is a lowercase slug used for group profiles, template names and
// bookmark tags.
type Name string

var namePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,62}[a-z0-9])?$`)

func ParseName(s string) (Name, error) {
	if !namePattern.MatchString(s) {
		return "", apperr.IllegalValue(fmt.Sprintf("malformed name %q", s))
	}
	return Name(s), nil
}

// DisplayName is a human-facing label, 1..64 characters, no leading or
// trailing whitespace.
type DisplayName string

func ParseDisplayName(s string) (DisplayName, error) {
	if s == "" || strings.TrimSpace(s) != s || utf8.RuneCountInString(s) > 64 {
		return "", apperr.IllegalValue(fmt.Sprintf("malformed display name %q", s))
	}
	return DisplayName(s), nil
}

// Title is an item headline, 1..128 characters, trimmed.
type Title string

func ParseTitle(s string) (Title, error) {
	if s == "" || strings.TrimSpace(s) != s || utf8.RuneCountInString(s) > 128 {
		return "", apperr.IllegalValue(fmt.Sprintf("malformed title %q", s))
	}
	return Title(s), nil
}

// Email keeps validation deliberately loose: one @, non-empty local and
// domain parts, no whitespace.
type Email string

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ParseEmail(s string) (Email, error) {
	if len(s) > 254 || !emailPattern.MatchString(s) {
		return "", apperr.IllegalValue(fmt.Sprintf("malformed email %q", s))
	}
	return Email(s), nil
}

// ShortSecret is the 32-bit secret used for invitation codes and email
// verification challenges.
type ShortSecret string

var shortSecretPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6}$`)

// IsWellFormedShortSecret reports whether s matches the short secret format.
func IsWellFormedShortSecret(s string) bool { return shortSecretPattern.MatchString(s) }

func ParseShortSecret(s string) (ShortSecret, error) {
	if !IsWellFormedShortSecret(s) {
		return "", apperr.IllegalValue("malformed short secret")
	}
	return ShortSecret(s), nil
}

// LongSecret is the 384-bit secret carried by authentication tokens.
type LongSecret string

var longSecretPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{64}$`)

// IsWellFormedLongSecret reports whether s matches the long secret format.
func IsWellFormedLongSecret(s string) bool { return longSecretPattern.MatchString(s) }

func ParseLongSecret(s string) (LongSecret, error) {
	if !IsWellFormedLongSecret(s) {
		return "", apperr.IllegalValue("malformed long secret")
	}
	return LongSecret(s), nil
}
