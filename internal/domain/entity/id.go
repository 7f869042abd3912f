package entity

import (
	"fmt"
	"regexp"

	"github.com/communehq/commune/internal/domain/apperr"
)

// Every aggregate id is a fixed-length, URL-safe random string. The ids
// are type-tagged per aggregate kind so a GroupID can never stand in
// for a UserID even though both are 16-character strings.

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{16}$`)

// IsWellFormedID reports whether s matches the aggregate id format.
func IsWellFormedID(s string) bool { return idPattern.MatchString(s) }

type UserID string

type GroupID string

type TemplateID string

type ItemID string

type AuthenticationTokenID string

type ChallengeID string

func parseID(kind, s string) (string, error) {
	if !IsWellFormedID(s) {
		return "", apperr.IllegalValue(fmt.Sprintf("malformed %s id %q", kind, s))
	}
	return s, nil
}

func ParseUserID(s string) (UserID, error) {
	v, err := parseID("user", s)
	return UserID(v), err
}

func ParseGroupID(s string) (GroupID, error) {
	v, err := parseID("group", s)
	return GroupID(v), err
}

func ParseTemplateID(s string) (TemplateID, error) {
	v, err := parseID("template", s)
	return TemplateID(v), err
}

func ParseItemID(s string) (ItemID, error) {
	v, err := parseID("item", s)
	return ItemID(v), err
}

func ParseAuthenticationTokenID(s string) (AuthenticationTokenID, error) {
	v, err := parseID("authentication token", s)
	return AuthenticationTokenID(v), err
}

func ParseChallengeID(s string) (ChallengeID, error) {
	v, err := parseID("challenge", s)
	return ChallengeID(v), err
}
