package entity

import (
	"fmt"

	"github.com/communehq/commune/internal/domain/apperr"
)

// Random produces the fresh identifiers and secrets that transitions
// mint. Implementations live outside the domain; the domain re-checks
// every generated value against its format predicate and treats a
// mismatch as a defect in the random source.
type Random interface {
	// ID returns a 16-character URL-safe identifier (96 bits).
	ID() (string, error)
	// ShortSecret returns a 6-character URL-safe secret (32 bits).
	ShortSecret() (string, error)
	// LongSecret returns a 64-character URL-safe secret (384 bits).
	LongSecret() (string, error)
}

func newID(rnd Random) (string, error) {
	s, err := rnd.ID()
	if err != nil {
		return "", apperr.Generation(err)
	}
	if !IsWellFormedID(s) {
		return "", apperr.Generation(fmt.Errorf("id %q fails format predicate", s))
	}
	return s, nil
}

func newShortSecret(rnd Random) (ShortSecret, error) {
	s, err := rnd.ShortSecret()
	if err != nil {
		return "", apperr.Generation(err)
	}
	if !IsWellFormedShortSecret(s) {
		return "", apperr.Generation(fmt.Errorf("short secret fails format predicate"))
	}
	return ShortSecret(s), nil
}

func newLongSecret(rnd Random) (LongSecret, error) {
	s, err := rnd.LongSecret()
	if err != nil {
		return "", apperr.Generation(err)
	}
	if !IsWellFormedLongSecret(s) {
		return "", apperr.Generation(fmt.Errorf("long secret fails format predicate"))
	}
	return LongSecret(s), nil
}
