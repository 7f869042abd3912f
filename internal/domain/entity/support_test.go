package entity

import (
	"errors"
	"fmt"
	"time"
)

// seqRandom is a deterministic Random for tests: zero-padded counters
// in every format.
type seqRandom struct{ n int }

func (r *seqRandom) ID() (string, error) {
	r.n++
	return fmt.Sprintf("%016d", r.n), nil
}

func (r *seqRandom) ShortSecret() (string, error) {
	r.n++
	return fmt.Sprintf("%06d", r.n), nil
}

func (r *seqRandom) LongSecret() (string, error) {
	r.n++
	return fmt.Sprintf("%064d", r.n), nil
}

// brokenRandom emits output that fails the format predicates.
type brokenRandom struct{}

func (brokenRandom) ID() (string, error)          { return "nope", nil }
func (brokenRandom) ShortSecret() (string, error) { return "", errors.New("entropy exhausted") }
func (brokenRandom) LongSecret() (string, error)  { return "short", nil }

// alwaysValid / alwaysInvalid are SchemaValidator stubs for tests that
// exercise gate ordering rather than validation itself.
type alwaysValid struct{}

func (alwaysValid) Validate(map[string]any, map[string]any) bool { return true }

type alwaysInvalid struct{}

func (alwaysInvalid) Validate(map[string]any, map[string]any) bool { return false }

var testNow = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

func myselfOf(id UserID) MyselfCertificate { return MyselfCertificate{userID: id} }

func passedOf(id UserID, email Email, purpose Purpose) EmailVerificationPassedCertificate {
	return EmailVerificationPassedCertificate{userID: id, email: email, purpose: purpose}
}

func noGroupOf(id UserID) BelongsToNoGroupCertificate {
	return BelongsToNoGroupCertificate{userID: id}
}

func validProfile(id UserID) UserProfile {
	return UserProfile{
		ID:          id,
		Name:        "tester",
		DisplayName: "Tester",
		ExpiresAt:   testNow.Add(UserProfileValidity),
	}
}

func expiredProfile(id UserID) UserProfile {
	p := validProfile(id)
	p.ExpiresAt = testNow
	return p
}
