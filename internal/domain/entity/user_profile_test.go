package entity

import (
	"testing"
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestUserProfileValidityBoundary(t *testing.T) {
	passed := passedOf(alice, "alice@example.com", PurposeCreateProfile)
	p, err := CreateUserProfile(alice, "alice", "Alice", myselfOf(alice), passed, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.IsValidAt(testNow.Add(UserProfileValidity - time.Millisecond)) {
		t.Fatalf("profile should be valid just before the window ends")
	}
	if p.IsValidAt(testNow.Add(UserProfileValidity)) {
		t.Fatalf("profile should be invalid exactly at expiry")
	}
}

func TestCreateUserProfile_RequiresCreateProfilePurpose(t *testing.T) {
	passed := passedOf(alice, "alice@example.com", PurposeSetEmail)
	_, err := CreateUserProfile(alice, "alice", "Alice", myselfOf(alice), passed, testNow)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestCreateUserProfile_RejectsForeignCertificates(t *testing.T) {
	passed := passedOf(bob, "bob@example.com", PurposeCreateProfile)
	_, err := CreateUserProfile(alice, "alice", "Alice", myselfOf(alice), passed, testNow)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestToExpirationExtended(t *testing.T) {
	p := validProfile(alice)
	p.ExpiresAt = testNow.Add(time.Hour)

	later := testNow.Add(30 * time.Minute)
	passed := passedOf(alice, "alice@example.com", PurposeCreateProfile)
	next, err := p.ToExpirationExtended(myselfOf(alice), passed, later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := next.ExpiresAt, later.Add(UserProfileValidity); !got.Equal(want) {
		t.Fatalf("expiry %v, want %v", got, want)
	}

	// An old set-email certificate is not a re-attestation.
	_, err = p.ToExpirationExtended(myselfOf(alice), passedOf(alice, "alice@example.com", PurposeSetEmail), later)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}
