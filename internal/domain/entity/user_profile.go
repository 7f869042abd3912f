package entity

import (
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// UserProfileValidity is the window during which a verified profile
// counts as a live "verified human" attestation.
const UserProfileValidity = 365 * 24 * time.Hour

// UserProfile is a time-bounded attestation that the user was verified
// as a real person. Its validity gates group creation, joining, and
// content changes; the check always happens at use time.
type UserProfile struct {
	ID          UserID
	Name        Name
	DisplayName DisplayName
	ExpiresAt   time.Time
}

// CreateUserProfile requires both proof of identity and a freshly
// passed create-profile challenge.
func CreateUserProfile(id UserID, name Name, displayName DisplayName, myself MyselfCertificate, passed EmailVerificationPassedCertificate, now time.Time) (UserProfile, error) {
	if myself.UserID() != id {
		return UserProfile{}, apperr.CertificateMismatch("myself certificate covers another user")
	}
	if passed.UserID() != id || passed.Purpose() != PurposeCreateProfile {
		return UserProfile{}, apperr.CertificateMismatch("email verification certificate does not authorize profile creation for this user")
	}
	return UserProfile{
		ID:          id,
		Name:        name,
		DisplayName: displayName,
		ExpiresAt:   now.Add(UserProfileValidity),
	}, nil
}

// IsValidAt reports whether the attestation still holds at t. The
// boundary instant itself is already invalid.
func (p UserProfile) IsValidAt(t time.Time) bool { return t.Before(p.ExpiresAt) }

// ToExpirationExtended resets the validity window. Possession of the
// old profile is not enough; a fresh create-profile verification is the
// required re-attestation.
func (p UserProfile) ToExpirationExtended(myself MyselfCertificate, passed EmailVerificationPassedCertificate, now time.Time) (UserProfile, error) {
	if myself.UserID() != p.ID {
		return p, apperr.CertificateMismatch("myself certificate covers another user")
	}
	if passed.UserID() != p.ID || passed.Purpose() != PurposeCreateProfile {
		return p, apperr.CertificateMismatch("email verification certificate does not authorize re-verification for this user")
	}
	next := p
	next.ExpiresAt = now.Add(UserProfileValidity)
	return next, nil
}
