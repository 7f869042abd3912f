package entity

import (
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// User is the root of the per-user aggregate family. The account,
// verification directory and bookmark directory are owned by id
// correlation, not containment, and are created together with the user.
type User struct {
	ID        UserID
	Email     Email
	CreatedAt time.Time
}

// CreateUser issues a fresh user id and seeds the empty directories
// that share it.
func CreateUser(email Email, rnd Random, now time.Time) (User, UserAccount, EmailVerificationDirectory, BookmarkDirectory, error) {
	id, err := newID(rnd)
	if err != nil {
		return User{}, UserAccount{}, EmailVerificationDirectory{}, BookmarkDirectory{}, err
	}
	userID := UserID(id)
	user := User{ID: userID, Email: email, CreatedAt: now}
	account := UserAccount{ID: userID}
	verifications := EmailVerificationDirectory{ID: userID}
	bookmarks := BookmarkDirectory{ID: userID}
	return user, account, verifications, bookmarks, nil
}

// ToEmailSet replaces the user's email. The passed certificate is the
// proof: it must cover this user, the set-email purpose, and the new
// address itself.
func (u User) ToEmailSet(email Email, myself MyselfCertificate, passed EmailVerificationPassedCertificate) (User, error) {
	if myself.UserID() != u.ID {
		return u, apperr.CertificateMismatch("myself certificate covers another user")
	}
	if passed.UserID() != u.ID || passed.Purpose() != PurposeSetEmail || passed.Email() != email {
		return u, apperr.CertificateMismatch("email verification certificate does not cover this email change")
	}
	next := u
	next.Email = email
	return next, nil
}
