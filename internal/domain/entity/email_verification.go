package entity

import (
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// EmailVerificationChallengeTTL bounds how long a sent secret remains
// answerable.
const EmailVerificationChallengeTTL = 15 * time.Minute

// EmailVerificationChallenge is a pending question: prove you can read
// this mailbox, for this purpose. The secret travels out of band.
type EmailVerificationChallenge struct {
	ID        ChallengeID
	UserID    UserID
	Email     Email
	Purpose   Purpose
	Secret    ShortSecret
	ExpiresAt time.Time
}

// EmailVerificationDirectory holds the open challenges of one user.
type EmailVerificationDirectory struct {
	ID         UserID
	Challenges []EmailVerificationChallenge
}

// ToChallengeCreatedFromUser opens a challenge against the user's
// current email. The returned challenge carries the secret that must be
// delivered to the mailbox by an external collaborator.
func (d EmailVerificationDirectory) ToChallengeCreatedFromUser(user User, purpose Purpose, rnd Random, now time.Time) (EmailVerificationDirectory, EmailVerificationChallenge, error) {
	if user.ID != d.ID {
		return d, EmailVerificationChallenge{}, apperr.CertificateMismatch("user aggregate does not own this verification directory")
	}
	return d.appendChallenge(user.Email, purpose, rnd, now)
}

// ToChallengeCreatedFromCustomEmail opens a challenge against an
// address the user does not own yet, which is how a new email is proven
// before ToEmailSet.
func (d EmailVerificationDirectory) ToChallengeCreatedFromCustomEmail(email Email, purpose Purpose, rnd Random, now time.Time) (EmailVerificationDirectory, EmailVerificationChallenge, error) {
	return d.appendChallenge(email, purpose, rnd, now)
}

func (d EmailVerificationDirectory) appendChallenge(email Email, purpose Purpose, rnd Random, now time.Time) (EmailVerificationDirectory, EmailVerificationChallenge, error) {
	id, err := newID(rnd)
	if err != nil {
		return d, EmailVerificationChallenge{}, err
	}
	secret, err := newShortSecret(rnd)
	if err != nil {
		return d, EmailVerificationChallenge{}, err
	}
	challenge := EmailVerificationChallenge{
		ID:        ChallengeID(id),
		UserID:    d.ID,
		Email:     email,
		Purpose:   purpose,
		Secret:    secret,
		ExpiresAt: now.Add(EmailVerificationChallengeTTL),
	}
	next := d
	next.Challenges = append(append([]EmailVerificationChallenge(nil), d.Challenges...), challenge)
	return next, challenge, nil
}

// ToAnswerCreated consumes the challenge: a correct answer removes it
// and issues the passed certificate scoped to the challenge's own
// email and purpose. A challenge answers at most once; a second attempt
// finds nothing.
func (d EmailVerificationDirectory) ToAnswerCreated(id ChallengeID, answer ShortSecret, now time.Time) (EmailVerificationDirectory, EmailVerificationPassedCertificate, error) {
	idx := -1
	for i, c := range d.Challenges {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return d, EmailVerificationPassedCertificate{}, apperr.NotFound("no such challenge")
	}
	challenge := d.Challenges[idx]
	if !now.Before(challenge.ExpiresAt) {
		return d, EmailVerificationPassedCertificate{}, apperr.EmailVerificationFailed("the challenge has expired")
	}
	if answer != challenge.Secret {
		return d, EmailVerificationPassedCertificate{}, apperr.EmailVerificationFailed("")
	}
	kept := make([]EmailVerificationChallenge, 0, len(d.Challenges)-1)
	kept = append(kept, d.Challenges[:idx]...)
	kept = append(kept, d.Challenges[idx+1:]...)
	next := d
	next.Challenges = kept
	cert := EmailVerificationPassedCertificate{
		userID:  challenge.UserID,
		email:   challenge.Email,
		purpose: challenge.Purpose,
	}
	return next, cert, nil
}
