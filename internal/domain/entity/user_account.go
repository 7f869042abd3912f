package entity

import (
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// AuthenticationTokenTTL is the fixed lifetime of a newly issued token.
const AuthenticationTokenTTL = 30 * 24 * time.Hour

// AuthenticationToken is the credential a calling client presents. It
// is valid only while unexpired and only for the user it was issued to.
type AuthenticationToken struct {
	ID        AuthenticationTokenID
	UserID    UserID
	Secret    LongSecret
	CreatedAt time.Time
	ExpiresAt time.Time
	IP        string
	UserAgent string
}

// UserAccount holds the ordered authentication tokens of one user.
type UserAccount struct {
	ID     UserID
	Tokens []AuthenticationToken
}

// ToAuthenticationTokenCreated appends a token with a fresh id and
// secret. The certificate must prove a passed create-auth-token
// challenge for this user; the challenge email does not constrain the
// token, it only proved reachability.
func (a UserAccount) ToAuthenticationTokenCreated(ip, userAgent string, passed EmailVerificationPassedCertificate, rnd Random, now time.Time) (UserAccount, AuthenticationToken, error) {
	if passed.UserID() != a.ID || passed.Purpose() != PurposeCreateAuthToken {
		return a, AuthenticationToken{}, apperr.CertificateMismatch("email verification certificate does not authorize token creation for this user")
	}
	id, err := newID(rnd)
	if err != nil {
		return a, AuthenticationToken{}, err
	}
	secret, err := newLongSecret(rnd)
	if err != nil {
		return a, AuthenticationToken{}, err
	}
	token := AuthenticationToken{
		ID:        AuthenticationTokenID(id),
		UserID:    a.ID,
		Secret:    secret,
		CreatedAt: now,
		ExpiresAt: now.Add(AuthenticationTokenTTL),
		IP:        ip,
		UserAgent: userAgent,
	}
	next := a
	next.Tokens = append(append([]AuthenticationToken(nil), a.Tokens...), token)
	return next, token, nil
}

// ToAuthenticationTokenDeleted removes the token with the given id.
// Removing an absent id succeeds, so a double logout is harmless.
func (a UserAccount) ToAuthenticationTokenDeleted(id AuthenticationTokenID, myself MyselfCertificate) (UserAccount, error) {
	if myself.UserID() != a.ID {
		return a, apperr.CertificateMismatch("myself certificate covers another user")
	}
	kept := make([]AuthenticationToken, 0, len(a.Tokens))
	for _, t := range a.Tokens {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	next := a
	next.Tokens = kept
	return next, nil
}

// ToAllAuthenticationTokensDeleted drops every token, ending all
// sessions of the user at once.
func (a UserAccount) ToAllAuthenticationTokensDeleted(myself MyselfCertificate) (UserAccount, error) {
	if myself.UserID() != a.ID {
		return a, apperr.CertificateMismatch("myself certificate covers another user")
	}
	next := a
	next.Tokens = nil
	return next, nil
}
