package entity

import (
	"context"
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// Certificate-issuing services. These are the only pieces of the domain
// that read from repositories; they take the narrowest interface that
// can answer the question and return a certificate or a typed failure.

// AuthenticationTokenBySecretGetter is the read contract
// IssueMyselfCertificate needs. Storage failures surface as Dao errors,
// a missing token as NotFoundOnRepository.
type AuthenticationTokenBySecretGetter interface {
	GetTokenBySecret(ctx context.Context, secret LongSecret) (AuthenticationToken, error)
}

// IssueMyselfCertificate verifies that secret identifies an unexpired
// authentication token owned by userID and, if so, issues the proof.
func IssueMyselfCertificate(ctx context.Context, userID UserID, secret LongSecret, tokens AuthenticationTokenBySecretGetter, now time.Time) (MyselfCertificate, error) {
	token, err := tokens.GetTokenBySecret(ctx, secret)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFoundOnRepository) {
			return MyselfCertificate{}, apperr.IllegalAuthenticationToken("no authentication token matches the presented secret")
		}
		return MyselfCertificate{}, err
	}
	if token.UserID != userID {
		return MyselfCertificate{}, apperr.IllegalAuthenticationToken("the authentication token belongs to another user")
	}
	if !now.Before(token.ExpiresAt) {
		return MyselfCertificate{}, apperr.IllegalAuthenticationToken("the authentication token has expired")
	}
	return MyselfCertificate{userID: userID}, nil
}

// MembersByUserGetter is the read contract
// IssueBelongsToNoGroupCertificate needs.
type MembersByUserGetter interface {
	GetMembersByUserID(ctx context.Context, userID UserID) ([]Member, error)
}

// IssueBelongsToNoGroupCertificate verifies that userID has no group
// membership at the time of the check.
func IssueBelongsToNoGroupCertificate(ctx context.Context, userID UserID, members MembersByUserGetter) (BelongsToNoGroupCertificate, error) {
	ms, err := members.GetMembersByUserID(ctx, userID)
	if err != nil {
		return BelongsToNoGroupCertificate{}, err
	}
	if len(ms) > 0 {
		return BelongsToNoGroupCertificate{}, apperr.StillBelongsToOneOrMoreGroups("")
	}
	return BelongsToNoGroupCertificate{userID: userID}, nil
}
