package application

import (
	"context"
	"time"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

// Credential is what the session middleware extracted from the cookie.
// It is a claim, not a proof; CertIssuer turns it into certificates by
// checking it against storage.
type Credential struct {
	UserID      string
	TokenSecret string
}

// CertIssuer wires the domain's certificate services to the
// repositories they read from. Every service goes through it instead
// of trusting request data.
type CertIssuer struct {
	Accounts repo.UserAccountRepository
	Members  repo.GroupMemberDirectoryRepository
}

func (ci *CertIssuer) Myself(ctx context.Context, cred Credential) (entity.MyselfCertificate, error) {
	userID, err := entity.ParseUserID(cred.UserID)
	if err != nil {
		return entity.MyselfCertificate{}, err
	}
	secret, err := entity.ParseLongSecret(cred.TokenSecret)
	if err != nil {
		return entity.MyselfCertificate{}, err
	}
	return entity.IssueMyselfCertificate(ctx, userID, secret, ci.Accounts, time.Now())
}

func (ci *CertIssuer) BelongsToNoGroup(ctx context.Context, userID entity.UserID) (entity.BelongsToNoGroupCertificate, error) {
	return entity.IssueBelongsToNoGroupCertificate(ctx, userID, ci.Members)
}
