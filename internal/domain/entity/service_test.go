package entity

import (
	"context"
	"testing"
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestIssueMyselfCertificate(t *testing.T) {
	ctx := context.Background()
	secret := LongSecret("0000000000000000000000000000000000000000000000000000000000000001")
	token := AuthenticationToken{
		ID:        "token00000000001",
		UserID:    alice,
		Secret:    secret,
		CreatedAt: testNow,
		ExpiresAt: testNow.Add(AuthenticationTokenTTL),
	}
	tokens := tokenGetterFunc(func(_ context.Context, s LongSecret) (AuthenticationToken, error) {
		if s == secret {
			return token, nil
		}
		return AuthenticationToken{}, apperr.NotFoundOnRepository("")
	})

	cert, err := IssueMyselfCertificate(ctx, alice, secret, tokens, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cert.UserID() != alice {
		t.Fatalf("certificate covers %q", cert.UserID())
	}

	// Unknown secret.
	_, err = IssueMyselfCertificate(ctx, alice, "0000000000000000000000000000000000000000000000000000000000000002", tokens, testNow)
	if !apperr.IsCode(err, apperr.CodeIllegalAuthenticationToken) {
		t.Fatalf("expected illegal_authentication_token, got %v", err)
	}

	// Right secret, wrong claimed user.
	_, err = IssueMyselfCertificate(ctx, bob, secret, tokens, testNow)
	if !apperr.IsCode(err, apperr.CodeIllegalAuthenticationToken) {
		t.Fatalf("expected illegal_authentication_token, got %v", err)
	}

	// Expired token.
	_, err = IssueMyselfCertificate(ctx, alice, secret, tokens, testNow.Add(AuthenticationTokenTTL+time.Second))
	if !apperr.IsCode(err, apperr.CodeIllegalAuthenticationToken) {
		t.Fatalf("expected illegal_authentication_token, got %v", err)
	}
}

func TestIssueMyselfCertificate_PropagatesDao(t *testing.T) {
	tokens := tokenGetterFunc(func(context.Context, LongSecret) (AuthenticationToken, error) {
		return AuthenticationToken{}, apperr.Dao(context.DeadlineExceeded)
	})
	_, err := IssueMyselfCertificate(context.Background(), alice, "0000000000000000000000000000000000000000000000000000000000000001", tokens, testNow)
	if !apperr.IsCode(err, apperr.CodeDao) {
		t.Fatalf("expected dao error to propagate, got %v", err)
	}
}

func TestIssueBelongsToNoGroupCertificate(t *testing.T) {
	ctx := context.Background()

	free := memberGetterFunc(func(context.Context, UserID) ([]Member, error) { return nil, nil })
	cert, err := IssueBelongsToNoGroupCertificate(ctx, alice, free)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cert.UserID() != alice {
		t.Fatalf("certificate covers %q", cert.UserID())
	}

	bound := memberGetterFunc(func(context.Context, UserID) ([]Member, error) {
		return []Member{{GroupID: "group00000000000", UserID: alice, Role: RoleDefault}}, nil
	})
	_, err = IssueBelongsToNoGroupCertificate(ctx, alice, bound)
	if !apperr.IsCode(err, apperr.CodeStillBelongsToOneOrMoreGroups) {
		t.Fatalf("expected still_belongs_to_one_or_more_groups, got %v", err)
	}
}

type tokenGetterFunc func(context.Context, LongSecret) (AuthenticationToken, error)

func (f tokenGetterFunc) GetTokenBySecret(ctx context.Context, s LongSecret) (AuthenticationToken, error) {
	return f(ctx, s)
}

type memberGetterFunc func(context.Context, UserID) ([]Member, error)

func (f memberGetterFunc) GetMembersByUserID(ctx context.Context, u UserID) ([]Member, error) {
	return f(ctx, u)
}
