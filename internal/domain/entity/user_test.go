package entity

import (
	"testing"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestCreateUser_SeedsEmptyDirectories(t *testing.T) {
	user, account, verifications, bookmarks, err := CreateUser("alice@example.com", &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != user.ID || verifications.ID != user.ID || bookmarks.ID != user.ID {
		t.Fatalf("directories do not share the user id")
	}
	if len(account.Tokens) != 0 || len(verifications.Challenges) != 0 || len(bookmarks.Bookmarks) != 0 {
		t.Fatalf("seed directories must be empty")
	}
	if !IsWellFormedID(string(user.ID)) {
		t.Fatalf("malformed user id %q", user.ID)
	}
}

func TestToEmailSet_CertificateMustCoverTheNewEmail(t *testing.T) {
	user := User{ID: alice, Email: "old@example.com", CreatedAt: testNow}

	next, err := user.ToEmailSet("new@example.com", myselfOf(alice),
		passedOf(alice, "new@example.com", PurposeSetEmail))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Email != "new@example.com" {
		t.Fatalf("email not set")
	}

	// Certificate for a different address.
	_, err = user.ToEmailSet("new@example.com", myselfOf(alice),
		passedOf(alice, "other@example.com", PurposeSetEmail))
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}

	// Certificate for a different purpose.
	_, err = user.ToEmailSet("new@example.com", myselfOf(alice),
		passedOf(alice, "new@example.com", PurposeCreateAuthToken))
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestToAuthenticationTokenCreated(t *testing.T) {
	account := UserAccount{ID: alice}
	passed := passedOf(alice, "alice@example.com", PurposeCreateAuthToken)

	next, token, err := account.ToAuthenticationTokenCreated("198.51.100.7", "test-agent", passed, &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Tokens) != 1 {
		t.Fatalf("token not appended")
	}
	if token.UserID != alice || token.IP != "198.51.100.7" || token.UserAgent != "test-agent" {
		t.Fatalf("unexpected token: %+v", token)
	}
	if got, want := token.ExpiresAt, testNow.Add(AuthenticationTokenTTL); !got.Equal(want) {
		t.Fatalf("expiry %v, want %v", got, want)
	}
	if !IsWellFormedLongSecret(string(token.Secret)) {
		t.Fatalf("malformed token secret")
	}

	wrongPurpose := passedOf(alice, "alice@example.com", PurposeSetEmail)
	_, _, err = account.ToAuthenticationTokenCreated("", "", wrongPurpose, &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestToAuthenticationTokenDeleted_Idempotent(t *testing.T) {
	account := UserAccount{ID: alice}
	passed := passedOf(alice, "alice@example.com", PurposeCreateAuthToken)
	account, token, _ := account.ToAuthenticationTokenCreated("", "", passed, &seqRandom{}, testNow)

	next, err := account.ToAuthenticationTokenDeleted(token.ID, myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Tokens) != 0 {
		t.Fatalf("token not removed")
	}

	// Deleting again is a no-op, not an error.
	again, err := next.ToAuthenticationTokenDeleted(token.ID, myselfOf(alice))
	if err != nil || len(again.Tokens) != 0 {
		t.Fatalf("second delete should be a silent no-op, got %v", err)
	}

	_, err = account.ToAuthenticationTokenDeleted(token.ID, myselfOf(bob))
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestToAllAuthenticationTokensDeleted(t *testing.T) {
	account := UserAccount{ID: alice}
	passed := passedOf(alice, "alice@example.com", PurposeCreateAuthToken)
	account, _, _ = account.ToAuthenticationTokenCreated("", "a", passed, &seqRandom{}, testNow)
	account, _, _ = account.ToAuthenticationTokenCreated("", "b", passed, &seqRandom{}, testNow)

	next, err := account.ToAllAuthenticationTokensDeleted(myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Tokens) != 0 {
		t.Fatalf("tokens remain after logout-everywhere")
	}
}
