package entity

import (
	"testing"
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestToChallengeCreatedFromUser(t *testing.T) {
	user := User{ID: alice, Email: "alice@example.com", CreatedAt: testNow}
	d := EmailVerificationDirectory{ID: alice}

	next, challenge, err := d.ToChallengeCreatedFromUser(user, PurposeCreateAuthToken, &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Challenges) != 1 {
		t.Fatalf("expected 1 challenge, got %d", len(next.Challenges))
	}
	if challenge.Email != user.Email || challenge.Purpose != PurposeCreateAuthToken || challenge.UserID != alice {
		t.Fatalf("unexpected challenge scope: %+v", challenge)
	}
	if got, want := challenge.ExpiresAt, testNow.Add(EmailVerificationChallengeTTL); !got.Equal(want) {
		t.Fatalf("expiry %v, want %v", got, want)
	}

	// A directory belonging to someone else rejects the user aggregate.
	other := EmailVerificationDirectory{ID: bob}
	if _, _, err := other.ToChallengeCreatedFromUser(user, PurposeCreateAuthToken, &seqRandom{}, testNow); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestToAnswerCreated_IssuesScopedCertificate(t *testing.T) {
	d := EmailVerificationDirectory{ID: alice}
	d, challenge, err := d.ToChallengeCreatedFromCustomEmail("new@example.com", PurposeSetEmail, &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, cert, err := d.ToAnswerCreated(challenge.ID, challenge.Secret, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cert.UserID() != alice || cert.Email() != "new@example.com" || cert.Purpose() != PurposeSetEmail {
		t.Fatalf("certificate carries wrong scope: %v %v %v", cert.UserID(), cert.Email(), cert.Purpose())
	}
	if len(next.Challenges) != 0 {
		t.Fatalf("challenge not consumed")
	}
}

func TestToAnswerCreated_SingleUse(t *testing.T) {
	d := EmailVerificationDirectory{ID: alice}
	d, challenge, _ := d.ToChallengeCreatedFromCustomEmail("a@example.com", PurposeCreateProfile, &seqRandom{}, testNow)

	next, _, err := d.ToAnswerCreated(challenge.ID, challenge.Secret, testNow)
	if err != nil {
		t.Fatalf("first answer failed: %v", err)
	}
	_, _, err = next.ToAnswerCreated(challenge.ID, challenge.Secret, testNow)
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected not_found on second answer, got %v", err)
	}
}

func TestToAnswerCreated_WrongAnswerKeepsChallenge(t *testing.T) {
	d := EmailVerificationDirectory{ID: alice}
	d, challenge, _ := d.ToChallengeCreatedFromCustomEmail("a@example.com", PurposeCreateProfile, &seqRandom{}, testNow)

	next, _, err := d.ToAnswerCreated(challenge.ID, "XXXXXX", testNow)
	if !apperr.IsCode(err, apperr.CodeEmailVerificationFailed) {
		t.Fatalf("expected email_verification_failed, got %v", err)
	}
	if len(next.Challenges) != 1 {
		t.Fatalf("wrong answer must not consume the challenge")
	}
}

func TestToAnswerCreated_ExpiredChallenge(t *testing.T) {
	d := EmailVerificationDirectory{ID: alice}
	d, challenge, _ := d.ToChallengeCreatedFromCustomEmail("a@example.com", PurposeSetEmail, &seqRandom{}, testNow)

	late := testNow.Add(EmailVerificationChallengeTTL + time.Second)
	_, _, err := d.ToAnswerCreated(challenge.ID, challenge.Secret, late)
	if !apperr.IsCode(err, apperr.CodeEmailVerificationFailed) {
		t.Fatalf("expected email_verification_failed on expired challenge, got %v", err)
	}
}
