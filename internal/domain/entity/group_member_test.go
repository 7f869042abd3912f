package entity

import (
	"errors"
	"testing"

	"github.com/communehq/commune/internal/domain/apperr"
)

const (
	alice UserID = "alice00000000000"
	bob   UserID = "bob0000000000000"
	carol UserID = "carol00000000000"
)

func twoMemberDirectory() GroupMemberDirectory {
	return GroupMemberDirectory{
		ID:               "group00000000000",
		InvitationSecret: "secret",
		Members: []Member{
			{GroupID: "group00000000000", UserID: alice, Role: RoleAdmin},
			{GroupID: "group00000000000", UserID: bob, Role: RoleDefault},
		},
	}
}

func TestToMemberAdded_ChecksProfileBeforeSecret(t *testing.T) {
	d := twoMemberDirectory()

	// Expired profile wins even when the secret is also wrong.
	_, err := d.ToMemberAdded("wrong0", expiredProfile(carol), myselfOf(carol), testNow)
	if !apperr.IsCode(err, apperr.CodeUserProfileExpired) {
		t.Fatalf("expected user_profile_expired, got %v", err)
	}

	_, err = d.ToMemberAdded("wrong0", validProfile(carol), myselfOf(carol), testNow)
	if !apperr.IsCode(err, apperr.CodeWrongInvitationSecret) {
		t.Fatalf("expected wrong_invitation_secret, got %v", err)
	}
}

func TestToMemberAdded_AppendsDefaultMember(t *testing.T) {
	d := twoMemberDirectory()
	next, err := d.ToMemberAdded("secret", validProfile(carol), myselfOf(carol), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(next.Members))
	}
	added := next.Members[2]
	if added.UserID != carol || added.Role != RoleDefault || added.GroupID != d.ID {
		t.Fatalf("unexpected member appended: %+v", added)
	}
	if len(d.Members) != 2 {
		t.Fatalf("original snapshot mutated")
	}
}

func TestToMemberAdded_ExistingMemberIsUnchanged(t *testing.T) {
	d := twoMemberDirectory()
	next, err := d.ToMemberAdded("secret", validProfile(bob), myselfOf(bob), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Members) != 2 {
		t.Fatalf("duplicate membership created: %+v", next.Members)
	}
}

func TestToMemberAdded_RejectsForeignProfile(t *testing.T) {
	d := twoMemberDirectory()
	_, err := d.ToMemberAdded("secret", validProfile(alice), myselfOf(carol), testNow)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestToMemberRemovedByMyself_NeverLeavesZeroAdmins(t *testing.T) {
	d := twoMemberDirectory()
	_, err := d.ToMemberRemovedByMyself(alice, myselfOf(alice))
	if !apperr.IsCode(err, apperr.CodeInsufficientAdmins) {
		t.Fatalf("expected insufficient_admins, got %v", err)
	}
	// No partial removal survives.
	if len(d.Members) != 2 {
		t.Fatalf("original member set changed")
	}
}

func TestToMemberRemovedByMyself_NonAdminLeaves(t *testing.T) {
	d := twoMemberDirectory()
	next, err := d.ToMemberRemovedByMyself(bob, myselfOf(bob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Members) != 1 || next.Members[0].UserID != alice {
		t.Fatalf("unexpected member set: %+v", next.Members)
	}
}

func TestToMemberRemovedByMyself_RejectsRemovingSomeoneElse(t *testing.T) {
	d := twoMemberDirectory()
	_, err := d.ToMemberRemovedByMyself(bob, myselfOf(alice))
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestToMemberRemovedByAdmin_RequiresAdmin(t *testing.T) {
	d := twoMemberDirectory()
	_, err := d.ToMemberRemovedByAdmin(alice, myselfOf(bob))
	if !errors.Is(err, apperr.NotGroupAdmin("")) {
		t.Fatalf("expected not_group_admin, got %v", err)
	}
}

// The admin path intentionally skips the minimum-admin rule: removing
// the last admin succeeds here even though the self-removal path would
// refuse it.
func TestToMemberRemovedByAdmin_AllowsRemovingLastAdmin(t *testing.T) {
	d := twoMemberDirectory()
	next, err := d.ToMemberRemovedByAdmin(alice, myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.adminCount() != 0 {
		t.Fatalf("expected zero admins after admin-path removal")
	}
}

func TestToInvitationSecretResetRequestCreated(t *testing.T) {
	d := twoMemberDirectory()

	_, err := d.ToInvitationSecretResetRequestCreated(myselfOf(bob), &seqRandom{})
	if !apperr.IsCode(err, apperr.CodeNotGroupAdmin) {
		t.Fatalf("expected not_group_admin, got %v", err)
	}

	next, err := d.ToInvitationSecretResetRequestCreated(myselfOf(alice), &seqRandom{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.InvitationSecret == d.InvitationSecret {
		t.Fatalf("invitation secret not rotated")
	}
	if !IsWellFormedShortSecret(string(next.InvitationSecret)) {
		t.Fatalf("rotated secret malformed: %q", next.InvitationSecret)
	}
}

func TestToInvitationSecretReset_GenerationFailureIsDefect(t *testing.T) {
	d := twoMemberDirectory()
	_, err := d.ToInvitationSecretResetRequestCreated(myselfOf(alice), brokenRandom{})
	if !apperr.IsCode(err, apperr.CodeGeneration) {
		t.Fatalf("expected generation defect, got %v", err)
	}
}
