package entity

import (
	"testing"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestCreateGroup_SeedsTheWholeFamily(t *testing.T) {
	group, members, permissions, profile, err := CreateGroup(
		"climbers", "Climbers", validProfile(alice), myselfOf(alice), noGroupOf(alice), &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if members.ID != group.ID || permissions.ID != group.ID || profile.ID != group.ID {
		t.Fatalf("family does not share one group id")
	}
	if len(members.Members) != 1 {
		t.Fatalf("expected exactly one seed member, got %d", len(members.Members))
	}
	if m := members.Members[0]; m.UserID != alice || m.Role != RoleAdmin {
		t.Fatalf("creator must be the sole admin, got %+v", m)
	}
	if permissions.RoleInInstance != InstanceRoleDefault {
		t.Fatalf("seed instance role %q, want default", permissions.RoleInInstance)
	}
	if len(permissions.AllowedToModify) != 0 {
		t.Fatalf("seed allow-list must be empty")
	}
	if !IsWellFormedShortSecret(string(members.InvitationSecret)) {
		t.Fatalf("invitation secret malformed: %q", members.InvitationSecret)
	}
}

func TestCreateGroup_RequiresValidProfile(t *testing.T) {
	_, _, _, _, err := CreateGroup(
		"climbers", "Climbers", expiredProfile(alice), myselfOf(alice), noGroupOf(alice), &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeUserProfileExpired) {
		t.Fatalf("expected user_profile_expired, got %v", err)
	}
}

func TestCreateGroup_RejectsForeignNoGroupCertificate(t *testing.T) {
	_, _, _, _, err := CreateGroup(
		"climbers", "Climbers", validProfile(alice), myselfOf(alice), noGroupOf(bob), &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}

func TestCreateDeleteRequest_OrderAndGate(t *testing.T) {
	group := Group{ID: "group00000000000", CreatedAt: testNow}
	members := twoMemberDirectory()

	_, err := group.CreateDeleteRequest(members, myselfOf(bob))
	if !apperr.IsCode(err, apperr.CodeNotGroupMember) {
		t.Fatalf("expected not_group_member for non-admin, got %v", err)
	}

	batch, err := group.CreateDeleteRequest(members, myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []AggregateKind{
		KindItem,
		KindGroupMemberDirectory,
		KindGroupPermissionDirectory,
		KindGroupProfile,
		KindGroup,
	}
	if len(batch) != len(wantKinds) {
		t.Fatalf("batch length %d, want %d", len(batch), len(wantKinds))
	}
	for i, want := range wantKinds {
		if batch[i].Kind != want {
			t.Fatalf("batch[%d] kind %q, want %q", i, batch[i].Kind, want)
		}
	}
	if batch[0].CreatedBy != group.ID || batch[0].ID != "" {
		t.Fatalf("item deletion must select by creating group: %+v", batch[0])
	}
	if batch[4].ID != string(group.ID) {
		t.Fatalf("group deletion targets %q", batch[4].ID)
	}
}

func TestGroupProfileToBodySet(t *testing.T) {
	members := twoMemberDirectory()
	profile := GroupProfile{ID: members.ID, Name: "old", DisplayName: "Old"}

	_, err := profile.ToBodySet("new", "New", members, myselfOf(bob))
	if !apperr.IsCode(err, apperr.CodeNotGroupAdmin) {
		t.Fatalf("expected not_group_admin, got %v", err)
	}

	next, err := profile.ToBodySet("new", "New", members, myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Name != "new" || next.DisplayName != "New" {
		t.Fatalf("body not set: %+v", next)
	}
}

func TestGroupPermissionToBodySet_RequiresInstanceAdminMembership(t *testing.T) {
	adminGroup := GroupID("admins0000000000")
	adminPermissions := GroupPermissionDirectory{ID: adminGroup, RoleInInstance: InstanceRoleAdmin}
	adminMembers := GroupMemberDirectory{
		ID:               adminGroup,
		InvitationSecret: "root00",
		Members:          []Member{{GroupID: adminGroup, UserID: alice, Role: RoleAdmin}},
	}
	target := GroupPermissionDirectory{ID: "group00000000000", RoleInInstance: InstanceRoleDefault}

	_, err := target.ToBodySet(InstanceRoleModerator, nil, adminPermissions, adminMembers, myselfOf(bob))
	if !apperr.IsCode(err, apperr.CodeNotGroupMember) {
		t.Fatalf("expected not_group_member, got %v", err)
	}

	// A non-admin-scoped permission directory cannot stand in.
	fakePermissions := GroupPermissionDirectory{ID: adminGroup, RoleInInstance: InstanceRoleDefault}
	_, err = target.ToBodySet(InstanceRoleModerator, nil, fakePermissions, adminMembers, myselfOf(alice))
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}

	allowed := []TemplateID{"template00000001"}
	next, err := target.ToBodySet(InstanceRoleModerator, allowed, adminPermissions, adminMembers, myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.RoleInInstance != InstanceRoleModerator || len(next.AllowedToModify) != 1 {
		t.Fatalf("body not set: %+v", next)
	}
}
