package entity

import (
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// Group is the root of the per-group aggregate family. Like User, it
// owns its directories by id correlation and they are always created
// together.
type Group struct {
	ID        GroupID
	CreatedAt time.Time
}

// CreateGroup produces the group plus its seed directories under one
// fresh group id: the creator as sole admin, a default instance role
// with an empty allow-list, and the profile. The creator must hold a
// valid profile and prove they belong to no group yet.
func CreateGroup(name Name, displayName DisplayName, profile UserProfile, myself MyselfCertificate, noGroup BelongsToNoGroupCertificate, rnd Random, now time.Time) (Group, GroupMemberDirectory, GroupPermissionDirectory, GroupProfile, error) {
	fail := func(err error) (Group, GroupMemberDirectory, GroupPermissionDirectory, GroupProfile, error) {
		return Group{}, GroupMemberDirectory{}, GroupPermissionDirectory{}, GroupProfile{}, err
	}
	if profile.ID != myself.UserID() {
		return fail(apperr.CertificateMismatch("user profile belongs to another user"))
	}
	if noGroup.UserID() != myself.UserID() {
		return fail(apperr.CertificateMismatch("belongs-to-no-group certificate covers another user"))
	}
	if !profile.IsValidAt(now) {
		return fail(apperr.UserProfileExpired(""))
	}
	id, err := newID(rnd)
	if err != nil {
		return fail(err)
	}
	invitation, err := newShortSecret(rnd)
	if err != nil {
		return fail(err)
	}
	groupID := GroupID(id)
	group := Group{ID: groupID, CreatedAt: now}
	members := GroupMemberDirectory{
		ID:               groupID,
		InvitationSecret: invitation,
		Members: []Member{{
			GroupID: groupID,
			UserID:  myself.UserID(),
			Role:    RoleAdmin,
		}},
	}
	permissions := GroupPermissionDirectory{
		ID:             groupID,
		RoleInInstance: InstanceRoleDefault,
	}
	groupProfile := GroupProfile{
		ID:          groupID,
		Name:        name,
		DisplayName: displayName,
	}
	return group, members, permissions, groupProfile, nil
}

// CreateDeleteRequest plans the teardown of the whole group family:
// first the items the group created, then its directories, finally the
// group itself. The caller executes the batch, ideally in one
// transaction.
func (g Group) CreateDeleteRequest(members GroupMemberDirectory, myself MyselfCertificate) (DeletionBatch, error) {
	if members.ID != g.ID {
		return nil, apperr.CertificateMismatch("member directory describes another group")
	}
	if !members.IsAdmin(myself.UserID()) {
		return nil, apperr.NotGroupMember("only an admin member may delete the group")
	}
	return DeletionBatch{
		{Kind: KindItem, CreatedBy: g.ID},
		{Kind: KindGroupMemberDirectory, ID: string(g.ID)},
		{Kind: KindGroupPermissionDirectory, ID: string(g.ID)},
		{Kind: KindGroupProfile, ID: string(g.ID)},
		{Kind: KindGroup, ID: string(g.ID)},
	}, nil
}
