package entity

import (
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// Role of a member within its group.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDefault Role = "default"
)

// Member is one (group, user) membership with a role. The pair is
// unique within a directory.
type Member struct {
	GroupID GroupID
	UserID  UserID
	Role    Role
}

// GroupMemberDirectory holds the members of one group plus the
// rotatable invitation secret required to join it.
type GroupMemberDirectory struct {
	ID               GroupID
	InvitationSecret ShortSecret
	Members          []Member
}

// IsMember reports whether userID belongs to the group.
func (d GroupMemberDirectory) IsMember(userID UserID) bool {
	for _, m := range d.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether userID is an admin member.
func (d GroupMemberDirectory) IsAdmin(userID UserID) bool {
	for _, m := range d.Members {
		if m.UserID == userID && m.Role == RoleAdmin {
			return true
		}
	}
	return false
}

func (d GroupMemberDirectory) adminCount() int {
	n := 0
	for _, m := range d.Members {
		if m.Role == RoleAdmin {
			n++
		}
	}
	return n
}

// ToInvitationSecretResetRequestCreated rotates the invitation secret,
// invalidating every outstanding invite. Admins only.
func (d GroupMemberDirectory) ToInvitationSecretResetRequestCreated(myself MyselfCertificate, rnd Random) (GroupMemberDirectory, error) {
	if !d.IsAdmin(myself.UserID()) {
		return d, apperr.NotGroupAdmin("")
	}
	secret, err := newShortSecret(rnd)
	if err != nil {
		return d, err
	}
	next := d
	next.InvitationSecret = secret
	return next, nil
}

// ToMemberAdded joins the certificate's user as a default-role member.
// The profile must be the joining user's own and still valid, checked
// before the invitation secret. Joining a group the user already
// belongs to leaves the directory unchanged, which keeps the
// (group, user) pair unique.
func (d GroupMemberDirectory) ToMemberAdded(answer ShortSecret, profile UserProfile, myself MyselfCertificate, now time.Time) (GroupMemberDirectory, error) {
	if profile.ID != myself.UserID() {
		return d, apperr.CertificateMismatch("user profile belongs to another user")
	}
	if !profile.IsValidAt(now) {
		return d, apperr.UserProfileExpired("")
	}
	if answer != d.InvitationSecret {
		return d, apperr.WrongInvitationSecret("")
	}
	if d.IsMember(myself.UserID()) {
		return d, nil
	}
	next := d
	next.Members = append(append([]Member(nil), d.Members...), Member{
		GroupID: d.ID,
		UserID:  myself.UserID(),
		Role:    RoleDefault,
	})
	return next, nil
}

// ToMemberRemovedByMyself removes the caller's own membership. If that
// would leave the group without an admin the whole removal is rejected
// and the directory is returned unchanged.
func (d GroupMemberDirectory) ToMemberRemovedByMyself(userID UserID, myself MyselfCertificate) (GroupMemberDirectory, error) {
	if myself.UserID() != userID {
		return d, apperr.CertificateMismatch("myself certificate covers another user")
	}
	next := d
	next.Members = membersWithout(d.Members, userID)
	if next.adminCount() == 0 {
		return d, apperr.InsufficientAdmins("")
	}
	return next, nil
}

// ToMemberRemovedByAdmin removes an arbitrary member on an admin's
// authority. Unlike the self-removal path this does not re-check the
// minimum-admin rule, so an admin can remove the last admin (including
// themselves); callers deciding policy should be aware of the
// asymmetry.
func (d GroupMemberDirectory) ToMemberRemovedByAdmin(userID UserID, myself MyselfCertificate) (GroupMemberDirectory, error) {
	if !d.IsAdmin(myself.UserID()) {
		return d, apperr.NotGroupAdmin("")
	}
	next := d
	next.Members = membersWithout(d.Members, userID)
	return next, nil
}

func membersWithout(members []Member, userID UserID) []Member {
	kept := make([]Member, 0, len(members))
	for _, m := range members {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	return kept
}
