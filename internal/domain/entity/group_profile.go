package entity

import (
	"github.com/communehq/commune/internal/domain/apperr"
)

// GroupProfile carries the group's public identity: a slug and a
// display name.
type GroupProfile struct {
	ID          GroupID
	Name        Name
	DisplayName DisplayName
}

// ToBodySet replaces name and display name. Admins of the group only;
// the member directory passed in must be this group's own.
func (p GroupProfile) ToBodySet(name Name, displayName DisplayName, members GroupMemberDirectory, myself MyselfCertificate) (GroupProfile, error) {
	if members.ID != p.ID {
		return p, apperr.CertificateMismatch("member directory describes another group")
	}
	if !members.IsAdmin(myself.UserID()) {
		return p, apperr.NotGroupAdmin("")
	}
	next := p
	next.Name = name
	next.DisplayName = displayName
	return next, nil
}
