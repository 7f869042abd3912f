package entity

import (
	"github.com/communehq/commune/internal/domain/apperr"
)

// InstanceRole is the group's standing within the whole platform, not
// within itself. Exactly one group carries the admin role and gates
// template and permission management.
type InstanceRole string

const (
	InstanceRoleAdmin     InstanceRole = "admin"
	InstanceRoleModerator InstanceRole = "moderator"
	InstanceRoleDefault   InstanceRole = "default"
)

// GroupPermissionDirectory records what the group may do: its instance
// role and the templates it may instantiate or edit.
type GroupPermissionDirectory struct {
	ID              GroupID
	RoleInInstance  InstanceRole
	AllowedToModify []TemplateID
}

// AllowsModify reports whether the group may touch items of the
// template.
func (d GroupPermissionDirectory) AllowsModify(templateID TemplateID) bool {
	for _, t := range d.AllowedToModify {
		if t == templateID {
			return true
		}
	}
	return false
}

// ToBodySet replaces role and allow-list. Only members of the
// platform's instance-admin group may do this; the caller proves it by
// passing that group's permission directory (which must itself carry
// the admin role) together with its member directory.
func (d GroupPermissionDirectory) ToBodySet(role InstanceRole, allowedToModify []TemplateID, adminPermissions GroupPermissionDirectory, adminMembers GroupMemberDirectory, myself MyselfCertificate) (GroupPermissionDirectory, error) {
	if err := requireInstanceAdmin(adminPermissions, adminMembers, myself); err != nil {
		return d, err
	}
	next := d
	next.RoleInInstance = role
	next.AllowedToModify = append([]TemplateID(nil), allowedToModify...)
	return next, nil
}

// requireInstanceAdmin is the shared gate for template and permission
// management: the presented pair of directories must describe the
// instance-admin group, and the caller must be one of its members.
func requireInstanceAdmin(adminPermissions GroupPermissionDirectory, adminMembers GroupMemberDirectory, myself MyselfCertificate) error {
	if adminPermissions.RoleInInstance != InstanceRoleAdmin {
		return apperr.CertificateMismatch("presented permission directory is not the instance-admin group's")
	}
	if adminPermissions.ID != adminMembers.ID {
		return apperr.CertificateMismatch("permission and member directories describe different groups")
	}
	if !adminMembers.IsMember(myself.UserID()) {
		return apperr.NotGroupMember("the user is not a member of the instance-admin group")
	}
	return nil
}
