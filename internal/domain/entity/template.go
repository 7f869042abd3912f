package entity

import (
	"time"
)

// Template describes one content kind: its names and the structural
// schema item properties must satisfy. Schema changes never invalidate
// items retroactively; the schema is only consulted when an item is
// created or edited.
type Template struct {
	ID               TemplateID
	NameInSingular   Name
	NameInPlural     Name
	DisplayName      DisplayName
	PropertiesSchema map[string]any
	CreatedAt        time.Time
}

// CreateTemplate mints a template. Instance-admin group members only,
// proven the same way as permission management.
func CreateTemplate(singular, plural Name, displayName DisplayName, propertiesSchema map[string]any, adminPermissions GroupPermissionDirectory, adminMembers GroupMemberDirectory, myself MyselfCertificate, rnd Random, now time.Time) (Template, error) {
	if err := requireInstanceAdmin(adminPermissions, adminMembers, myself); err != nil {
		return Template{}, err
	}
	id, err := newID(rnd)
	if err != nil {
		return Template{}, err
	}
	return Template{
		ID:               TemplateID(id),
		NameInSingular:   singular,
		NameInPlural:     plural,
		DisplayName:      displayName,
		PropertiesSchema: propertiesSchema,
		CreatedAt:        now,
	}, nil
}

// ToBodySet replaces names, display name and schema. Instance-admin
// group members only.
func (t Template) ToBodySet(singular, plural Name, displayName DisplayName, propertiesSchema map[string]any, adminPermissions GroupPermissionDirectory, adminMembers GroupMemberDirectory, myself MyselfCertificate) (Template, error) {
	if err := requireInstanceAdmin(adminPermissions, adminMembers, myself); err != nil {
		return t, err
	}
	next := t
	next.NameInSingular = singular
	next.NameInPlural = plural
	next.DisplayName = displayName
	next.PropertiesSchema = propertiesSchema
	return next, nil
}
