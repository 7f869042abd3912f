package entity

import (
	"strings"
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
)

// SchemaValidator is the opaque structural-validation predicate the
// domain calls for item properties. The schema shape is a restricted
// JSON-Schema subset; the domain never interprets it.
type SchemaValidator interface {
	Validate(value map[string]any, schema map[string]any) bool
}

// Item is one piece of content created by a group from a template. Its
// properties satisfied the template schema at the moment of creation or
// last edit.
type Item struct {
	ID          ItemID
	Title       Title
	TitleForURL string
	Template    TemplateID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   GroupID
	Properties  map[string]any
}

// CreateItem runs the four gates in order: valid profile, membership in
// the owning group, the group's permission over the template, then the
// schema predicate. On success the item gets a fresh id and
// createdAt == updatedAt == now.
func CreateItem(title Title, template Template, properties map[string]any, profile UserProfile, members GroupMemberDirectory, permissions GroupPermissionDirectory, myself MyselfCertificate, validator SchemaValidator, rnd Random, now time.Time) (Item, error) {
	if err := checkItemGates(template, properties, profile, members, permissions, myself, validator, now); err != nil {
		return Item{}, err
	}
	id, err := newID(rnd)
	if err != nil {
		return Item{}, err
	}
	return Item{
		ID:          ItemID(id),
		Title:       title,
		TitleForURL: titleForURL(title),
		Template:    template.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   members.ID,
		Properties:  copyProperties(properties),
	}, nil
}

// ToBodySet re-runs the same four gates against the item's current
// template, then replaces title and properties, recomputes the URL
// title and bumps updatedAt. Id and createdAt are preserved.
func (i Item) ToBodySet(title Title, properties map[string]any, profile UserProfile, members GroupMemberDirectory, permissions GroupPermissionDirectory, template Template, myself MyselfCertificate, validator SchemaValidator, now time.Time) (Item, error) {
	if template.ID != i.Template {
		return i, apperr.CertificateMismatch("presented template is not the item's template")
	}
	if members.ID != i.CreatedBy {
		return i, apperr.CertificateMismatch("member directory describes a group that did not create the item")
	}
	if err := checkItemGates(template, properties, profile, members, permissions, myself, validator, now); err != nil {
		return i, err
	}
	next := i
	next.Title = title
	next.TitleForURL = titleForURL(title)
	next.Properties = copyProperties(properties)
	next.UpdatedAt = now
	return next, nil
}

func checkItemGates(template Template, properties map[string]any, profile UserProfile, members GroupMemberDirectory, permissions GroupPermissionDirectory, myself MyselfCertificate, validator SchemaValidator, now time.Time) error {
	if profile.ID != myself.UserID() {
		return apperr.CertificateMismatch("user profile belongs to another user")
	}
	if members.ID != permissions.ID {
		return apperr.CertificateMismatch("member and permission directories describe different groups")
	}
	if !profile.IsValidAt(now) {
		return apperr.UserProfileExpired("")
	}
	if !members.IsMember(myself.UserID()) {
		return apperr.NotGroupMember("")
	}
	if !permissions.AllowsModify(template.ID) {
		return apperr.NotAllowedToModify("")
	}
	if !validator.Validate(properties, template.PropertiesSchema) {
		return apperr.IllegalProperties("")
	}
	return nil
}

func titleForURL(title Title) string { return strings.ToLower(string(title)) }

func copyProperties(properties map[string]any) map[string]any {
	out := make(map[string]any, len(properties))
	for k, v := range properties {
		out[k] = v
	}
	return out
}
