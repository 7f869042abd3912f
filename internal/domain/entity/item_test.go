package entity

import (
	"testing"
	"time"

	"github.com/communehq/commune/internal/domain/apperr"
	"github.com/communehq/commune/pkg/schema"
)

func contentFixture() (Template, GroupMemberDirectory, GroupPermissionDirectory) {
	template := Template{
		ID:             "template00000001",
		NameInSingular: "recipe",
		NameInPlural:   "recipes",
		DisplayName:    "Recipes",
		PropertiesSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"color": map[string]any{"type": "string"},
			},
			"required": []any{"color"},
		},
		CreatedAt: testNow,
	}
	members := twoMemberDirectory()
	permissions := GroupPermissionDirectory{
		ID:              members.ID,
		RoleInInstance:  InstanceRoleDefault,
		AllowedToModify: []TemplateID{template.ID},
	}
	return template, members, permissions
}

func TestCreateItem_SchemaGate(t *testing.T) {
	template, members, permissions := contentFixture()
	v := schema.New()

	item, err := CreateItem("Red Thing", template, map[string]any{"color": "red"},
		validProfile(bob), members, permissions, myselfOf(bob), v, &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.TitleForURL != "red thing" {
		t.Fatalf("title for url %q", item.TitleForURL)
	}
	if item.CreatedBy != members.ID || item.Template != template.ID {
		t.Fatalf("wrong provenance: %+v", item)
	}
	if !item.CreatedAt.Equal(testNow) || !item.UpdatedAt.Equal(testNow) {
		t.Fatalf("timestamps not seeded from now")
	}

	_, err = CreateItem("Bad Thing", template, map[string]any{"color": 5},
		validProfile(bob), members, permissions, myselfOf(bob), v, &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeIllegalProperties) {
		t.Fatalf("expected illegal_properties, got %v", err)
	}
}

func TestCreateItem_GateOrder(t *testing.T) {
	template, members, permissions := contentFixture()

	// Profile validity is checked first.
	_, err := CreateItem("T", template, nil,
		expiredProfile(bob), members, permissions, myselfOf(bob), alwaysInvalid{}, &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeUserProfileExpired) {
		t.Fatalf("expected user_profile_expired, got %v", err)
	}

	// Then membership.
	_, err = CreateItem("T", template, nil,
		validProfile(carol), members, permissions, myselfOf(carol), alwaysInvalid{}, &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeNotGroupMember) {
		t.Fatalf("expected not_group_member, got %v", err)
	}

	// Then the template allow-list.
	narrow := permissions
	narrow.AllowedToModify = nil
	_, err = CreateItem("T", template, nil,
		validProfile(bob), members, narrow, myselfOf(bob), alwaysInvalid{}, &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeNotAllowedToModify) {
		t.Fatalf("expected not_allowed_to_modify, got %v", err)
	}

	// The schema predicate runs last.
	_, err = CreateItem("T", template, nil,
		validProfile(bob), members, permissions, myselfOf(bob), alwaysInvalid{}, &seqRandom{}, testNow)
	if !apperr.IsCode(err, apperr.CodeIllegalProperties) {
		t.Fatalf("expected illegal_properties, got %v", err)
	}
}

// Create followed by an edit with the same properties must pass the
// schema check again: validation is stable over unchanged data.
func TestItemCreateThenBodySetRoundTrip(t *testing.T) {
	template, members, permissions := contentFixture()
	v := schema.New()
	properties := map[string]any{"color": "red"}

	item, err := CreateItem("Red Thing", template, properties,
		validProfile(bob), members, permissions, myselfOf(bob), v, &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	later := testNow.Add(time.Hour)
	next, err := item.ToBodySet("RED THING", properties,
		validProfile(bob), members, permissions, template, myselfOf(bob), v, later)
	if err != nil {
		t.Fatalf("edit with unchanged properties failed: %v", err)
	}
	if next.ID != item.ID || !next.CreatedAt.Equal(item.CreatedAt) {
		t.Fatalf("identity not preserved across edit")
	}
	if next.TitleForURL != "red thing" {
		t.Fatalf("title for url %q", next.TitleForURL)
	}
	if !next.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt not bumped")
	}
}

func TestItemToBodySet_RejectsForeignTemplate(t *testing.T) {
	template, members, permissions := contentFixture()
	item, err := CreateItem("T", template, map[string]any{"color": "red"},
		validProfile(bob), members, permissions, myselfOf(bob), alwaysValid{}, &seqRandom{}, testNow)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := template
	other.ID = "template00000002"
	_, err = item.ToBodySet("T", nil, validProfile(bob), members, permissions, other, myselfOf(bob), alwaysValid{}, testNow)
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}
