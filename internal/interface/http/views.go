package handlers

import (
	"time"

	"github.com/communehq/commune/internal/domain/entity"
)

// Wire views for aggregates. The entities carry no json tags on
// purpose; the shapes handed to clients are decided here.

type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func userView(u entity.User) UserView {
	return UserView{ID: string(u.ID), Email: string(u.Email), CreatedAt: u.CreatedAt}
}

type ProfileView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func profileView(p entity.UserProfile) ProfileView {
	return ProfileView{ID: string(p.ID), Name: string(p.Name), DisplayName: string(p.DisplayName), ExpiresAt: p.ExpiresAt}
}

type BookmarkView struct {
	ItemID string `json:"item_id"`
	Tag    string `json:"tag"`
}

func bookmarkViews(d entity.BookmarkDirectory) []BookmarkView {
	views := make([]BookmarkView, 0, len(d.Bookmarks))
	for _, b := range d.Bookmarks {
		views = append(views, BookmarkView{ItemID: string(b.ItemID), Tag: string(b.Tag)})
	}
	return views
}

type MemberView struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func memberViews(members []entity.Member) []MemberView {
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, MemberView{UserID: string(m.UserID), Role: string(m.Role)})
	}
	return views
}

type PermissionView struct {
	GroupID         string   `json:"group_id"`
	RoleInInstance  string   `json:"role_in_instance"`
	AllowedToModify []string `json:"allowed_to_modify"`
}

func permissionView(d entity.GroupPermissionDirectory) PermissionView {
	allowed := make([]string, 0, len(d.AllowedToModify))
	for _, t := range d.AllowedToModify {
		allowed = append(allowed, string(t))
	}
	return PermissionView{GroupID: string(d.ID), RoleInInstance: string(d.RoleInInstance), AllowedToModify: allowed}
}

type TemplateView struct {
	ID               string         `json:"id"`
	NameInSingular   string         `json:"name_in_singular"`
	NameInPlural     string         `json:"name_in_plural"`
	DisplayName      string         `json:"display_name"`
	PropertiesSchema map[string]any `json:"properties_schema"`
	CreatedAt        time.Time      `json:"created_at"`
}

func templateView(t entity.Template) TemplateView {
	return TemplateView{
		ID:               string(t.ID),
		NameInSingular:   string(t.NameInSingular),
		NameInPlural:     string(t.NameInPlural),
		DisplayName:      string(t.DisplayName),
		PropertiesSchema: t.PropertiesSchema,
		CreatedAt:        t.CreatedAt,
	}
}

func templateViews(ts []entity.Template) []TemplateView {
	views := make([]TemplateView, 0, len(ts))
	for _, t := range ts {
		views = append(views, templateView(t))
	}
	return views
}

type ItemView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	TitleForURL string         `json:"title_for_url"`
	Template    string         `json:"template"`
	CreatedBy   string         `json:"created_by"`
	Properties  map[string]any `json:"properties"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func itemView(i entity.Item) ItemView {
	return ItemView{
		ID:          string(i.ID),
		Title:       string(i.Title),
		TitleForURL: i.TitleForURL,
		Template:    string(i.Template),
		CreatedBy:   string(i.CreatedBy),
		Properties:  i.Properties,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func itemViews(items []entity.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, i := range items {
		views = append(views, itemView(i))
	}
	return views
}

func entityPurpose(s string) entity.Purpose {
	switch s {
	case "create-profile":
		return entity.PurposeCreateProfile
	default:
		return entity.PurposeCreateAuthToken
	}
}
