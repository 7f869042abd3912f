package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

// ContentService covers templates and items. Template management is
// instance-admin territory; item writes run the domain's gate chain
// (valid profile, membership, group permission, schema) and mirror the
// result into the search index.
type ContentService struct {
	Templates   repo.TemplateRepository
	Items       repo.ItemRepository
	Members     repo.GroupMemberDirectoryRepository
	Permissions repo.GroupPermissionDirectoryRepository
	UserProfs   repo.UserProfileRepository
	Certs       *CertIssuer
	Random      entity.Random
	Validator   entity.SchemaValidator
	Index       *ItemIndex
	Logger      *logrus.Logger
}

// CreateTemplate mints a template. Instance-admin group members only.
func (s *ContentService) CreateTemplate(ctx context.Context, cred Credential, rawSingular, rawPlural, rawDisplayName string, propertiesSchema map[string]any) (entity.Template, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.Template{}, err
	}
	singular, err := entity.ParseName(rawSingular)
	if err != nil {
		return entity.Template{}, err
	}
	plural, err := entity.ParseName(rawPlural)
	if err != nil {
		return entity.Template{}, err
	}
	displayName, err := entity.ParseDisplayName(rawDisplayName)
	if err != nil {
		return entity.Template{}, err
	}
	adminPermissions, adminMembers, err := s.instanceAdminDirectories(ctx)
	if err != nil {
		return entity.Template{}, err
	}
	template, err := entity.CreateTemplate(singular, plural, displayName, propertiesSchema, adminPermissions, adminMembers, myself, s.Random, time.Now())
	if err != nil {
		return entity.Template{}, err
	}
	if err := s.Templates.Save(ctx, template); err != nil {
		return entity.Template{}, err
	}
	s.Logger.WithFields(logrus.Fields{"template_id": template.ID}).Info("template created")
	return template, nil
}

// SetTemplate replaces a template's body. Existing items keep their
// properties; the new schema only applies to future writes.
func (s *ContentService) SetTemplate(ctx context.Context, cred Credential, rawTemplateID, rawSingular, rawPlural, rawDisplayName string, propertiesSchema map[string]any) (entity.Template, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.Template{}, err
	}
	templateID, err := entity.ParseTemplateID(rawTemplateID)
	if err != nil {
		return entity.Template{}, err
	}
	singular, err := entity.ParseName(rawSingular)
	if err != nil {
		return entity.Template{}, err
	}
	plural, err := entity.ParseName(rawPlural)
	if err != nil {
		return entity.Template{}, err
	}
	displayName, err := entity.ParseDisplayName(rawDisplayName)
	if err != nil {
		return entity.Template{}, err
	}
	adminPermissions, adminMembers, err := s.instanceAdminDirectories(ctx)
	if err != nil {
		return entity.Template{}, err
	}
	template, err := s.Templates.GetOne(ctx, templateID)
	if err != nil {
		return entity.Template{}, err
	}
	next, err := template.ToBodySet(singular, plural, displayName, propertiesSchema, adminPermissions, adminMembers, myself)
	if err != nil {
		return entity.Template{}, err
	}
	if err := s.Templates.Save(ctx, next); err != nil {
		return entity.Template{}, err
	}
	return next, nil
}

// GetTemplate returns one template.
func (s *ContentService) GetTemplate(ctx context.Context, rawTemplateID string) (entity.Template, error) {
	templateID, err := entity.ParseTemplateID(rawTemplateID)
	if err != nil {
		return entity.Template{}, err
	}
	return s.Templates.GetOne(ctx, templateID)
}

// ListTemplates pages through templates by creation time.
func (s *ContentService) ListTemplates(ctx context.Context, limit, offset int) ([]entity.Template, error) {
	return s.Templates.GetMany(ctx, repo.Filter{}, repo.Options{
		SortBy:    "created_at",
		Direction: repo.Asc,
		Limit:     limit,
		Offset:    offset,
	})
}

// CreateItem mints an item on behalf of one of the caller's groups.
func (s *ContentService) CreateItem(ctx context.Context, cred Credential, rawGroupID, rawTemplateID, rawTitle string, properties map[string]any) (entity.Item, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.Item{}, err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return entity.Item{}, err
	}
	templateID, err := entity.ParseTemplateID(rawTemplateID)
	if err != nil {
		return entity.Item{}, err
	}
	title, err := entity.ParseTitle(rawTitle)
	if err != nil {
		return entity.Item{}, err
	}
	template, err := s.Templates.GetOne(ctx, templateID)
	if err != nil {
		return entity.Item{}, err
	}
	profile, members, permissions, err := s.itemGateInputs(ctx, myself.UserID(), groupID)
	if err != nil {
		return entity.Item{}, err
	}
	item, err := entity.CreateItem(title, template, properties, profile, members, permissions, myself, s.Validator, s.Random, time.Now())
	if err != nil {
		return entity.Item{}, err
	}
	if err := s.Items.Save(ctx, item); err != nil {
		return entity.Item{}, err
	}
	s.Index.Put(ctx, item)
	s.Logger.WithFields(logrus.Fields{"item_id": item.ID, "group_id": groupID}).Info("item created")
	return item, nil
}

// SetItem replaces an item's title and properties. The owning group is
// the item's creator; the caller must be one of its members.
func (s *ContentService) SetItem(ctx context.Context, cred Credential, rawItemID, rawTitle string, properties map[string]any) (entity.Item, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.Item{}, err
	}
	itemID, err := entity.ParseItemID(rawItemID)
	if err != nil {
		return entity.Item{}, err
	}
	title, err := entity.ParseTitle(rawTitle)
	if err != nil {
		return entity.Item{}, err
	}
	item, err := s.Items.GetOne(ctx, itemID)
	if err != nil {
		return entity.Item{}, err
	}
	template, err := s.Templates.GetOne(ctx, item.Template)
	if err != nil {
		return entity.Item{}, err
	}
	profile, members, permissions, err := s.itemGateInputs(ctx, myself.UserID(), item.CreatedBy)
	if err != nil {
		return entity.Item{}, err
	}
	next, err := item.ToBodySet(title, properties, profile, members, permissions, template, myself, s.Validator, time.Now())
	if err != nil {
		return entity.Item{}, err
	}
	if err := s.Items.Save(ctx, next); err != nil {
		return entity.Item{}, err
	}
	s.Index.Put(ctx, next)
	return next, nil
}

// GetItem returns one item.
func (s *ContentService) GetItem(ctx context.Context, rawItemID string) (entity.Item, error) {
	itemID, err := entity.ParseItemID(rawItemID)
	if err != nil {
		return entity.Item{}, err
	}
	return s.Items.GetOne(ctx, itemID)
}

// ListItems pages through items, optionally filtered by template or
// owning group, newest first.
func (s *ContentService) ListItems(ctx context.Context, rawTemplateID, rawGroupID string, limit, offset int) ([]entity.Item, error) {
	filter := repo.Filter{}
	if rawTemplateID != "" {
		templateID, err := entity.ParseTemplateID(rawTemplateID)
		if err != nil {
			return nil, err
		}
		filter["template"] = repo.Eq(string(templateID))
	}
	if rawGroupID != "" {
		groupID, err := entity.ParseGroupID(rawGroupID)
		if err != nil {
			return nil, err
		}
		filter["created_by"] = repo.Eq(string(groupID))
	}
	return s.Items.GetMany(ctx, filter, repo.Options{
		SortBy:    "created_at",
		Direction: repo.Desc,
		Limit:     limit,
		Offset:    offset,
	})
}

// SearchItems runs a full-text query over the search index.
func (s *ContentService) SearchItems(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	return s.Index.Search(ctx, query, limit)
}

func (s *ContentService) itemGateInputs(ctx context.Context, userID entity.UserID, groupID entity.GroupID) (entity.UserProfile, entity.GroupMemberDirectory, entity.GroupPermissionDirectory, error) {
	profile, err := s.UserProfs.GetOne(ctx, userID)
	if err != nil {
		return entity.UserProfile{}, entity.GroupMemberDirectory{}, entity.GroupPermissionDirectory{}, err
	}
	members, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return entity.UserProfile{}, entity.GroupMemberDirectory{}, entity.GroupPermissionDirectory{}, err
	}
	permissions, err := s.Permissions.GetOne(ctx, groupID)
	if err != nil {
		return entity.UserProfile{}, entity.GroupMemberDirectory{}, entity.GroupPermissionDirectory{}, err
	}
	return profile, members, permissions, nil
}

func (s *ContentService) instanceAdminDirectories(ctx context.Context) (entity.GroupPermissionDirectory, entity.GroupMemberDirectory, error) {
	permissions, err := s.Permissions.GetOneByInstanceRole(ctx, entity.InstanceRoleAdmin)
	if err != nil {
		return entity.GroupPermissionDirectory{}, entity.GroupMemberDirectory{}, err
	}
	members, err := s.Members.GetOne(ctx, permissions.ID)
	if err != nil {
		return entity.GroupPermissionDirectory{}, entity.GroupMemberDirectory{}, err
	}
	return permissions, members, nil
}
