package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

// GroupService covers the group lifecycle: creation, membership,
// invitation secrets, the public profile, platform permissions, and
// deletion. Authorization is entirely the domain's job; the service
// only loads collaborators and persists results.
type GroupService struct {
	Groups      repo.GroupRepository
	Members     repo.GroupMemberDirectoryRepository
	Permissions repo.GroupPermissionDirectoryRepository
	Profiles    repo.GroupProfileRepository
	UserProfs   repo.UserProfileRepository
	Certs       *CertIssuer
	Random      entity.Random
	Deleter     repo.DeletionExecutor
	Index       *ItemIndex
	Logger      *logrus.Logger
}

// GroupView bundles a group with its public profile for read paths.
type GroupView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Create mints a group with the caller as sole admin. The caller must
// hold a valid profile and not belong to any group yet.
func (s *GroupService) Create(ctx context.Context, cred Credential, rawName, rawDisplayName string) (GroupView, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return GroupView{}, err
	}
	name, err := entity.ParseName(rawName)
	if err != nil {
		return GroupView{}, err
	}
	displayName, err := entity.ParseDisplayName(rawDisplayName)
	if err != nil {
		return GroupView{}, err
	}
	userProfile, err := s.UserProfs.GetOne(ctx, myself.UserID())
	if err != nil {
		return GroupView{}, err
	}
	noGroup, err := s.Certs.BelongsToNoGroup(ctx, myself.UserID())
	if err != nil {
		return GroupView{}, err
	}

	group, members, permissions, profile, err := entity.CreateGroup(name, displayName, userProfile, myself, noGroup, s.Random, time.Now())
	if err != nil {
		return GroupView{}, err
	}
	if err := s.Groups.Save(ctx, group); err != nil {
		return GroupView{}, err
	}
	if err := s.Members.Save(ctx, members); err != nil {
		return GroupView{}, err
	}
	if err := s.Permissions.Save(ctx, permissions); err != nil {
		return GroupView{}, err
	}
	if err := s.Profiles.Save(ctx, profile); err != nil {
		return GroupView{}, err
	}
	s.Logger.WithFields(logrus.Fields{"group_id": group.ID, "user_id": myself.UserID()}).Info("group created")
	return GroupView{ID: string(group.ID), Name: string(profile.Name), DisplayName: string(profile.DisplayName)}, nil
}

// Get returns one group's public profile.
func (s *GroupService) Get(ctx context.Context, rawGroupID string) (GroupView, error) {
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return GroupView{}, err
	}
	profile, err := s.Profiles.GetOne(ctx, groupID)
	if err != nil {
		return GroupView{}, err
	}
	return GroupView{ID: string(profile.ID), Name: string(profile.Name), DisplayName: string(profile.DisplayName)}, nil
}

// List pages through group profiles ordered by name.
func (s *GroupService) List(ctx context.Context, limit, offset int) ([]GroupView, error) {
	profiles, err := s.Profiles.GetMany(ctx, repo.Filter{}, repo.Options{
		SortBy:    "name",
		Direction: repo.Asc,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	views := make([]GroupView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, GroupView{ID: string(p.ID), Name: string(p.Name), DisplayName: string(p.DisplayName)})
	}
	return views, nil
}

// MemberList returns the member directory without the invitation secret.
func (s *GroupService) MemberList(ctx context.Context, rawGroupID string) ([]entity.Member, error) {
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return nil, err
	}
	directory, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return directory.Members, nil
}

// Join adds the caller using the invitation secret. A valid profile is
// required; joining a group the caller is already in succeeds.
func (s *GroupService) Join(ctx context.Context, cred Credential, rawGroupID, rawSecret string) error {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return err
	}
	secret, err := entity.ParseShortSecret(rawSecret)
	if err != nil {
		return err
	}
	profile, err := s.UserProfs.GetOne(ctx, myself.UserID())
	if err != nil {
		return err
	}
	directory, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return err
	}
	next, err := directory.ToMemberAdded(secret, profile, myself, time.Now())
	if err != nil {
		return err
	}
	if err := s.Members.Save(ctx, next); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"group_id": groupID, "user_id": myself.UserID()}).Info("member joined")
	return nil
}

// Leave removes the caller from the group. Refused when it would leave
// the group without an admin.
func (s *GroupService) Leave(ctx context.Context, cred Credential, rawGroupID string) error {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return err
	}
	directory, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return err
	}
	next, err := directory.ToMemberRemovedByMyself(myself.UserID(), myself)
	if err != nil {
		return err
	}
	return s.Members.Save(ctx, next)
}

// RemoveMember lets an admin remove any member.
func (s *GroupService) RemoveMember(ctx context.Context, cred Credential, rawGroupID, rawUserID string) error {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return err
	}
	userID, err := entity.ParseUserID(rawUserID)
	if err != nil {
		return err
	}
	directory, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return err
	}
	next, err := directory.ToMemberRemovedByAdmin(userID, myself)
	if err != nil {
		return err
	}
	if err := s.Members.Save(ctx, next); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"group_id": groupID, "user_id": userID, "removed_by": myself.UserID()}).Info("member removed")
	return nil
}

// RotateInvitationSecret replaces the join secret and returns the new
// one. Admins only.
func (s *GroupService) RotateInvitationSecret(ctx context.Context, cred Credential, rawGroupID string) (string, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return "", err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return "", err
	}
	directory, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return "", err
	}
	next, err := directory.ToInvitationSecretResetRequestCreated(myself, s.Random)
	if err != nil {
		return "", err
	}
	if err := s.Members.Save(ctx, next); err != nil {
		return "", err
	}
	return string(next.InvitationSecret), nil
}

// SetProfile replaces the group's name and display name. Admins only.
func (s *GroupService) SetProfile(ctx context.Context, cred Credential, rawGroupID, rawName, rawDisplayName string) (GroupView, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return GroupView{}, err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return GroupView{}, err
	}
	name, err := entity.ParseName(rawName)
	if err != nil {
		return GroupView{}, err
	}
	displayName, err := entity.ParseDisplayName(rawDisplayName)
	if err != nil {
		return GroupView{}, err
	}
	members, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return GroupView{}, err
	}
	profile, err := s.Profiles.GetOne(ctx, groupID)
	if err != nil {
		return GroupView{}, err
	}
	next, err := profile.ToBodySet(name, displayName, members, myself)
	if err != nil {
		return GroupView{}, err
	}
	if err := s.Profiles.Save(ctx, next); err != nil {
		return GroupView{}, err
	}
	return GroupView{ID: string(next.ID), Name: string(next.Name), DisplayName: string(next.DisplayName)}, nil
}

// SetPermissions replaces a group's instance role and template
// allow-list. Only members of the instance-admin group may call this,
// proven against the admin group's own directories.
func (s *GroupService) SetPermissions(ctx context.Context, cred Credential, rawGroupID string, rawRole string, rawTemplateIDs []string) (entity.GroupPermissionDirectory, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	role := entity.InstanceRole(rawRole)
	templateIDs := make([]entity.TemplateID, 0, len(rawTemplateIDs))
	for _, raw := range rawTemplateIDs {
		id, err := entity.ParseTemplateID(raw)
		if err != nil {
			return entity.GroupPermissionDirectory{}, err
		}
		templateIDs = append(templateIDs, id)
	}

	adminPermissions, adminMembers, err := s.instanceAdminDirectories(ctx)
	if err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	directory, err := s.Permissions.GetOne(ctx, groupID)
	if err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	next, err := directory.ToBodySet(role, templateIDs, adminPermissions, adminMembers, myself)
	if err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	if err := s.Permissions.Save(ctx, next); err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	s.Logger.WithFields(logrus.Fields{"group_id": groupID, "role": role}).Info("group permissions set")
	return next, nil
}

// Delete tears the group down: the domain produces the ordered batch,
// the executor applies it in one transaction, and the search index is
// swept afterwards.
func (s *GroupService) Delete(ctx context.Context, cred Credential, rawGroupID string) error {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return err
	}
	groupID, err := entity.ParseGroupID(rawGroupID)
	if err != nil {
		return err
	}
	group, err := s.Groups.GetOne(ctx, groupID)
	if err != nil {
		return err
	}
	members, err := s.Members.GetOne(ctx, groupID)
	if err != nil {
		return err
	}
	batch, err := group.CreateDeleteRequest(members, myself)
	if err != nil {
		return err
	}
	if err := s.Deleter.Execute(ctx, batch); err != nil {
		return err
	}
	s.Index.DeleteByGroup(ctx, groupID)
	s.Logger.WithFields(logrus.Fields{"group_id": groupID, "user_id": myself.UserID()}).Info("group deleted")
	return nil
}

// instanceAdminDirectories locates the single group holding the admin
// instance role and loads its member directory.
func (s *GroupService) instanceAdminDirectories(ctx context.Context) (entity.GroupPermissionDirectory, entity.GroupMemberDirectory, error) {
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
