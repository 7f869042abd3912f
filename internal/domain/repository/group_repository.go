package repository

import (
	"context"

	"github.com/communehq/commune/internal/domain/entity"
)

type GroupRepository interface {
	GetOne(ctx context.Context, id entity.GroupID) (entity.Group, error)
	GetMany(ctx context.Context, filter Filter, options Options) ([]entity.Group, error)
	Save(ctx context.Context, group entity.Group) error
	DeleteOne(ctx context.Context, id entity.GroupID) error
}

// GroupMemberDirectoryRepository also serves the per-user membership
// lookup the belongs-to-no-group certificate service performs.
type GroupMemberDirectoryRepository interface {
	GetOne(ctx context.Context, id entity.GroupID) (entity.GroupMemberDirectory, error)
	GetMembersByUserID(ctx context.Context, userID entity.UserID) ([]entity.Member, error)
	Save(ctx context.Context, directory entity.GroupMemberDirectory) error
	DeleteOne(ctx context.Context, id entity.GroupID) error
}

// GroupPermissionDirectoryRepository can locate the single directory
// whose instance role is admin, which identifies the instance-admin
// group.
type GroupPermissionDirectoryRepository interface {
	GetOne(ctx context.Context, id entity.GroupID) (entity.GroupPermissionDirectory, error)
	GetOneByInstanceRole(ctx context.Context, role entity.InstanceRole) (entity.GroupPermissionDirectory, error)
	Save(ctx context.Context, directory entity.GroupPermissionDirectory) error
	DeleteOne(ctx context.Context, id entity.GroupID) error
}

type GroupProfileRepository interface {
	GetOne(ctx context.Context, id entity.GroupID) (entity.GroupProfile, error)
	GetOneByName(ctx context.Context, name entity.Name) (entity.GroupProfile, error)
	GetMany(ctx context.Context, filter Filter, options Options) ([]entity.GroupProfile, error)
	Save(ctx context.Context, profile entity.GroupProfile) error
	DeleteOne(ctx context.Context, id entity.GroupID) error
}
