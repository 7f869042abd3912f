package repository

import (
	"context"

	"github.com/communehq/commune/internal/domain/entity"
)

// Persistence contracts for the user-side aggregates. Implementations
// report storage failures as apperr.Dao and misses as
// apperr.NotFoundOnRepository. Save is an upsert keyed by the aggregate
// id.
//
// The domain never calls these itself; callers load snapshots, run
// transitions, and persist the results. The read-check-write sequence
// around a transition must be atomic with respect to the aggregate's
// storage record (optimistic concurrency or a serializable
// transaction) — the invariant checks inside transitions assume it.

type UserRepository interface {
	GetOne(ctx context.Context, id entity.UserID) (entity.User, error)
	GetOneByEmail(ctx context.Context, email entity.Email) (entity.User, error)
	GetMany(ctx context.Context, filter Filter, options Options) ([]entity.User, error)
	Save(ctx context.Context, user entity.User) error
	DeleteOne(ctx context.Context, id entity.UserID) error
	DeleteMany(ctx context.Context, filter Filter) error
}

// UserAccountRepository also serves the authentication-token lookup the
// myself-certificate service performs, keyed by the token secret.
type UserAccountRepository interface {
	GetOne(ctx context.Context, id entity.UserID) (entity.UserAccount, error)
	GetTokenBySecret(ctx context.Context, secret entity.LongSecret) (entity.AuthenticationToken, error)
	Save(ctx context.Context, account entity.UserAccount) error
	DeleteOne(ctx context.Context, id entity.UserID) error
}

type UserProfileRepository interface {
	GetOne(ctx context.Context, id entity.UserID) (entity.UserProfile, error)
	GetMany(ctx context.Context, filter Filter, options Options) ([]entity.UserProfile, error)
	Save(ctx context.Context, profile entity.UserProfile) error
	DeleteOne(ctx context.Context, id entity.UserID) error
}

type EmailVerificationDirectoryRepository interface {
	GetOne(ctx context.Context, id entity.UserID) (entity.EmailVerificationDirectory, error)
	Save(ctx context.Context, directory entity.EmailVerificationDirectory) error
	DeleteOne(ctx context.Context, id entity.UserID) error
}

type BookmarkDirectoryRepository interface {
	GetOne(ctx context.Context, id entity.UserID) (entity.BookmarkDirectory, error)
	Save(ctx context.Context, directory entity.BookmarkDirectory) error
	DeleteOne(ctx context.Context, id entity.UserID) error
}
