package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

// UserService covers the user-facing self-service surface: the
// verified profile that gates group and content actions, and the
// bookmark directory.
type UserService struct {
	Users         repo.UserRepository
	Profiles      repo.UserProfileRepository
	Verifications repo.EmailVerificationDirectoryRepository
	Bookmarks     repo.BookmarkDirectoryRepository
	Certs         *CertIssuer
	Logger        *logrus.Logger
}

// Me returns the caller's user record.
func (s *UserService) Me(ctx context.Context, cred Credential) (entity.User, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.User{}, err
	}
	return s.Users.GetOne(ctx, myself.UserID())
}

// CreateProfile turns a passed create-profile challenge into a
// year-long verified profile.
func (s *UserService) CreateProfile(ctx context.Context, cred Credential, rawName, rawDisplayName, rawChallengeID, rawAnswer string) (entity.UserProfile, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.UserProfile{}, err
	}
	name, err := entity.ParseName(rawName)
	if err != nil {
		return entity.UserProfile{}, err
	}
	displayName, err := entity.ParseDisplayName(rawDisplayName)
	if err != nil {
		return entity.UserProfile{}, err
	}
	passed, err := answerChallenge(ctx, s.Verifications, myself.UserID(), rawChallengeID, rawAnswer)
	if err != nil {
		return entity.UserProfile{}, err
	}
	profile, err := entity.CreateUserProfile(myself.UserID(), name, displayName, myself, passed, time.Now())
	if err != nil {
		return entity.UserProfile{}, err
	}
	if err := s.Profiles.Save(ctx, profile); err != nil {
		return entity.UserProfile{}, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": profile.ID}).Info("user profile created")
	return profile, nil
}

// ExtendProfile renews the verification window after a fresh
// create-profile challenge.
func (s *UserService) ExtendProfile(ctx context.Context, cred Credential, rawChallengeID, rawAnswer string) (entity.UserProfile, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.UserProfile{}, err
	}
	passed, err := answerChallenge(ctx, s.Verifications, myself.UserID(), rawChallengeID, rawAnswer)
	if err != nil {
		return entity.UserProfile{}, err
	}
	profile, err := s.Profiles.GetOne(ctx, myself.UserID())
	if err != nil {
		return entity.UserProfile{}, err
	}
	next, err := profile.ToExpirationExtended(myself, passed, time.Now())
	if err != nil {
		return entity.UserProfile{}, err
	}
	if err := s.Profiles.Save(ctx, next); err != nil {
		return entity.UserProfile{}, err
	}
	return next, nil
}

// Profile returns the caller's profile.
func (s *UserService) Profile(ctx context.Context, cred Credential) (entity.UserProfile, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.UserProfile{}, err
	}
	return s.Profiles.GetOne(ctx, myself.UserID())
}

// ListBookmarks returns the caller's bookmark directory.
func (s *UserService) ListBookmarks(ctx context.Context, cred Credential) (entity.BookmarkDirectory, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.BookmarkDirectory{}, err
	}
	return s.Bookmarks.GetOne(ctx, myself.UserID())
}

// AddBookmark tags an item for the caller. Re-adding the same pair is
// a no-op.
func (s *UserService) AddBookmark(ctx context.Context, cred Credential, rawItemID, rawTag string) (entity.BookmarkDirectory, error) {
	return s.mutateBookmarks(ctx, cred, rawItemID, rawTag, entity.BookmarkDirectory.ToBookmarkAdded)
}

// RemoveBookmark removes the pair; removing an absent pair is a no-op.
func (s *UserService) RemoveBookmark(ctx context.Context, cred Credential, rawItemID, rawTag string) (entity.BookmarkDirectory, error) {
	return s.mutateBookmarks(ctx, cred, rawItemID, rawTag, entity.BookmarkDirectory.ToBookmarkRemoved)
}

func (s *UserService) mutateBookmarks(ctx context.Context, cred Credential, rawItemID, rawTag string, transition func(entity.BookmarkDirectory, entity.ItemID, entity.Name, entity.MyselfCertificate) (entity.BookmarkDirectory, error)) (entity.BookmarkDirectory, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.BookmarkDirectory{}, err
	}
	itemID, err := entity.ParseItemID(rawItemID)
	if err != nil {
		return entity.BookmarkDirectory{}, err
	}
	tag, err := entity.ParseName(rawTag)
	if err != nil {
		return entity.BookmarkDirectory{}, err
	}
	directory, err := s.Bookmarks.GetOne(ctx, myself.UserID())
	if err != nil {
		return entity.BookmarkDirectory{}, err
	}
	next, err := transition(directory, itemID, tag, myself)
	if err != nil {
		return entity.BookmarkDirectory{}, err
	}
	if err := s.Bookmarks.Save(ctx, next); err != nil {
		return entity.BookmarkDirectory{}, err
	}
	return next, nil
}
