package application

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/domain/apperr"
	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
	"github.com/communehq/commune/pkg/helpers"
	"github.com/communehq/commune/pkg/mailer"
)

// AccountService covers identity lifecycle: signup, the verification
// challenges that gate every sensitive step, token issuing, email
// changes, and logout. Challenge answers travel by email through the
// RabbitMQ worker.
type AccountService struct {
	Users         repo.UserRepository
	Accounts      repo.UserAccountRepository
	Verifications repo.EmailVerificationDirectoryRepository
	Bookmarks     repo.BookmarkDirectoryRepository
	Certs         *CertIssuer
	Random        entity.Random
	Sessions      *helpers.SessionManager
	Mail          *helpers.RabbitPublisher
	MailEnabled   bool
	Logger        *logrus.Logger
}

// ChallengeRef is what the caller gets back after opening a challenge;
// the answer itself only travels by email.
type ChallengeRef struct {
	UserID      string `json:"user_id"`
	ChallengeID string `json:"challenge_id"`
}

// SessionResult carries a freshly issued authentication token wrapped
// into a session cookie value.
type SessionResult struct {
	UserID    string    `json:"user_id"`
	TokenID   string    `json:"token_id"`
	Session   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signup registers the address and opens the first login challenge. An
// already-registered address falls through to a plain login challenge,
// so the endpoint does not leak which addresses exist.
func (s *AccountService) Signup(ctx context.Context, rawEmail string) (ChallengeRef, error) {
	email, err := entity.ParseEmail(rawEmail)
	if err != nil {
		return ChallengeRef{}, err
	}

	user, err := s.Users.GetOneByEmail(ctx, email)
	switch {
	case err == nil:
		return s.openChallenge(ctx, user, entity.PurposeCreateAuthToken)
	case apperr.IsCode(err, apperr.CodeNotFoundOnRepository):
		// fresh registration
	default:
		return ChallengeRef{}, err
	}

	user, account, verifications, bookmarks, err := entity.CreateUser(email, s.Random, time.Now())
	if err != nil {
		return ChallengeRef{}, err
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return ChallengeRef{}, err
	}
	if err := s.Accounts.Save(ctx, account); err != nil {
		return ChallengeRef{}, err
	}
	if err := s.Verifications.Save(ctx, verifications); err != nil {
		return ChallengeRef{}, err
	}
	if err := s.Bookmarks.Save(ctx, bookmarks); err != nil {
		return ChallengeRef{}, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": user.ID}).Info("user registered")

	return s.openChallenge(ctx, user, entity.PurposeCreateAuthToken)
}

// RequestLoginChallenge opens a create-auth-token challenge for a known
// address.
func (s *AccountService) RequestLoginChallenge(ctx context.Context, rawEmail string) (ChallengeRef, error) {
	email, err := entity.ParseEmail(rawEmail)
	if err != nil {
		return ChallengeRef{}, err
	}
	user, err := s.Users.GetOneByEmail(ctx, email)
	if err != nil {
		return ChallengeRef{}, err
	}
	return s.openChallenge(ctx, user, entity.PurposeCreateAuthToken)
}

// RequestChallenge opens a challenge against the caller's current
// email for the given purpose. Authenticated flows (create-profile)
// use this.
func (s *AccountService) RequestChallenge(ctx context.Context, cred Credential, purpose entity.Purpose) (ChallengeRef, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return ChallengeRef{}, err
	}
	user, err := s.Users.GetOne(ctx, myself.UserID())
	if err != nil {
		return ChallengeRef{}, err
	}
	return s.openChallenge(ctx, user, purpose)
}

// RequestEmailChangeChallenge opens a set-email challenge against the
// NEW address, proving the caller can read the mailbox they are moving
// to.
func (s *AccountService) RequestEmailChangeChallenge(ctx context.Context, cred Credential, rawNewEmail string) (ChallengeRef, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return ChallengeRef{}, err
	}
	newEmail, err := entity.ParseEmail(rawNewEmail)
	if err != nil {
		return ChallengeRef{}, err
	}
	directory, err := s.Verifications.GetOne(ctx, myself.UserID())
	if err != nil {
		return ChallengeRef{}, err
	}
	next, challenge, err := directory.ToChallengeCreatedFromCustomEmail(newEmail, entity.PurposeSetEmail, s.Random, time.Now())
	if err != nil {
		return ChallengeRef{}, err
	}
	if err := s.Verifications.Save(ctx, next); err != nil {
		return ChallengeRef{}, err
	}
	s.publishChallenge(ctx, challenge)
	return ChallengeRef{UserID: string(directory.ID), ChallengeID: string(challenge.ID)}, nil
}

// Login answers a create-auth-token challenge and, on success, mints an
// authentication token and wraps it into a session cookie value.
func (s *AccountService) Login(ctx context.Context, rawUserID, rawChallengeID, rawAnswer, ip, userAgent string) (SessionResult, error) {
	userID, err := entity.ParseUserID(rawUserID)
	if err != nil {
		return SessionResult{}, err
	}
	passed, err := s.answer(ctx, userID, rawChallengeID, rawAnswer)
	if err != nil {
		return SessionResult{}, err
	}

	account, err := s.Accounts.GetOne(ctx, userID)
	if err != nil {
		return SessionResult{}, err
	}
	nextAccount, token, err := account.ToAuthenticationTokenCreated(ip, userAgent, passed, s.Random, time.Now())
	if err != nil {
		return SessionResult{}, err
	}
	if err := s.Accounts.Save(ctx, nextAccount); err != nil {
		return SessionResult{}, err
	}

	session, _, err := s.Sessions.Generate(string(userID), string(token.ID), string(token.Secret))
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("generate session failed")
		return SessionResult{}, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "token_id": token.ID}).Info("authentication token issued")

	return SessionResult{
		UserID:    string(userID),
		TokenID:   string(token.ID),
		Session:   session,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

func (s *AccountService) answer(ctx context.Context, userID entity.UserID, rawChallengeID, rawAnswer string) (entity.EmailVerificationPassedCertificate, error) {
	return answerChallenge(ctx, s.Verifications, userID, rawChallengeID, rawAnswer)
}

// SetEmail finishes an email change: the challenge answer proves the
// new mailbox, the session proves the caller.
func (s *AccountService) SetEmail(ctx context.Context, cred Credential, rawNewEmail, rawChallengeID, rawAnswer string) (entity.User, error) {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return entity.User{}, err
	}
	newEmail, err := entity.ParseEmail(rawNewEmail)
	if err != nil {
		return entity.User{}, err
	}
	passed, err := s.answer(ctx, myself.UserID(), rawChallengeID, rawAnswer)
	if err != nil {
		return entity.User{}, err
	}
	user, err := s.Users.GetOne(ctx, myself.UserID())
	if err != nil {
		return entity.User{}, err
	}
	next, err := user.ToEmailSet(newEmail, myself, passed)
	if err != nil {
		return entity.User{}, err
	}
	if err := s.Users.Save(ctx, next); err != nil {
		return entity.User{}, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": next.ID}).Info("email changed")
	return next, nil
}

// Logout deletes one authentication token. Deleting a token that is
// already gone succeeds.
func (s *AccountService) Logout(ctx context.Context, cred Credential, rawTokenID string) error {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return err
	}
	tokenID, err := entity.ParseAuthenticationTokenID(rawTokenID)
	if err != nil {
		return err
	}
	account, err := s.Accounts.GetOne(ctx, myself.UserID())
	if err != nil {
		return err
	}
	next, err := account.ToAuthenticationTokenDeleted(tokenID, myself)
	if err != nil {
		return err
	}
	return s.Accounts.Save(ctx, next)
}

// LogoutEverywhere deletes every token of the caller.
func (s *AccountService) LogoutEverywhere(ctx context.Context, cred Credential) error {
	myself, err := s.Certs.Myself(ctx, cred)
	if err != nil {
		return err
	}
	account, err := s.Accounts.GetOne(ctx, myself.UserID())
	if err != nil {
		return err
	}
	next, err := account.ToAllAuthenticationTokensDeleted(myself)
	if err != nil {
		return err
	}
	if err := s.Accounts.Save(ctx, next); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": myself.UserID()}).Info("all authentication tokens deleted")
	return nil
}

func (s *AccountService) openChallenge(ctx context.Context, user entity.User, purpose entity.Purpose) (ChallengeRef, error) {
	directory, err := s.Verifications.GetOne(ctx, user.ID)
	if err != nil {
		return ChallengeRef{}, err
	}
	next, challenge, err := directory.ToChallengeCreatedFromUser(user, purpose, s.Random, time.Now())
	if err != nil {
		return ChallengeRef{}, err
	}
	if err := s.Verifications.Save(ctx, next); err != nil {
		return ChallengeRef{}, err
	}
	s.publishChallenge(ctx, challenge)
	return ChallengeRef{UserID: string(user.ID), ChallengeID: string(challenge.ID)}, nil
}

// publishChallenge queues the answer email. Delivery is best effort
// from the API's point of view; the challenge stays answerable until
// it expires, so the user can request a fresh one if the mail never
// lands.
func (s *AccountService) publishChallenge(ctx context.Context, challenge entity.EmailVerificationChallenge) {
	if !s.MailEnabled || s.Mail == nil {
		s.Logger.WithFields(logrus.Fields{"challenge_id": challenge.ID}).Debug("mail disabled, skipping challenge delivery")
		return
	}
	job := mailer.EmailJob{
		To:       string(challenge.Email),
		Template: mailer.TemplateVerificationChallenge,
		Data: map[string]any{
			"answer":          string(challenge.Secret),
			"purpose":         string(challenge.Purpose),
			"expires_minutes": strconv.Itoa(int(entity.EmailVerificationChallengeTTL.Minutes())),
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("challenge_id", challenge.ID).Warn("publish challenge email failed")
	}
}
