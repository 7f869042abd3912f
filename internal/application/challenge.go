package application

import (
	"context"
	"time"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

// answerChallenge resolves a pending verification challenge into a
// passed certificate and persists its consumption. A wrong answer
// keeps the challenge, so nothing is saved on failure.
func answerChallenge(ctx context.Context, verifications repo.EmailVerificationDirectoryRepository, userID entity.UserID, rawChallengeID, rawAnswer string) (entity.EmailVerificationPassedCertificate, error) {
	challengeID, err := entity.ParseChallengeID(rawChallengeID)
	if err != nil {
		return entity.EmailVerificationPassedCertificate{}, err
	}
	answer, err := entity.ParseShortSecret(rawAnswer)
	if err != nil {
		return entity.EmailVerificationPassedCertificate{}, err
	}
	directory, err := verifications.GetOne(ctx, userID)
	if err != nil {
		return entity.EmailVerificationPassedCertificate{}, err
	}
	next, passed, err := directory.ToAnswerCreated(challengeID, answer, time.Now())
	if err != nil {
		return entity.EmailVerificationPassedCertificate{}, err
	}
	if err := verifications.Save(ctx, next); err != nil {
		return entity.EmailVerificationPassedCertificate{}, err
	}
	return passed, nil
}
