package entity

// Certificates are proof-carrying values: holding one means the check
// it represents already passed. Their fields are unexported and no
// exported constructor exists, so nothing outside this package can
// fabricate one without doing the underlying work. Certificates carry
// no behavior beyond read access to their scope.

// Purpose scopes an email verification to the action it unlocks.
type Purpose string

const (
	PurposeCreateAuthToken Purpose = "create-auth-token"
	PurposeSetEmail        Purpose = "set-email"
	PurposeCreateProfile   Purpose = "create-profile"
)

// MyselfCertificate proves that the acting principal is UserID. Issued
// only by IssueMyselfCertificate after verifying an authentication
// token secret.
type MyselfCertificate struct {
	userID UserID
}

func (c MyselfCertificate) UserID() UserID { return c.userID }

// EmailVerificationPassedCertificate proves that UserID answered a
// challenge sent to Email for Purpose. Issued only by
// EmailVerificationDirectory.ToAnswerCreated.
type EmailVerificationPassedCertificate struct {
	userID  UserID
	email   Email
	purpose Purpose
}

func (c EmailVerificationPassedCertificate) UserID() UserID   { return c.userID }
func (c EmailVerificationPassedCertificate) Email() Email     { return c.email }
func (c EmailVerificationPassedCertificate) Purpose() Purpose { return c.purpose }

// BelongsToNoGroupCertificate proves that UserID had zero group
// memberships when IssueBelongsToNoGroupCertificate checked. A
// point-in-time proof, like every certificate.
type BelongsToNoGroupCertificate struct {
	userID UserID
}

func (c BelongsToNoGroupCertificate) UserID() UserID { return c.userID }
