package apperr

import (
	"errors"
	"fmt"
)

// Code identifies one failure kind. Business rules and infrastructure
// failures share the same error shape so callers can map both to
// transport statuses from a single place.
type Code string

const (
	// Business-rule failures.
	CodeIllegalAuthenticationToken    Code = "illegal_authentication_token"
	CodeStillBelongsToOneOrMoreGroups Code = "still_belongs_to_one_or_more_groups"
	CodeNotGroupAdmin                 Code = "not_group_admin"
	CodeNotGroupMember                Code = "not_group_member"
	CodeWrongInvitationSecret         Code = "wrong_invitation_secret"
	CodeInsufficientAdmins            Code = "insufficient_admins"
	CodeUserProfileExpired            Code = "user_profile_expired"
	CodeNotAllowedToModify            Code = "not_allowed_to_modify"
	CodeIllegalProperties             Code = "illegal_properties"
	CodeEmailVerificationFailed       Code = "email_verification_failed"
	CodeNotFound                      Code = "not_found"
	CodeIllegalValue                  Code = "illegal_value"
	CodeCertificateMismatch           Code = "certificate_mismatch"

	// Infrastructure failures, propagated unchanged by the domain.
	CodeDao                  Code = "dao"
	CodeNotFoundOnRepository Code = "not_found_on_repository"

	// Defect class: the random source produced output that fails its
	// own format predicate. Never a business condition.
	CodeGeneration Code = "generation"
)

// Error is the one error type crossing the domain boundary. The two
// probable-origin flags help the transport layer pick a status without
// inspecting codes one by one.
type Error struct {
	Code                   Code
	Message                string
	ProbablyCausedByClient bool
	ProbablyCausedByServer bool
	cause                  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches another *Error with the same code, so callers can write
// errors.Is(err, apperr.NotGroupAdmin("")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the failure code, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsCode(err error, code Code) bool { return CodeOf(err) == code }

func client(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, ProbablyCausedByClient: true}
}

func server(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, ProbablyCausedByServer: true}
}

func IllegalAuthenticationToken(msg string) *Error {
	if msg == "" {
		msg = "the authentication token is missing, expired, or belongs to another user"
	}
	return client(CodeIllegalAuthenticationToken, msg)
}

func StillBelongsToOneOrMoreGroups(msg string) *Error {
	if msg == "" {
		msg = "the user still belongs to one or more groups"
	}
	return client(CodeStillBelongsToOneOrMoreGroups, msg)
}

func NotGroupAdmin(msg string) *Error {
	if msg == "" {
		msg = "the user is not an admin of the group"
	}
	return client(CodeNotGroupAdmin, msg)
}

func NotGroupMember(msg string) *Error {
	if msg == "" {
		msg = "the user is not a member of the group"
	}
	return client(CodeNotGroupMember, msg)
}

func WrongInvitationSecret(msg string) *Error {
	if msg == "" {
		msg = "the invitation secret does not match"
	}
	return client(CodeWrongInvitationSecret, msg)
}

func InsufficientAdmins(msg string) *Error {
	if msg == "" {
		msg = "the group would be left without an admin"
	}
	return client(CodeInsufficientAdmins, msg)
}

func UserProfileExpired(msg string) *Error {
	if msg == "" {
		msg = "the user profile has expired and must be re-verified"
	}
	return client(CodeUserProfileExpired, msg)
}

func NotAllowedToModify(msg string) *Error {
	if msg == "" {
		msg = "the group is not allowed to modify items of this template"
	}
	return client(CodeNotAllowedToModify, msg)
}

func IllegalProperties(msg string) *Error {
	if msg == "" {
		msg = "the properties do not satisfy the template schema"
	}
	return client(CodeIllegalProperties, msg)
}

func EmailVerificationFailed(msg string) *Error {
	if msg == "" {
		msg = "the answer does not match the challenge secret"
	}
	return client(CodeEmailVerificationFailed, msg)
}

func NotFound(msg string) *Error {
	if msg == "" {
		msg = "not found"
	}
	return client(CodeNotFound, msg)
}

func IllegalValue(msg string) *Error {
	return client(CodeIllegalValue, msg)
}

// CertificateMismatch marks a certificate presented outside the scope
// it was issued for. The trusted caller wired the wrong proof, so this
// is classified as a server defect.
func CertificateMismatch(msg string) *Error {
	if msg == "" {
		msg = "the certificate does not cover this operation"
	}
	return server(CodeCertificateMismatch, msg)
}

// Dao wraps a storage failure reported by a repository implementation.
func Dao(cause error) *Error {
	return &Error{
		Code:                   CodeDao,
		Message:                "repository operation failed",
		ProbablyCausedByServer: true,
		cause:                  cause,
	}
}

func NotFoundOnRepository(msg string) *Error {
	if msg == "" {
		msg = "no item matched on the repository"
	}
	return client(CodeNotFoundOnRepository, msg)
}

// Generation reports a random source emitting output that fails its
// format predicate. Treated as a defect, not a business condition.
func Generation(cause error) *Error {
	return &Error{
		Code:                   CodeGeneration,
		Message:                "random generation produced malformed output",
		ProbablyCausedByServer: true,
		cause:                  cause,
	}
}
