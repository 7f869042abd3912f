package entity

// AggregateKind is the closed enumeration of aggregate families. It
// exists so deletion requests (and nothing else) can speak about
// aggregates generically without untyped strings.
type AggregateKind string

const (
	KindUser                       AggregateKind = "user"
	KindUserAccount                AggregateKind = "user-account"
	KindUserProfile                AggregateKind = "user-profile"
	KindEmailVerificationDirectory AggregateKind = "email-verification-directory"
	KindBookmarkDirectory          AggregateKind = "bookmark-directory"
	KindGroup                      AggregateKind = "group"
	KindGroupMemberDirectory       AggregateKind = "group-member-directory"
	KindGroupPermissionDirectory   AggregateKind = "group-permission-directory"
	KindGroupProfile               AggregateKind = "group-profile"
	KindTemplate                   AggregateKind = "template"
	KindItem                       AggregateKind = "item"
)

// Deletion describes one repository delete the caller must execute.
// Either ID names a single record, or CreatedBy selects every item the
// group created.
type Deletion struct {
	Kind      AggregateKind
	ID        string
	CreatedBy GroupID
}

// DeletionBatch is an ordered list of deletions. Order matters:
// dependents come before the aggregate they point at, and the executor
// should apply the whole batch in one transaction.
type DeletionBatch []Deletion
