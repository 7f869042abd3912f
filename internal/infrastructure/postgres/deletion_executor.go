package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/apperr"
	"github.com/communehq/commune/internal/domain/entity"
)

// DeletionExecutor applies a deletion batch in one transaction,
// preserving the order the domain prescribed. Directory kinds take
// their child rows with them.
type DeletionExecutor struct {
	pool *pgxpool.Pool
}

func NewDeletionExecutor(pool *pgxpool.Pool) *DeletionExecutor {
	return &DeletionExecutor{pool: pool}
}

func (e *DeletionExecutor) Execute(ctx context.Context, batch entity.DeletionBatch) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	for _, d := range batch {
		if err := applyDeletion(ctx, tx, d); err != nil {
			return err
		}
	}
	return wrap(tx.Commit(ctx))
}

func applyDeletion(ctx context.Context, tx pgx.Tx, d entity.Deletion) error {
	// Items are the only kind selectable by creator rather than id.
	if d.Kind == entity.KindItem && d.CreatedBy != "" {
		_, err := tx.Exec(ctx, `DELETE FROM items WHERE created_by = $1`, string(d.CreatedBy))
		return wrap(err)
	}

	var statements []string
	switch d.Kind {
	case entity.KindUser:
		statements = []string{`DELETE FROM users WHERE id = $1`}
	case entity.KindUserAccount:
		statements = []string{
			`DELETE FROM authentication_tokens WHERE user_id = $1`,
			`DELETE FROM user_accounts WHERE id = $1`,
		}
	case entity.KindUserProfile:
		statements = []string{`DELETE FROM user_profiles WHERE id = $1`}
	case entity.KindEmailVerificationDirectory:
		statements = []string{
			`DELETE FROM email_verification_challenges WHERE user_id = $1`,
			`DELETE FROM email_verification_directories WHERE id = $1`,
		}
	case entity.KindBookmarkDirectory:
		statements = []string{
			`DELETE FROM bookmarks WHERE user_id = $1`,
			`DELETE FROM bookmark_directories WHERE id = $1`,
		}
	case entity.KindGroup:
		statements = []string{`DELETE FROM groups WHERE id = $1`}
	case entity.KindGroupMemberDirectory:
		statements = []string{
			`DELETE FROM group_members WHERE group_id = $1`,
			`DELETE FROM group_member_directories WHERE id = $1`,
		}
	case entity.KindGroupPermissionDirectory:
		statements = []string{
			`DELETE FROM group_allowed_templates WHERE group_id = $1`,
			`DELETE FROM group_permission_directories WHERE id = $1`,
		}
	case entity.KindGroupProfile:
		statements = []string{`DELETE FROM group_profiles WHERE id = $1`}
	case entity.KindTemplate:
		statements = []string{`DELETE FROM templates WHERE id = $1`}
	case entity.KindItem:
		statements = []string{`DELETE FROM items WHERE id = $1`}
	default:
		return apperr.IllegalValue(fmt.Sprintf("unknown aggregate kind %q", d.Kind))
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, d.ID); err != nil {
			return wrap(err)
		}
	}
	return nil
}
