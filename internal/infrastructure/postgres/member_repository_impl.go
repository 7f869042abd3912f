package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
)

type GroupMemberDirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewGroupMemberDirectoryRepository(pool *pgxpool.Pool) *GroupMemberDirectoryRepository {
	return &GroupMemberDirectoryRepository{pool: pool}
}

func (r *GroupMemberDirectoryRepository) GetOne(ctx context.Context, id entity.GroupID) (entity.GroupMemberDirectory, error) {
	directory := entity.GroupMemberDirectory{ID: id}
	row := r.pool.QueryRow(ctx, `
		SELECT invitation_secret FROM group_member_directories WHERE id = $1
	`, string(id))
	if err := row.Scan(&directory.InvitationSecret); err != nil {
		return entity.GroupMemberDirectory{}, wrap(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT group_id, user_id, role
		FROM group_members
		WHERE group_id = $1
		ORDER BY user_id
	`, string(id))
	if err != nil {
		return entity.GroupMemberDirectory{}, wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role); err != nil {
			return entity.GroupMemberDirectory{}, wrap(err)
		}
		directory.Members = append(directory.Members, m)
	}
	return directory, wrap(rows.Err())
}

func (r *GroupMemberDirectoryRepository) GetMembersByUserID(ctx context.Context, userID entity.UserID) ([]entity.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT group_id, user_id, role
		FROM group_members
		WHERE user_id = $1
	`, string(userID))
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var members []entity.Member
	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role); err != nil {
			return nil, wrap(err)
		}
		members = append(members, m)
	}
	return members, wrap(rows.Err())
}

func (r *GroupMemberDirectoryRepository) Save(ctx context.Context, directory entity.GroupMemberDirectory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO group_member_directories (id, invitation_secret)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET invitation_secret = EXCLUDED.invitation_secret
	`, string(directory.ID), string(directory.InvitationSecret)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM group_members WHERE group_id = $1`, string(directory.ID)); err != nil {
		return wrap(err)
	}
	for _, m := range directory.Members {
		if _, err := tx.Exec(ctx, `
			INSERT INTO group_members (group_id, user_id, role)
			VALUES ($1, $2, $3)
		`, string(m.GroupID), string(m.UserID), string(m.Role)); err != nil {
			return wrap(err)
		}
	}
	return wrap(tx.Commit(ctx))
}

func (r *GroupMemberDirectoryRepository) DeleteOne(ctx context.Context, id entity.GroupID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, `DELETE FROM group_members WHERE group_id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM group_member_directories WHERE id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	return wrap(tx.Commit(ctx))
}
