package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
)

type GroupPermissionDirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewGroupPermissionDirectoryRepository(pool *pgxpool.Pool) *GroupPermissionDirectoryRepository {
	return &GroupPermissionDirectoryRepository{pool: pool}
}

func (r *GroupPermissionDirectoryRepository) GetOne(ctx context.Context, id entity.GroupID) (entity.GroupPermissionDirectory, error) {
	directory := entity.GroupPermissionDirectory{ID: id}
	row := r.pool.QueryRow(ctx, `
		SELECT role_in_instance FROM group_permission_directories WHERE id = $1
	`, string(id))
	if err := row.Scan(&directory.RoleInInstance); err != nil {
		return entity.GroupPermissionDirectory{}, wrap(err)
	}
	if err := r.loadAllowed(ctx, &directory); err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	return directory, nil
}

// GetOneByInstanceRole locates a directory by its standing in the
// instance. Used with the admin role, which exactly one group holds.
func (r *GroupPermissionDirectoryRepository) GetOneByInstanceRole(ctx context.Context, role entity.InstanceRole) (entity.GroupPermissionDirectory, error) {
	var directory entity.GroupPermissionDirectory
	row := r.pool.QueryRow(ctx, `
		SELECT id, role_in_instance
		FROM group_permission_directories
		WHERE role_in_instance = $1
		LIMIT 1
	`, string(role))
	if err := row.Scan(&directory.ID, &directory.RoleInInstance); err != nil {
		return entity.GroupPermissionDirectory{}, wrap(err)
	}
	if err := r.loadAllowed(ctx, &directory); err != nil {
		return entity.GroupPermissionDirectory{}, err
	}
	return directory, nil
}

func (r *GroupPermissionDirectoryRepository) loadAllowed(ctx context.Context, directory *entity.GroupPermissionDirectory) error {
	rows, err := r.pool.Query(ctx, `
		SELECT template_id FROM group_allowed_templates WHERE group_id = $1 ORDER BY template_id
	`, string(directory.ID))
	if err != nil {
		return wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		var t entity.TemplateID
		if err := rows.Scan(&t); err != nil {
			return wrap(err)
		}
		directory.AllowedToModify = append(directory.AllowedToModify, t)
	}
	return wrap(rows.Err())
}

func (r *GroupPermissionDirectoryRepository) Save(ctx context.Context, directory entity.GroupPermissionDirectory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO group_permission_directories (id, role_in_instance)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET role_in_instance = EXCLUDED.role_in_instance
	`, string(directory.ID), string(directory.RoleInInstance)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM group_allowed_templates WHERE group_id = $1`, string(directory.ID)); err != nil {
		return wrap(err)
	}
	for _, t := range directory.AllowedToModify {
		if _, err := tx.Exec(ctx, `
			INSERT INTO group_allowed_templates (group_id, template_id)
			VALUES ($1, $2)
		`, string(directory.ID), string(t)); err != nil {
			return wrap(err)
		}
	}
	return wrap(tx.Commit(ctx))
}

func (r *GroupPermissionDirectoryRepository) DeleteOne(ctx context.Context, id entity.GroupID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, `DELETE FROM group_allowed_templates WHERE group_id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM group_permission_directories WHERE id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	return wrap(tx.Commit(ctx))
}
