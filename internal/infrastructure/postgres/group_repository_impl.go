package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

var groupColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
}

type GroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

func (r *GroupRepository) GetOne(ctx context.Context, id entity.GroupID) (entity.Group, error) {
	var g entity.Group
	row := r.pool.QueryRow(ctx, `SELECT id, created_at FROM groups WHERE id = $1`, string(id))
	if err := row.Scan(&g.ID, &g.CreatedAt); err != nil {
		return entity.Group{}, wrap(err)
	}
	return g, nil
}

func (r *GroupRepository) GetMany(ctx context.Context, filter repo.Filter, options repo.Options) ([]entity.Group, error) {
	query := `SELECT id, created_at FROM groups`
	where, args, err := buildWhere(filter, groupColumns, 0)
	if err != nil {
		return nil, err
	}
	if where != "" {
		query += " WHERE " + where
	}
	tail, err := buildTail(options, groupColumns, "created_at")
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query+tail, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var groups []entity.Group
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.CreatedAt); err != nil {
			return nil, wrap(err)
		}
		groups = append(groups, g)
	}
	return groups, wrap(rows.Err())
}

func (r *GroupRepository) Save(ctx context.Context, group entity.Group) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO groups (id, created_at) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, string(group.ID), group.CreatedAt)
	return wrap(err)
}

func (r *GroupRepository) DeleteOne(ctx context.Context, id entity.GroupID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, string(id))
	return wrap(err)
}
