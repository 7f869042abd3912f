package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

var groupProfileColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type GroupProfileRepository struct {
	pool *pgxpool.Pool
}

func NewGroupProfileRepository(pool *pgxpool.Pool) *GroupProfileRepository {
	return &GroupProfileRepository{pool: pool}
}

func (r *GroupProfileRepository) GetOne(ctx context.Context, id entity.GroupID) (entity.GroupProfile, error) {
	var p entity.GroupProfile
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, display_name FROM group_profiles WHERE id = $1
	`, string(id))
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName); err != nil {
		return entity.GroupProfile{}, wrap(err)
	}
	return p, nil
}

func (r *GroupProfileRepository) GetOneByName(ctx context.Context, name entity.Name) (entity.GroupProfile, error) {
	var p entity.GroupProfile
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, display_name FROM group_profiles WHERE name = $1
	`, string(name))
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName); err != nil {
		return entity.GroupProfile{}, wrap(err)
	}
	return p, nil
}

func (r *GroupProfileRepository) GetMany(ctx context.Context, filter repo.Filter, options repo.Options) ([]entity.GroupProfile, error) {
	query := `SELECT id, name, display_name FROM group_profiles`
	where, args, err := buildWhere(filter, groupProfileColumns, 0)
	if err != nil {
		return nil, err
	}
	if where != "" {
		query += " WHERE " + where
	}
	tail, err := buildTail(options, groupProfileColumns, "name")
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query+tail, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var profiles []entity.GroupProfile
	for rows.Next() {
		var p entity.GroupProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName); err != nil {
			return nil, wrap(err)
		}
		profiles = append(profiles, p)
	}
	return profiles, wrap(rows.Err())
}

func (r *GroupProfileRepository) Save(ctx context.Context, profile entity.GroupProfile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO group_profiles (id, name, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			display_name = EXCLUDED.display_name
	`, string(profile.ID), string(profile.Name), string(profile.DisplayName))
	return wrap(err)
}

func (r *GroupProfileRepository) DeleteOne(ctx context.Context, id entity.GroupID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM group_profiles WHERE id = $1`, string(id))
	return wrap(err)
}
