package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

var userProfileColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"expires_at": "expires_at",
}

type UserProfileRepository struct {
	pool *pgxpool.Pool
}

func NewUserProfileRepository(pool *pgxpool.Pool) *UserProfileRepository {
	return &UserProfileRepository{pool: pool}
}

func (r *UserProfileRepository) GetOne(ctx context.Context, id entity.UserID) (entity.UserProfile, error) {
	var p entity.UserProfile
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, display_name, expires_at
		FROM user_profiles
		WHERE id = $1
	`, string(id))
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName, &p.ExpiresAt); err != nil {
		return entity.UserProfile{}, wrap(err)
	}
	return p, nil
}

func (r *UserProfileRepository) GetMany(ctx context.Context, filter repo.Filter, options repo.Options) ([]entity.UserProfile, error) {
	query := `SELECT id, name, display_name, expires_at FROM user_profiles`
	where, args, err := buildWhere(filter, userProfileColumns, 0)
	if err != nil {
		return nil, err
	}
	if where != "" {
		query += " WHERE " + where
	}
	tail, err := buildTail(options, userProfileColumns, "name")
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query+tail, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var profiles []entity.UserProfile
	for rows.Next() {
		var p entity.UserProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.ExpiresAt); err != nil {
			return nil, wrap(err)
		}
		profiles = append(profiles, p)
	}
	return profiles, wrap(rows.Err())
}

func (r *UserProfileRepository) Save(ctx context.Context, profile entity.UserProfile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_profiles (id, name, display_name, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			display_name = EXCLUDED.display_name,
			expires_at = EXCLUDED.expires_at
	`, string(profile.ID), string(profile.Name), string(profile.DisplayName), profile.ExpiresAt)
	return wrap(err)
}

func (r *UserProfileRepository) DeleteOne(ctx context.Context, id entity.UserID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, string(id))
	return wrap(err)
}
