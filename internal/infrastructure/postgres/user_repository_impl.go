package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

var userColumns = map[string]string{
	"id":         "id",
	"email":      "email",
	"created_at": "created_at",
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetOne(ctx context.Context, id entity.UserID) (entity.User, error) {
	var u entity.User
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1
	`, string(id))
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		return entity.User{}, wrap(err)
	}
	return u, nil
}

func (r *UserRepository) GetOneByEmail(ctx context.Context, email entity.Email) (entity.User, error) {
	var u entity.User
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, created_at
		FROM users
		WHERE email = $1
	`, string(email))
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		return entity.User{}, wrap(err)
	}
	return u, nil
}

func (r *UserRepository) GetMany(ctx context.Context, filter repo.Filter, options repo.Options) ([]entity.User, error) {
	query := `SELECT id, email, created_at FROM users`
	where, args, err := buildWhere(filter, userColumns, 0)
	if err != nil {
		return nil, err
	}
	if where != "" {
		query += " WHERE " + where
	}
	tail, err := buildTail(options, userColumns, "created_at")
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query+tail, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
			return nil, wrap(err)
		}
		users = append(users, u)
	}
	return users, wrap(rows.Err())
}

func (r *UserRepository) Save(ctx context.Context, user entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
	`, string(user.ID), string(user.Email), user.CreatedAt)
	return wrap(err)
}

func (r *UserRepository) DeleteOne(ctx context.Context, id entity.UserID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, string(id))
	return wrap(err)
}

func (r *UserRepository) DeleteMany(ctx context.Context, filter repo.Filter) error {
	where, args, err := buildWhere(filter, userColumns, 0)
	if err != nil {
		return err
	}
	query := `DELETE FROM users`
	if where != "" {
		query += " WHERE " + where
	}
	_, err = r.pool.Exec(ctx, query, args...)
	return wrap(err)
}
