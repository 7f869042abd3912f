package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
)

// EmailVerificationDirectoryRepository replaces the challenge list on
// save; answering consumes a challenge, so the list shrinks as often
// as it grows.
type EmailVerificationDirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewEmailVerificationDirectoryRepository(pool *pgxpool.Pool) *EmailVerificationDirectoryRepository {
	return &EmailVerificationDirectoryRepository{pool: pool}
}

func (r *EmailVerificationDirectoryRepository) GetOne(ctx context.Context, id entity.UserID) (entity.EmailVerificationDirectory, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT true FROM email_verification_directories WHERE id = $1`, string(id)).Scan(&exists); err != nil {
		return entity.EmailVerificationDirectory{}, wrap(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, email, purpose, secret, expires_at
		FROM email_verification_challenges
		WHERE user_id = $1
		ORDER BY expires_at
	`, string(id))
	if err != nil {
		return entity.EmailVerificationDirectory{}, wrap(err)
	}
	defer rows.Close()

	directory := entity.EmailVerificationDirectory{ID: id}
	for rows.Next() {
		var c entity.EmailVerificationChallenge
		if err := rows.Scan(&c.ID, &c.UserID, &c.Email, &c.Purpose, &c.Secret, &c.ExpiresAt); err != nil {
			return entity.EmailVerificationDirectory{}, wrap(err)
		}
		directory.Challenges = append(directory.Challenges, c)
	}
	return directory, wrap(rows.Err())
}

func (r *EmailVerificationDirectoryRepository) Save(ctx context.Context, directory entity.EmailVerificationDirectory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO email_verification_directories (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, string(directory.ID)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM email_verification_challenges WHERE user_id = $1`, string(directory.ID)); err != nil {
		return wrap(err)
	}
	for _, c := range directory.Challenges {
		if _, err := tx.Exec(ctx, `
			INSERT INTO email_verification_challenges (id, user_id, email, purpose, secret, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, string(c.ID), string(c.UserID), string(c.Email), string(c.Purpose), string(c.Secret), c.ExpiresAt); err != nil {
			return wrap(err)
		}
	}
	return wrap(tx.Commit(ctx))
}

func (r *EmailVerificationDirectoryRepository) DeleteOne(ctx context.Context, id entity.UserID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, `DELETE FROM email_verification_challenges WHERE user_id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM email_verification_directories WHERE id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	return wrap(tx.Commit(ctx))
}
