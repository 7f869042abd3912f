package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
)

// UserAccountRepository stores the token list in a child table and
// replaces it wholesale on save; the account aggregate is small and
// immutable snapshots make diffing pointless.
type UserAccountRepository struct {
	pool *pgxpool.Pool
}

func NewUserAccountRepository(pool *pgxpool.Pool) *UserAccountRepository {
	return &UserAccountRepository{pool: pool}
}

func (r *UserAccountRepository) GetOne(ctx context.Context, id entity.UserID) (entity.UserAccount, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT true FROM user_accounts WHERE id = $1`, string(id)).Scan(&exists); err != nil {
		return entity.UserAccount{}, wrap(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, secret, created_at, expires_at, ip, user_agent
		FROM authentication_tokens
		WHERE user_id = $1
		ORDER BY created_at
	`, string(id))
	if err != nil {
		return entity.UserAccount{}, wrap(err)
	}
	defer rows.Close()

	account := entity.UserAccount{ID: id}
	for rows.Next() {
		var t entity.AuthenticationToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Secret, &t.CreatedAt, &t.ExpiresAt, &t.IP, &t.UserAgent); err != nil {
			return entity.UserAccount{}, wrap(err)
		}
		account.Tokens = append(account.Tokens, t)
	}
	return account, wrap(rows.Err())
}

func (r *UserAccountRepository) GetTokenBySecret(ctx context.Context, secret entity.LongSecret) (entity.AuthenticationToken, error) {
	var t entity.AuthenticationToken
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, secret, created_at, expires_at, ip, user_agent
		FROM authentication_tokens
		WHERE secret = $1
	`, string(secret))
	if err := row.Scan(&t.ID, &t.UserID, &t.Secret, &t.CreatedAt, &t.ExpiresAt, &t.IP, &t.UserAgent); err != nil {
		return entity.AuthenticationToken{}, wrap(err)
	}
	return t, nil
}

func (r *UserAccountRepository) Save(ctx context.Context, account entity.UserAccount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_accounts (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, string(account.ID)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM authentication_tokens WHERE user_id = $1`, string(account.ID)); err != nil {
		return wrap(err)
	}
	for _, t := range account.Tokens {
		if _, err := tx.Exec(ctx, `
			INSERT INTO authentication_tokens (id, user_id, secret, created_at, expires_at, ip, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, string(t.ID), string(t.UserID), string(t.Secret), t.CreatedAt, t.ExpiresAt, t.IP, t.UserAgent); err != nil {
			return wrap(err)
		}
	}
	return wrap(tx.Commit(ctx))
}

func (r *UserAccountRepository) DeleteOne(ctx context.Context, id entity.UserID) error {
	return deleteAccount(ctx, r.pool, id)
}

func deleteAccount(ctx context.Context, pool *pgxpool.Pool, id entity.UserID) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)
	if err := deleteAccountTx(ctx, tx, string(id)); err != nil {
		return err
	}
	return wrap(tx.Commit(ctx))
}

func deleteAccountTx(ctx context.Context, tx pgx.Tx, id string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM authentication_tokens WHERE user_id = $1`, id); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_accounts WHERE id = $1`, id); err != nil {
		return wrap(err)
	}
	return nil
}
