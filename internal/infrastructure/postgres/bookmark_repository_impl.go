package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
)

type BookmarkDirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkDirectoryRepository(pool *pgxpool.Pool) *BookmarkDirectoryRepository {
	return &BookmarkDirectoryRepository{pool: pool}
}

func (r *BookmarkDirectoryRepository) GetOne(ctx context.Context, id entity.UserID) (entity.BookmarkDirectory, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT true FROM bookmark_directories WHERE id = $1`, string(id)).Scan(&exists); err != nil {
		return entity.BookmarkDirectory{}, wrap(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_id, item_id, tag
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY item_id, tag
	`, string(id))
	if err != nil {
		return entity.BookmarkDirectory{}, wrap(err)
	}
	defer rows.Close()

	directory := entity.BookmarkDirectory{ID: id}
	for rows.Next() {
		var b entity.Bookmark
		if err := rows.Scan(&b.UserID, &b.ItemID, &b.Tag); err != nil {
			return entity.BookmarkDirectory{}, wrap(err)
		}
		directory.Bookmarks = append(directory.Bookmarks, b)
	}
	return directory, wrap(rows.Err())
}

func (r *BookmarkDirectoryRepository) Save(ctx context.Context, directory entity.BookmarkDirectory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO bookmark_directories (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, string(directory.ID)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1`, string(directory.ID)); err != nil {
		return wrap(err)
	}
	for _, b := range directory.Bookmarks {
		if _, err := tx.Exec(ctx, `
			INSERT INTO bookmarks (user_id, item_id, tag)
			VALUES ($1, $2, $3)
		`, string(b.UserID), string(b.ItemID), string(b.Tag)); err != nil {
			return wrap(err)
		}
	}
	return wrap(tx.Commit(ctx))
}

func (r *BookmarkDirectoryRepository) DeleteOne(ctx context.Context, id entity.UserID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookmark_directories WHERE id = $1`, string(id)); err != nil {
		return wrap(err)
	}
	return wrap(tx.Commit(ctx))
}
