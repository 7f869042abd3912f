package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communehq/commune/internal/domain/entity"
	repo "github.com/communehq/commune/internal/domain/repository"
)

var templateColumns = map[string]string{
	"id":               "id",
	"name_in_singular": "name_in_singular",
	"name_in_plural":   "name_in_plural",
	"created_at":       "created_at",
}

type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

func (r *TemplateRepository) GetOne(ctx context.Context, id entity.TemplateID) (entity.Template, error) {
	var t entity.Template
	var schemaJSON []byte
	row := r.pool.QueryRow(ctx, `
		SELECT id, name_in_singular, name_in_plural, display_name, properties_schema, created_at
		FROM templates
		WHERE id = $1
	`, string(id))
	if err := row.Scan(&t.ID, &t.NameInSingular, &t.NameInPlural, &t.DisplayName, &schemaJSON, &t.CreatedAt); err != nil {
		return entity.Template{}, wrap(err)
	}
	if err := json.Unmarshal(schemaJSON, &t.PropertiesSchema); err != nil {
		return entity.Template{}, wrap(err)
	}
	return t, nil
}

func (r *TemplateRepository) GetMany(ctx context.Context, filter repo.Filter, options repo.Options) ([]entity.Template, error) {
	query := `SELECT id, name_in_singular, name_in_plural, display_name, properties_schema, created_at FROM templates`
	where, args, err := buildWhere(filter, templateColumns, 0)
	if err != nil {
		return nil, err
	}
	if where != "" {
		query += " WHERE " + where
	}
	tail, err := buildTail(options, templateColumns, "created_at")
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query+tail, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var templates []entity.Template
	for rows.Next() {
		var t entity.Template
		var schemaJSON []byte
		if err := rows.Scan(&t.ID, &t.NameInSingular, &t.NameInPlural, &t.DisplayName, &schemaJSON, &t.CreatedAt); err != nil {
			return nil, wrap(err)
		}
		if err := json.Unmarshal(schemaJSON, &t.PropertiesSchema); err != nil {
			return nil, wrap(err)
		}
		templates = append(templates, t)
	}
	return templates, wrap(rows.Err())
}

func (r *TemplateRepository) Save(ctx context.Context, template entity.Template) error {
	schemaJSON, err := json.Marshal(template.PropertiesSchema)
	if err != nil {
		return wrap(err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO templates (id, name_in_singular, name_in_plural, display_name, properties_schema, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name_in_singular = EXCLUDED.name_in_singular,
			name_in_plural = EXCLUDED.name_in_plural,
			display_name = EXCLUDED.display_name,
			properties_schema = EXCLUDED.properties_schema
	`, string(template.ID), string(template.NameInSingular), string(template.NameInPlural), string(template.DisplayName), schemaJSON, template.CreatedAt)
	return wrap(err)
}

func (r *TemplateRepository) DeleteOne(ctx context.Context, id entity.TemplateID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, string(id))
	return wrap(err)
}

var itemColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"template":   "template_id",
	"created_by": "created_by",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func scanItem(row interface{ Scan(...any) error }) (entity.Item, error) {
	var i entity.Item
	var propsJSON []byte
	if err := row.Scan(&i.ID, &i.Title, &i.TitleForURL, &i.Template, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy, &propsJSON); err != nil {
		return entity.Item{}, wrap(err)
	}
	if err := json.Unmarshal(propsJSON, &i.Properties); err != nil {
		return entity.Item{}, wrap(err)
	}
	return i, nil
}

const itemSelect = `SELECT id, title, title_for_url, template_id, created_at, updated_at, created_by, properties FROM items`

func (r *ItemRepository) GetOne(ctx context.Context, id entity.ItemID) (entity.Item, error) {
	return scanItem(r.pool.QueryRow(ctx, itemSelect+` WHERE id = $1`, string(id)))
}

func (r *ItemRepository) GetMany(ctx context.Context, filter repo.Filter, options repo.Options) ([]entity.Item, error) {
	query := itemSelect
	where, args, err := buildWhere(filter, itemColumns, 0)
	if err != nil {
		return nil, err
	}
	if where != "" {
		query += " WHERE " + where
	}
	tail, err := buildTail(options, itemColumns, "created_at")
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query+tail, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, wrap(rows.Err())
}

func (r *ItemRepository) Save(ctx context.Context, item entity.Item) error {
	propsJSON, err := json.Marshal(item.Properties)
	if err != nil {
		return wrap(err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO items (id, title, title_for_url, template_id, created_at, updated_at, created_by, properties)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			title_for_url = EXCLUDED.title_for_url,
			updated_at = EXCLUDED.updated_at,
			properties = EXCLUDED.properties
	`, string(item.ID), string(item.Title), item.TitleForURL, string(item.Template), item.CreatedAt, item.UpdatedAt, string(item.CreatedBy), propsJSON)
	return wrap(err)
}

func (r *ItemRepository) DeleteOne(ctx context.Context, id entity.ItemID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, string(id))
	return wrap(err)
}

func (r *ItemRepository) DeleteMany(ctx context.Context, filter repo.Filter) error {
	where, args, err := buildWhere(filter, itemColumns, 0)
	if err != nil {
		return err
	}
	query := `DELETE FROM items`
	if where != "" {
		query += " WHERE " + where
	}
	_, err = r.pool.Exec(ctx, query, args...)
	return wrap(err)
}
