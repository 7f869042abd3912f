package repository

import (
	"context"

	"github.com/communehq/commune/internal/domain/entity"
)

type TemplateRepository interface {
	GetOne(ctx context.Context, id entity.TemplateID) (entity.Template, error)
	GetMany(ctx context.Context, filter Filter, options Options) ([]entity.Template, error)
	Save(ctx context.Context, template entity.Template) error
	DeleteOne(ctx context.Context, id entity.TemplateID) error
}

type ItemRepository interface {
	GetOne(ctx context.Context, id entity.ItemID) (entity.Item, error)
	GetMany(ctx context.Context, filter Filter, options Options) ([]entity.Item, error)
	Save(ctx context.Context, item entity.Item) error
	DeleteOne(ctx context.Context, id entity.ItemID) error
	DeleteMany(ctx context.Context, filter Filter) error
}
