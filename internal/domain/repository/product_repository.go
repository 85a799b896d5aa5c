package repository

import (
	"context"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
)

// ProductRepository persists catalog items.
type ProductRepository interface {
	// List returns all products, newest first.
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// FindByIDs resolves ids in a single lookup. Unknown or malformed ids are
	// absent from the result rather than an error.
	FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	CreateMany(ctx context.Context, ps []entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
