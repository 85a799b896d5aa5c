package repository

import (
	"context"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
)

// OrderRepository persists orders. Orders are never deleted.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// List returns all orders, newest first.
	List(ctx context.Context) ([]entity.Order, error)
	// UpdateStatus overwrites the status and returns the updated order.
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}
