package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
