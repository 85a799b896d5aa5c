package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/domain/repository"
)

func TestUserStore(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	u := &entity.User{Name: "A", Email: "a@x.io", Password: "hash"}
	require.NoError(t, s.Create(ctx, u))
	assert.Len(t, u.ID, 24)
	assert.Equal(t, entity.RoleCustomer, u.Role)

	err := s.Create(ctx, &entity.User{Name: "B", Email: "a@x.io"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := s.GetByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.Role = entity.RoleAdmin
	require.NoError(t, s.Update(ctx, got))
	again, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, again.Role)

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &entity.User{ID: "missing"}), repository.ErrNotFound)
}

func TestProductStore_FindByIDs(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()
	a := &entity.Product{Name: "A"}
	b := &entity.Product{Name: "B"}
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))

	got, err := s.FindByIDs(ctx, []string{a.ID, "nope", a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductStore_CRUD(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	batch := []entity.Product{{Name: "A"}, {Name: "B"}}
	require.NoError(t, s.CreateMany(ctx, batch))
	assert.NotEmpty(t, batch[0].ID)
	assert.NotEqual(t, batch[0].ID, batch[1].ID)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", list[0].Name)

	upd := batch[0]
	upd.Price = 9
	require.NoError(t, s.Update(ctx, &upd))
	got, err := s.GetByID(ctx, upd.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.Price)
	assert.Equal(t, batch[0].CreatedAt, got.CreatedAt)

	require.NoError(t, s.Delete(ctx, upd.ID))
	assert.ErrorIs(t, s.Delete(ctx, upd.ID), repository.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &upd), repository.ErrNotFound)
}

func TestOrderStore_SnapshotIsolation(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	o := &entity.Order{Items: []entity.OrderItem{{Name: "A", Price: 1, Quantity: 1}}, TotalAmount: 1, Status: entity.OrderPending}
	require.NoError(t, s.Create(ctx, o))
	o.Items[0].Name = "mutated"

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Items[0].Name)

	list[0].Items[0].Name = "mutated again"
	updated, err := s.UpdateStatus(ctx, o.ID, entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, updated.Status)
	assert.Equal(t, "A", updated.Items[0].Name)

	_, err = s.UpdateStatus(ctx, "missing", entity.OrderCompleted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderStore_ConcurrentCreate(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Create(ctx, &entity.Order{Status: entity.OrderPending})
		}()
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
