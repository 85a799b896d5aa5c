package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/memory"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	users := memory.NewUserStore()
	s := NewSeeder(users, memory.NewProductStore(), nil, testLogger())
	ctx := context.Background()

	require.NoError(t, s.SeedAdmin(ctx, " Admin@GadgetGalore.ph ", "Admin@12345"))
	require.NoError(t, s.SeedAdmin(ctx, "admin@gadgetgalore.ph", "ignored-second-time"))

	u, err := users.GetByEmail(ctx, "admin@gadgetgalore.ph")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, "System Admin", u.Name)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "Admin@12345"))
}

func TestSeedAdmin_PromotesExistingAccount(t *testing.T) {
	users := memory.NewUserStore()
	ctx := context.Background()
	hash, err := helpers.HashPassword("mine-123")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &entity.User{Name: "Owner", Email: "owner@shop.ph", Role: entity.RoleCustomer, Password: hash}))

	s := NewSeeder(users, memory.NewProductStore(), nil, testLogger())
	require.NoError(t, s.SeedAdmin(ctx, "owner@shop.ph", "Admin@12345"))

	u, err := users.GetByEmail(ctx, "owner@shop.ph")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, "Owner", u.Name)
	// existing password is kept
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "mine-123"))
}

func TestSeedAdmin_SetsMissingPassword(t *testing.T) {
	users := memory.NewUserStore()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{Name: "Legacy", Email: "legacy@shop.ph", Role: entity.RoleAdmin}))

	s := NewSeeder(users, memory.NewProductStore(), nil, testLogger())
	require.NoError(t, s.SeedAdmin(ctx, "legacy@shop.ph", "Admin@12345"))

	u, err := users.GetByEmail(ctx, "legacy@shop.ph")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "Admin@12345"))
}

func TestSeedCatalog_OnlyWhenEmpty(t *testing.T) {
	products := memory.NewProductStore()
	index := newFakeIndex()
	s := NewSeeder(memory.NewUserStore(), products, index, testLogger())
	ctx := context.Background()

	require.NoError(t, s.SeedCatalog(ctx))
	require.NoError(t, s.SeedCatalog(ctx))

	n, err := products.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultCatalog), n)
	assert.Len(t, index.indexed, len(DefaultCatalog))

	// the package-level defaults are never mutated
	for _, p := range DefaultCatalog {
		assert.Empty(t, p.ID)
	}
}

func TestSeedCatalog_SkipsNonEmptyCatalog(t *testing.T) {
	products := memory.NewProductStore()
	addProduct(t, products, "Existing", 1)
	s := NewSeeder(memory.NewUserStore(), products, nil, testLogger())

	require.NoError(t, s.SeedCatalog(context.Background()))
	n, err := products.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSeederRun_LogsFailures(t *testing.T) {
	s := NewSeeder(memory.NewUserStore(), memory.NewProductStore(), nil, testLogger())
	// empty credentials fail SeedAdmin, but Run must still seed the catalog
	s.Run(context.Background(), "", "", true)

	n, err := s.Products.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultCatalog), n)
}
