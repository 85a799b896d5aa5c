package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/memory"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func addProduct(t *testing.T, store *memory.ProductStore, name string, price float64) entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:     name,
		Category: "Audio",
		Price:    price,
		Desc:     name + " desc",
		Specs:    name + " specs",
		Image:    "/uploads/" + name + ".jpg",
	}
	require.NoError(t, store.Create(context.Background(), p))
	return *p
}
