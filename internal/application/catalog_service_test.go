package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/memory"
)

type fakeImages struct {
	saved []string
	err   error
}

func (f *fakeImages) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.saved = append(f.saved, string(b))
	return "/uploads/stored-" + filename, nil
}

type fakeIndex struct {
	indexed map[string]entity.Product
	removed []string
	err     error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]entity.Product{}} }

func (f *fakeIndex) Index(_ context.Context, p entity.Product) error {
	f.indexed[p.ID] = p
	return f.err
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, q string, _ int) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.indexed {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func validInput() ProductInput {
	return ProductInput{Name: "SkyFold X1", Category: "Mobile", Price: 71999, Desc: "Foldable", Specs: "5G"}
}

func upload(name, body string) *ImageUpload {
	return &ImageUpload{Filename: name, ContentType: "image/png", Body: strings.NewReader(body)}
}

func TestCatalogCreate(t *testing.T) {
	images, index := &fakeImages{}, newFakeIndex()
	svc := NewCatalogService(memory.NewProductStore(), images, index, testLogger())

	p, err := svc.Create(context.Background(), validInput(), upload("a.png", "PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stored-a.png", p.Image)
	assert.Equal(t, []string{"PNGDATA"}, images.saved)
	assert.Contains(t, index.indexed, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCatalogCreate_ExternalImage(t *testing.T) {
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, nil, testLogger())
	in := validInput()
	in.Image = "https://cdn.example.com/a.jpg"

	p, err := svc.Create(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.jpg", p.Image)
}

func TestCatalogCreate_Validation(t *testing.T) {
	products := memory.NewProductStore()
	svc := NewCatalogService(products, &fakeImages{}, nil, testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput(), nil)
	require.ErrorIs(t, err, ErrImageRequired)
	assert.Equal(t, "Product image is required.", err.Error())

	missing := validInput()
	missing.Specs = " "
	_, err = svc.Create(ctx, missing, upload("a.png", "x"))
	assert.ErrorIs(t, err, ErrValidation)

	negative := validInput()
	negative.Price = -1
	_, err = svc.Create(ctx, negative, upload("a.png", "x"))
	assert.ErrorIs(t, err, ErrValidation)

	n, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogCreate_ImageStoreError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{err: boom}, nil, testLogger())

	_, err := svc.Create(context.Background(), validInput(), upload("a.png", "x"))
	assert.ErrorIs(t, err, boom)
}

func TestCatalogUpdate_ImageFallbacks(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, nil, testLogger())
	created, err := svc.Create(ctx, validInput(), upload("orig.png", "x"))
	require.NoError(t, err)

	changed := validInput()
	changed.Name = "SkyFold X2"
	changed.Price = 74999

	// nothing supplied: stored image kept
	p, err := svc.Update(ctx, created.ID, changed, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stored-orig.png", p.Image)
	assert.Equal(t, "SkyFold X2", p.Name)
	assert.Equal(t, 74999.0, p.Price)
	assert.Equal(t, created.CreatedAt, p.CreatedAt)

	// client-provided existing image wins over the stored one
	p, err = svc.Update(ctx, created.ID, changed, nil, "/uploads/other.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/other.png", p.Image)

	// a new upload wins over everything
	p, err = svc.Update(ctx, created.ID, changed, upload("new.png", "y"), "/uploads/other.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stored-new.png", p.Image)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/uploads/stored-new.png", list[0].Image)
}

func TestCatalogUpdate_NotFound(t *testing.T) {
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, nil, testLogger())

	_, err := svc.Update(context.Background(), "507f1f77bcf86cd799439011", validInput(), nil, "")
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, "App not found.", err.Error())
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()
	index := newFakeIndex()
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, index, testLogger())
	p, err := svc.Create(ctx, validInput(), upload("a.png", "x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Equal(t, []string{p.ID}, index.removed)

	err = svc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogIndexFailureDoesNotFailWrites(t *testing.T) {
	ctx := context.Background()
	index := newFakeIndex()
	index.err = errors.New("es down")
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, index, testLogger())

	p, err := svc.Create(ctx, validInput(), upload("a.png", "x"))
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, p.ID))
}

func TestCatalogList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, nil, testLogger())
	first, err := svc.Create(ctx, validInput(), upload("1.png", "x"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, validInput(), upload("2.png", "x"))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCatalogSearch(t *testing.T) {
	ctx := context.Background()

	disabled := NewCatalogService(memory.NewProductStore(), &fakeImages{}, nil, testLogger())
	res, err := disabled.Search(ctx, "sky", 10)
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	index := newFakeIndex()
	svc := NewCatalogService(memory.NewProductStore(), &fakeImages{}, index, testLogger())
	_, err = svc.Create(ctx, validInput(), upload("a.png", "x"))
	require.NoError(t, err)

	res, err = svc.Search(ctx, "  sky ", 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "SkyFold X1", res[0].Name)

	res, err = svc.Search(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}
