package application

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	repo "github.com/oksasatya/gadget-store-api/internal/domain/repository"
)

// ImageStore persists an uploaded image and returns the reference clients
// use to fetch it.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// ProductIndex keeps a search index in step with the catalog.
type ProductIndex interface {
	Index(ctx context.Context, p entity.Product) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Product, error)
}

// ImageUpload is an image file received with a catalog write.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProductInput holds the mutable product fields. Image is an external URL,
// used only when no file is uploaded.
type ProductInput struct {
	Name     string
	Category string
	Price    float64
	Desc     string
	Specs    string
	Image    string
}

func (in ProductInput) normalized() (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Desc = strings.TrimSpace(in.Desc)
	in.Specs = strings.TrimSpace(in.Specs)
	in.Image = strings.TrimSpace(in.Image)
	if in.Name == "" || in.Category == "" || in.Desc == "" || in.Specs == "" {
		return in, validationError("Name, category, description, and specs are required.")
	}
	if in.Price < 0 {
		return in, validationError("Price must not be negative.")
	}
	return in, nil
}

type CatalogService struct {
	Repo   repo.ProductRepository
	Images ImageStore
	Index  ProductIndex // optional
	Logger *logrus.Logger
}

func NewCatalogService(repo repo.ProductRepository, images ImageStore, index ProductIndex, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Repo: repo, Images: images, Index: index, Logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]entity.Product, error) {
	return s.Repo.List(ctx)
}

// Create stores a new product. An image is mandatory: either an upload or
// an external reference.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, upload *ImageUpload) (*entity.Product, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	image := in.Image
	if upload != nil {
		if image, err = s.saveImage(ctx, upload); err != nil {
			return nil, err
		}
	}
	if image == "" {
		return nil, ErrImageRequired
	}
	p := &entity.Product{
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Desc:     in.Desc,
		Specs:    in.Specs,
		Image:    image,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, *p)
	return p, nil
}

// Update replaces every mutable field of the product. The image is taken
// from the upload, else existingImage, else the stored value, so it is never
// cleared.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput, upload *ImageUpload, existingImage string) (*entity.Product, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	in, err = in.normalized()
	if err != nil {
		return nil, err
	}

	image := current.Image
	switch {
	case upload != nil:
		if image, err = s.saveImage(ctx, upload); err != nil {
			return nil, err
		}
	case strings.TrimSpace(existingImage) != "":
		image = strings.TrimSpace(existingImage)
	case in.Image != "":
		image = in.Image
	}

	p := &entity.Product{
		ID:        current.ID,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Desc:      in.Desc,
		Specs:     in.Specs,
		Image:     image,
		CreatedAt: current.CreatedAt,
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	s.index(ctx, *p)
	return p, nil
}

// Delete removes the product unconditionally. Orders that reference it keep
// their snapshots, and its image file is left in place for them.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("search index remove failed")
		}
	}
	return nil
}

// Search queries the product index; it returns an empty list when search is
// not configured.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]entity.Product, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.Product{}, nil
	}
	return s.Index.Search(ctx, strings.TrimSpace(q), size)
}

func (s *CatalogService) saveImage(ctx context.Context, upload *ImageUpload) (string, error) {
	if s.Images == nil {
		return "", errors.New("image storage not configured")
	}
	ref, err := s.Images.Save(ctx, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return "", err
	}
	return ref, nil
}

func (s *CatalogService) index(ctx context.Context, p entity.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", p.ID).Warn("search index update failed")
	}
}
