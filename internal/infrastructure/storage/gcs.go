package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

const gcsProductPrefix = "products"

// GCSImageStore uploads images to a bucket and returns their public URLs.
type GCSImageStore struct {
	Client   *storage.Client
	Bucket   string
	MaxBytes int64
}

func NewGCSImageStore(client *storage.Client, bucket string, maxBytes int64) *GCSImageStore {
	return &GCSImageStore{Client: client, Bucket: bucket, MaxBytes: maxBytes}
}

func (s *GCSImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, ObjectPath(filename), contentType, r, s.MaxBytes)
}

// ObjectPath names the object for an uploaded file: products/<uuid><ext>.
func ObjectPath(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return gcsProductPrefix + "/" + uuid.NewString() + ext
}
