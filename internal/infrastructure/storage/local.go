// Package storage holds the image stores used by the catalog.
package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

// LocalImageStore writes uploads into a directory served as static files.
type LocalImageStore struct {
	Dir        string
	PublicPath string
	MaxBytes   int64
	now        func() time.Time
}

func NewLocalImageStore(dir, publicPath string, maxBytes int64) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{Dir: dir, PublicPath: publicPath, MaxBytes: maxBytes, now: time.Now}, nil
}

// Save stores r under a fresh name and returns its public path, for example
// /uploads/1717171717171-123456789.png.
func (s *LocalImageStore) Save(ctx context.Context, filename, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := helpers.UploadFilename(filename, s.now())
	full := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, io.LimitReader(r, s.MaxBytes+1))
	if err == nil && n > s.MaxBytes {
		err = helpers.ErrTooLarge
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return path.Join("/", s.PublicPath, name), nil
}

// IsTooLarge reports whether err came from the size cap.
func IsTooLarge(err error) bool { return errors.Is(err, helpers.ErrTooLarge) }
