package helpers

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// ErrTooLarge is returned when an upload exceeds the configured size cap.
var ErrTooLarge = errors.New("file too large")

const defaultImageExt = ".jpg"

// UploadFilename builds a collision-resistant name from the current time in
// milliseconds and a random suffix, keeping the lowercased extension of
// original (".jpg" when it has none).
func UploadFilename(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = defaultImageExt
	}
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), rand.Int63n(1e9), ext)
}
