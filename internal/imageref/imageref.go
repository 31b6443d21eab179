// Package imageref turns local image files into references that can be
// stored alongside tenant and property records.
package imageref

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest image DataURL will embed.
const MaxSize = 5 << 20

// ErrNotImage is returned for files whose content is not an image.
var ErrNotImage = errors.New("not an image")

// DataURL reads the image at path and returns it as a base64 data URL.
// The MIME type comes from the file content, not its extension.
func DataURL(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > MaxSize {
		return "", fmt.Errorf("image %s is %d bytes, limit is %d", path, info.Size(), MaxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: %s is %s", ErrNotImage, path, mime.String())
	}

	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsReference reports whether s already looks like an image reference
// (a data URL or an http(s) link) rather than a local path.
func IsReference(s string) bool {
	return strings.HasPrefix(s, "data:image/") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://")
}

// Resolve returns s unchanged when it is already a reference and otherwise
// loads it as a local file.
func Resolve(s string) (string, error) {
	if s == "" || IsReference(s) {
		return s, nil
	}
	return DataURL(s)
}
