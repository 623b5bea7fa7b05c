// Package evidence stores verification snapshot images on disk.
package evidence

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

// Store writes verification snapshots to a directory. Snapshots larger
// than maxEdge on their longest side are downscaled before writing.
type Store struct {
	dir     string
	maxEdge int
}

// NewStore creates an evidence store rooted at dir. The directory is
// created on first use, not here.
func NewStore(dir string, maxEdge int) *Store {
	return &Store{dir: dir, maxEdge: maxEdge}
}

// Save decodes a base64-encoded snapshot (raw or data-URL form),
// re-encodes it as JPEG, and writes it under the store directory.
// Returns the path of the written file.
func (s *Store) Save(playerID, imageData string) (string, error) {
	raw, err := decodeBase64Image(imageData)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode snapshot: %w", err)
	}

	img = downscale(img, s.maxEdge)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create evidence directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.jpg",
		playerID,
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
	)
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	return path, nil
}

// decodeBase64Image accepts both raw base64 and data URLs
// ("data:image/jpeg;base64,....").
func decodeBase64Image(data string) ([]byte, error) {
	if idx := strings.Index(data, ","); idx != -1 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode base64 snapshot: %w", err)
	}
	return raw, nil
}

// downscale resizes the image so its longest edge is at most maxEdge,
// preserving aspect ratio. Images already within bounds are returned
// unchanged.
func downscale(img image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	var newW, newH int
	if w >= h {
		newW = maxEdge
		newH = h * maxEdge / w
	} else {
		newH = maxEdge
		newW = w * maxEdge / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
