package evidence

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// encodeTestJPEG builds a base64-encoded JPEG of the given size.
func encodeTestJPEG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1280)

	path, err := store.Save("P1", encodeTestJPEG(t, 64, 48))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "P1_") {
		t.Errorf("expected filename to start with player ID, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected snapshot file to exist: %v", err)
	}
}

func TestStoreSaveDataURL(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1280)

	dataURL := "data:image/jpeg;base64," + encodeTestJPEG(t, 32, 32)
	if _, err := store.Save("P1", dataURL); err != nil {
		t.Fatalf("expected data URL to be accepted: %v", err)
	}
}

func TestStoreSaveDownscales(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 100)

	path, err := store.Save("P1", encodeTestJPEG(t, 400, 200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open snapshot: %v", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("expected 100x50 after downscale, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestStoreSaveInvalidInput(t *testing.T) {
	store := NewStore(t.TempDir(), 1280)

	tests := []struct {
		name string
		data string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"base64 but not an image", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Save("P1", tt.data); err == nil {
				t.Error("expected an error for invalid snapshot data")
			}
		})
	}
}

func TestStoreSaveUniqueFilenames(t *testing.T) {
	store := NewStore(t.TempDir(), 1280)
	data := encodeTestJPEG(t, 16, 16)

	p1, err := store.Save("P1", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := store.Save("P1", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 == p2 {
		t.Error("expected distinct filenames for repeated saves")
	}
}
