package img

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func TestGenerateThumbnailFitsBox(t *testing.T) {
	src := createTestImage(t, 800, 600)

	res, err := GenerateThumbnail(src, Options{Width: 400, Quality: 85})
	if err != nil {
		t.Fatalf("GenerateThumbnail returned error: %v", err)
	}

	if res.Width > 400 || res.Height > 300 {
		t.Fatalf("unexpected thumbnail size: got %dx%d, want <=400x300", res.Width, res.Height)
	}
	if res.Size != len(res.Buffer) {
		t.Fatalf("size mismatch: %d != %d", res.Size, len(res.Buffer))
	}

	decoded, err := webp.Decode(bytes.NewReader(res.Buffer))
	if err != nil {
		t.Fatalf("output is not valid webp: %v", err)
	}
	if decoded.Bounds().Dx() != res.Width || decoded.Bounds().Dy() != res.Height {
		t.Fatalf("reported dimensions do not match encoded output")
	}
}

func TestGenerateThumbnailNoUpscale(t *testing.T) {
	src := createTestImage(t, 200, 100)

	res, err := GenerateThumbnail(src, Options{Width: 400, Quality: 85})
	if err != nil {
		t.Fatalf("GenerateThumbnail returned error: %v", err)
	}
	if res.Width != 200 || res.Height != 100 {
		t.Fatalf("source was upscaled: got %dx%d, want 200x100", res.Width, res.Height)
	}
}

func TestGenerateThumbnailCorruptInput(t *testing.T) {
	if _, err := GenerateThumbnail([]byte("not an image"), Options{Width: 400, Quality: 85}); err == nil {
		t.Fatal("expected error for corrupt input")
	}
}

func createTestImage(t *testing.T, w, h int) []byte {
	t.Helper()

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			canvas.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
