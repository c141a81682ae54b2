package img

import (
	"bytes"
	"fmt"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

type Options struct {
	Width   int
	Quality int
}

type Result struct {
	Buffer []byte
	Width  int
	Height int
	Size   int
}

// GenerateThumbnail decodes src, fits it into a Width x Width bounding box
// (long edge capped at Width, aspect ratio preserved, no upscaling), and
// re-encodes the result as WEBP at the given quality.
func GenerateThumbnail(src []byte, opts Options) (*Result, error) {
	decoded, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	thumb := imaging.Fit(decoded, opts.Width, opts.Width, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: float32(opts.Quality)}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	b := thumb.Bounds()
	return &Result{
		Buffer: buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
		Size:   buf.Len(),
	}, nil
}
