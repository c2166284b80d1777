package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService prepares podcast cover art before it is written next to the
// episodes: scaled down to a maximum edge length and encoded as JPEG.
//
// Example usage:
//
//	svc := NewImageService()
//	artwork, _ := client.Get(ctx, podcast.ImageURL)
//	cover, err := svc.PrepareCover(ctx, artwork, 1000)
type ImageService struct {
	// Quality is the JPEG quality used for encoding.
	Quality int
}

// NewImageService creates a new ImageService encoding at quality 90.
func NewImageService() *ImageService {
	return &ImageService{Quality: 90}
}

// PrepareCover decodes data (JPEG, PNG or GIF), scales it so neither side
// exceeds maxSize pixels and returns it JPEG-encoded. A maxSize <= 0 keeps the
// original dimensions. The aspect ratio is preserved and images are never
// scaled up.
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)

	var out image.Image = img
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: s.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin returns the largest dimensions with the same aspect ratio as
// width x height whose longest side is at most maxSize.
func fitWithin(width, height, maxSize int) (int, int) {
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return width, height
	}
	if width >= height {
		h := height * maxSize / width
		if h < 1 {
			h = 1
		}
		return maxSize, h
	}
	w := width * maxSize / height
	if w < 1 {
		w = 1
	}
	return w, maxSize
}
