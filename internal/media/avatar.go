// Package media normalizes uploaded client pictures.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultAvatarSize = 256
	MaxUploadBytes    = 5 << 20
	ContentTypeWebP   = "image/webp"
)

var (
	ErrTooLarge    = errors.New("media: upload too large")
	ErrUnsupported = errors.New("media: unsupported image")
)

// AvatarProcessor decodes an upload, fits it into a square and encodes it
// as webp.
type AvatarProcessor struct {
	Size    int
	Quality float32
}

func NewAvatarProcessor() *AvatarProcessor {
	return &AvatarProcessor{Size: DefaultAvatarSize, Quality: 80}
}

func (p *AvatarProcessor) Process(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupported
	}

	dst := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, squareCrop(src.Bounds()), draw.Over, nil)

	var out bytes.Buffer
	if err := webp.Encode(&out, dst, &webp.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

// squareCrop returns the centered square of b.
func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}
