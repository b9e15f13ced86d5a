package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"
)

func TestProcessProducesSquareWebP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	p := &AvatarProcessor{Size: 64, Quality: 70}
	out, err := p.Process(&in)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Width)
	require.Equal(t, 64, cfg.Height)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := NewAvatarProcessor().Process(strings.NewReader("not an image"))
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestSquareCrop(t *testing.T) {
	require.Equal(t, image.Rect(100, 0, 300, 200), squareCrop(image.Rect(0, 0, 400, 200)))
	require.Equal(t, image.Rect(0, 50, 100, 150), squareCrop(image.Rect(0, 0, 100, 200)))
}
