package ogimage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(nil, opts...)
	require.NoError(t, err)
	return r
}

func TestRenderHelloWorld(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.Render(context.Background(), "Hello World", "A test post")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img := decode(t, data)
	assert.Equal(t, image.Rect(0, 0, 1200, 630), img.Bounds())
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	ctx := context.Background()

	a, err := r.Render(ctx, "Hello World", "A test post")
	require.NoError(t, err)
	b, err := r.Render(ctx, "Hello World", "A test post")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "renders of the same post differ")

	c, err := r.Render(ctx, "Hello World!", "A test post")
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, c))
}

func TestRenderDeterministicAcrossRenderers(t *testing.T) {
	asset := FontAsset{Name: "Custom", Data: gobold.TTF, Weight: 700}
	r1, err := NewRenderer([]FontAsset{asset})
	require.NoError(t, err)
	r2, err := NewRenderer([]FontAsset{asset})
	require.NoError(t, err)

	a, err := r1.Render(context.Background(), "Same", "Fonts")
	require.NoError(t, err)
	b, err := r2.Render(context.Background(), "Same", "Fonts")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderKeepsDimensions(t *testing.T) {
	r := newTestRenderer(t)
	titles := []string{
		"",
		"x",
		strings.Repeat("A very long title that keeps going ", 20),
		strings.Repeat("Supercalifragilisticexpialidocious", 10),
		strings.Repeat("數位轉型與人工智慧", 30),
	}
	for _, title := range titles {
		data, err := r.Render(context.Background(), title, strings.Repeat("desc ", 200))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 1200, 630), decode(t, data).Bounds())
	}
}

func TestRenderEmptyTitle(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.Render(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1200, decode(t, data).Bounds().Dx())
}

func TestRenderWithWidth(t *testing.T) {
	r := newTestRenderer(t, WithWidth(600))
	assert.Equal(t, 600, r.Width())

	data, err := r.Render(context.Background(), "Half size", "")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 600, 315), decode(t, data).Bounds())
}

func TestRenderDrawsTextAndGradient(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.Render(context.Background(), "Hello World", "A test post")
	require.NoError(t, err)
	img := decode(t, data)

	near := func(got uint32, want uint8) bool {
		d := int(got>>8) - int(want)
		return d >= -4 && d <= 4
	}
	r0, g0, b0, _ := img.At(0, 0).RGBA()
	assert.True(t, near(r0, 0x66) && near(g0, 0x7e) && near(b0, 0xea), "top-left should be the start color")
	r1, g1, b1, _ := img.At(1199, 629).RGBA()
	assert.True(t, near(r1, 0x76) && near(g1, 0x4b) && near(b1, 0xa2), "bottom-right should be the end color")

	// The gradient never gets close to white, so a white pixel is text.
	white := false
	for y := 0; y < 630 && !white; y++ {
		for x := 0; x < 1200; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 > 240 && g>>8 > 240 && b>>8 > 240 {
				white = true
				break
			}
		}
	}
	assert.True(t, white, "no text pixels found")
}

func TestRenderCanceled(t *testing.T) {
	r := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, "Hello", "World")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderBrand(t *testing.T) {
	a, err := newTestRenderer(t).Render(context.Background(), "T", "D")
	require.NoError(t, err)
	b, err := newTestRenderer(t, WithBrand(Brand{Name: "Other", Domain: "example.com"})).Render(context.Background(), "T", "D")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
