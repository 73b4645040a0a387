package ogimage

import "context"

// Renderer turns a title and description into a PNG preview. Fonts are parsed
// once in NewRenderer; Render is safe for concurrent use.
type Renderer struct {
	fonts *FontSet
	brand Brand
	width int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBrand sets the footer identity.
func WithBrand(b Brand) Option {
	return func(r *Renderer) {
		r.brand = b
	}
}

// WithWidth sets the output width in pixels. Layout always happens on the
// 1200×630 canvas and is scaled to this width.
func WithWidth(w int) Option {
	return func(r *Renderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// NewRenderer parses the given fonts. Disabled assets are ignored.
func NewRenderer(assets []FontAsset, opts ...Option) (*Renderer, error) {
	fonts, err := NewFontSet(assets...)
	if err != nil {
		return nil, err
	}
	r := &Renderer{fonts: fonts, brand: DefaultBrand, width: CanvasWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Fonts returns the renderer's font set.
func (r *Renderer) Fonts() *FontSet {
	return r.fonts
}

// Width returns the output width in pixels.
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the output height in pixels, as produced by Render.
func (r *Renderer) Height() int {
	return scaledHeight(CanvasWidth, CanvasHeight, r.width)
}

// Render composes, lays out and rasterizes one preview image.
func (r *Renderer) Render(ctx context.Context, title, description string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scene, err := Layout(r.brand.Compose(title, description), CanvasWidth, CanvasHeight, r.fonts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := Rasterize(scene, r.width)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}
