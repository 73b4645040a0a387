package ogimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Rasterize paints the scene into an RGBA image width pixels wide. The height
// keeps the scene's aspect ratio. Output depends only on the scene and width.
func Rasterize(s *Scene, width int) (*image.RGBA, error) {
	if s == nil || s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("ogimage: rasterize: empty scene")
	}
	if width <= 0 {
		return nil, fmt.Errorf("ogimage: rasterize: invalid width %d", width)
	}
	scale := float64(width) / s.Width
	height := scaledHeight(s.Width, s.Height, width)
	r := &rasterizer{
		dst:   image.NewRGBA(image.Rect(0, 0, width, height)),
		scale: scale,
		faces: make(map[faceKey]font.Face),
	}
	defer r.close()

	for i := 0; i < len(s.Ops); {
		switch op := s.Ops[i].(type) {
		case *FillOp:
			r.fill(op)
			i++
		case *GlyphRun:
			var runs []*GlyphRun
			for ; i < len(s.Ops); i++ {
				run, ok := s.Ops[i].(*GlyphRun)
				if !ok {
					break
				}
				runs = append(runs, run)
			}
			if err := r.text(runs); err != nil {
				return nil, fmt.Errorf("ogimage: rasterize: %w", err)
			}
		default:
			return nil, fmt.Errorf("ogimage: rasterize: unknown op %T", op)
		}
	}
	return r.dst, nil
}

// scaledHeight is the pixel height of a w×h canvas drawn width pixels wide.
func scaledHeight(w, h float64, width int) int {
	return int(math.Round(h * (float64(width) / w)))
}

// EncodePNG encodes img with fixed settings so equal images give equal bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("ogimage: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	font *sfnt.Font
	size float64
}

// rasterizer holds per-call state. opentype faces are not safe for
// concurrent use, so each Rasterize call owns its faces.
type rasterizer struct {
	dst   *image.RGBA
	scale float64
	faces map[faceKey]font.Face
}

func (r *rasterizer) close() {
	for _, f := range r.faces {
		f.Close()
	}
}

func (r *rasterizer) face(f *sfnt.Font, size float64) (font.Face, error) {
	key := faceKey{font: f, size: size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size * r.scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	r.faces[key] = face
	return face, nil
}

func (r *rasterizer) fill(op *FillOp) {
	g := op.Gradient
	if g == nil || len(g.Stops) == 0 {
		return
	}
	x0, y0 := op.Rect.X*r.scale, op.Rect.Y*r.scale
	w, h := op.Rect.W*r.scale, op.Rect.H*r.scale
	px := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x0+w)), int(math.Ceil(y0+h)),
	).Intersect(r.dst.Bounds())

	// CSS gradient line: through the center at Angle, long enough that the
	// corners land exactly on offsets 0 and 1.
	rad := g.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(w*dx) + math.Abs(h*dy)
	cx, cy := x0+w/2, y0+h/2

	for y := px.Min.Y; y < px.Max.Y; y++ {
		for x := px.Min.X; x < px.Max.X; x++ {
			t := 0.5
			if length > 0 {
				t = ((float64(x)+0.5-cx)*dx+(float64(y)+0.5-cy)*dy)/length + 0.5
			}
			blend(r.dst, x, y, g.at(t), op.Opacity)
		}
	}
}

func (g *LinearGradient) at(t float64) color.NRGBA {
	stops := g.Stops
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

func lerp(a, b color.NRGBA, f float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// blend composites c over the premultiplied pixel at (x, y).
func blend(dst *image.RGBA, x, y int, c color.NRGBA, opacity float64) {
	a := float64(c.A) / 255 * opacity
	if a <= 0 {
		return
	}
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	over := func(src float64, d uint8) uint8 {
		return uint8(math.Round(src*a + float64(d)*(1-a)))
	}
	p[0] = over(float64(c.R), p[0])
	p[1] = over(float64(c.G), p[1])
	p[2] = over(float64(c.B), p[2])
	p[3] = over(255, p[3])
}

func (r *rasterizer) dot(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(x * r.scale), Y: toFixed(y * r.scale)}
}

// text paints consecutive glyph runs. Every shadow goes down before any
// glyph, so a shadow never covers text of another line.
func (r *rasterizer) text(runs []*GlyphRun) error {
	for _, run := range runs {
		sh := run.Shadow
		if sh == nil || sh.Color.A == 0 {
			continue
		}
		face, err := r.face(run.Font, run.Size)
		if err != nil {
			return err
		}
		r.shadow(face, run)
	}
	for _, run := range runs {
		if err := r.glyphs(run); err != nil {
			return err
		}
	}
	return nil
}

func (r *rasterizer) glyphs(run *GlyphRun) error {
	if run.Color.A == 0 {
		return nil
	}
	face, err := r.face(run.Font, run.Size)
	if err != nil {
		return err
	}
	src := image.NewUniform(run.Color)
	for _, g := range run.Glyphs {
		dr, mask, mp, _, ok := face.Glyph(r.dot(run.X+g.X, run.Y), g.Rune)
		if !ok {
			continue
		}
		draw.DrawMask(r.dst, dr, src, image.Point{}, mask, mp, draw.Over)
	}
	return nil
}

// shadow draws the run offset by the shadow vector into a scratch layer,
// blurs it and composites it onto the canvas.
func (r *rasterizer) shadow(face font.Face, run *GlyphRun) {
	sh := run.Shadow
	offX, offY := run.X+sh.DX, run.Y+sh.DY

	// Glyph masks are reused between calls, so bounds and drawing are
	// separate passes.
	var bounds image.Rectangle
	for _, g := range run.Glyphs {
		dr, _, _, _, ok := face.Glyph(r.dot(offX+g.X, offY), g.Rune)
		if ok {
			bounds = bounds.Union(dr)
		}
	}
	if bounds.Empty() {
		return
	}
	sigma := sh.Blur / 2 * r.scale
	pad := int(math.Ceil(sigma*3)) + 1
	area := bounds.Inset(-pad)

	layer := image.NewNRGBA(area)
	src := image.NewUniform(sh.Color)
	for _, g := range run.Glyphs {
		dr, mask, mp, _, ok := face.Glyph(r.dot(offX+g.X, offY), g.Rune)
		if !ok {
			continue
		}
		draw.DrawMask(layer, dr, src, image.Point{}, mask, mp, draw.Over)
	}
	var blurred image.Image = layer
	if sigma > 0 {
		blurred = imaging.Blur(layer, sigma)
	}
	draw.Draw(r.dst, area, blurred, blurred.Bounds().Min, draw.Over)
}
