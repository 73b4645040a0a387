package ogimage

import (
	"fmt"
	"image/color"
	"math"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Scene is the vector result of layout: fills and positioned glyphs in canvas
// pixels. It can be rasterized at any width.
type Scene struct {
	Width, Height float64
	Ops           []Op
}

// Op is a drawing operation, either *FillOp or *GlyphRun.
type Op interface {
	isOp()
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// FillOp paints a rectangle with a gradient.
type FillOp struct {
	Rect     Rect
	Gradient *LinearGradient
	Opacity  float64
}

// Glyph is one rune of a run; X is its pen offset from the run origin.
type Glyph struct {
	Rune rune
	X    float64
}

// GlyphRun is a sequence of glyphs sharing a font, size and color, drawn from
// the baseline origin (X, Y).
type GlyphRun struct {
	Font   *sfnt.Font
	Size   float64
	X, Y   float64
	Glyphs []Glyph
	Color  color.NRGBA
	Shadow *Shadow
}

func (*FillOp) isOp()   {}
func (*GlyphRun) isOp() {}

// computed is the resolved, inherited style of a node.
type computed struct {
	color      color.NRGBA
	fontSize   float64
	weight     int
	lineHeight float64
	opacity    float64
	shadow     *Shadow
}

var rootStyle = computed{
	color:      color.NRGBA{A: 0xff},
	fontSize:   16,
	weight:     400,
	lineHeight: 1.2,
	opacity:    1,
}

func (c computed) child(s Style) computed {
	out := c
	if s.Color != nil {
		out.color = *s.Color
	}
	if s.FontSize > 0 {
		out.fontSize = s.FontSize
	}
	if s.FontWeight > 0 {
		out.weight = s.FontWeight
	}
	if s.LineHeight > 0 {
		out.lineHeight = s.LineHeight
	}
	if s.Opacity > 0 {
		out.opacity = c.opacity * s.Opacity
	}
	if s.TextShadow != nil {
		out.shadow = s.TextShadow
	}
	return out
}

// Layout resolves the tree rooted at root into a width×height scene.
func Layout(root *Node, width, height int, fonts *FontSet) (*Scene, error) {
	if root == nil {
		return nil, fmt.Errorf("ogimage: layout: nil root")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ogimage: layout: invalid canvas %dx%d", width, height)
	}
	l := &layouter{
		fonts: fonts,
		scene: &Scene{Width: float64(width), Height: float64(height)},
	}
	l.place(root, rootStyle.child(root.Style), Rect{W: float64(width), H: float64(height)})
	if l.err != nil {
		return nil, fmt.Errorf("ogimage: layout: %w", l.err)
	}
	return l.scene, nil
}

type layouter struct {
	fonts *FontSet
	buf   sfnt.Buffer
	scene *Scene
	err   error
}

type size struct {
	w, h float64
}

func (l *layouter) measure(n *Node, cs computed, maxW float64) size {
	if n.Kind == NodeText {
		lines := l.wrap(n.Text, cs, maxW)
		var w float64
		for _, ln := range lines {
			w = math.Max(w, ln.width)
		}
		return size{w: w, h: float64(len(lines)) * cs.fontSize * cs.lineHeight}
	}
	p := n.Style.Padding
	inner := maxW - p.Left - p.Right
	var w, h float64
	for _, c := range n.Children {
		s := l.measure(c, cs.child(c.Style), inner)
		if n.Style.Direction == Row {
			w += s.w
			h = math.Max(h, s.h+c.Style.MarginTop)
		} else {
			w = math.Max(w, s.w)
			h += s.h + c.Style.MarginTop
		}
	}
	w += p.Left + p.Right
	h += p.Top + p.Bottom
	if n.Style.FillWidth && !math.IsInf(maxW, 1) {
		w = maxW
	}
	return size{w: w, h: h}
}

type flexItem struct {
	node   *Node
	cs     computed
	main   float64
	cross  float64
	margin float64
}

func (l *layouter) place(n *Node, cs computed, r Rect) {
	if n.Kind == NodeText {
		l.emitText(n.Text, cs, r)
		return
	}
	if bg := n.Style.Background; bg != nil {
		l.scene.Ops = append(l.scene.Ops, &FillOp{Rect: r, Gradient: bg, Opacity: cs.opacity})
	}
	p := n.Style.Padding
	inner := Rect{X: r.X + p.Left, Y: r.Y + p.Top, W: r.W - p.Left - p.Right, H: r.H - p.Top - p.Bottom}
	row := n.Style.Direction == Row

	items := make([]flexItem, 0, len(n.Children))
	var used, grow float64
	for _, c := range n.Children {
		ccs := cs.child(c.Style)
		s := l.measure(c, ccs, inner.W)
		it := flexItem{node: c, cs: ccs, main: s.h, cross: s.w, margin: c.Style.MarginTop}
		if row {
			it.main, it.cross, it.margin = s.w, s.h, 0
		}
		used += it.main + it.margin
		grow += c.Style.Grow
		items = append(items, it)
	}

	mainSize, crossSize := inner.H, inner.W
	if row {
		mainSize, crossSize = inner.W, inner.H
	}
	free := mainSize - used
	if free > 0 && grow > 0 {
		for i := range items {
			items[i].main += free * items[i].node.Style.Grow / grow
		}
		free = 0
	}

	var pos, gap float64
	switch n.Style.Justify {
	case JustifyCenter:
		pos = free / 2
	case JustifyEnd:
		pos = free
	case JustifySpaceBetween:
		if free > 0 && len(items) > 1 {
			gap = free / float64(len(items)-1)
		}
	}

	for _, it := range items {
		pos += it.margin
		cross, off := it.cross, 0.0
		switch n.Style.Align {
		case AlignStretch:
			cross = crossSize
		case AlignCenter:
			off = (crossSize - cross) / 2
		case AlignEnd:
			off = crossSize - cross
		}
		cr := Rect{X: inner.X + off, Y: inner.Y + pos, W: cross, H: it.main}
		if row {
			cr = Rect{X: inner.X + pos, Y: inner.Y + off, W: it.main, H: cross}
		}
		l.place(it.node, it.cs, cr)
		pos += it.main + gap
	}
}

func (l *layouter) emitText(text string, cs computed, r Rect) {
	lines := l.wrap(text, cs, r.W)
	if len(lines) == 0 {
		return
	}
	cands := l.fonts.candidates(cs.weight, FontStyleNormal)
	ppem := toFixed(cs.fontSize)
	m, err := cands[0].Metrics(&l.buf, ppem, font.HintingNone)
	if err != nil {
		l.fail(err)
		return
	}
	ascent, descent := fromFixed(m.Ascent), fromFixed(m.Descent)
	lineH := cs.fontSize * cs.lineHeight
	baseline := (lineH-(ascent+descent))/2 + ascent

	col := cs.color
	col.A = uint8(math.Round(float64(col.A) * cs.opacity))
	var shadow *Shadow
	if cs.shadow != nil {
		s := *cs.shadow
		s.Color.A = uint8(math.Round(float64(s.Color.A) * cs.opacity))
		shadow = &s
	}

	for i, ln := range lines {
		y := r.Y + float64(i)*lineH + baseline
		var run *GlyphRun
		for _, g := range ln.glyphs {
			if run == nil || run.Font != g.font {
				run = &GlyphRun{Font: g.font, Size: cs.fontSize, X: r.X, Y: y, Color: col, Shadow: shadow}
				l.scene.Ops = append(l.scene.Ops, run)
			}
			run.Glyphs = append(run.Glyphs, Glyph{Rune: g.r, X: g.x})
		}
	}
}

func (l *layouter) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

type shapedRune struct {
	r    rune
	font *sfnt.Font
	adv  float64
}

type token struct {
	runes []shapedRune
	width float64
	space bool
}

type placedGlyph struct {
	r    rune
	font *sfnt.Font
	x    float64
}

type textLine struct {
	glyphs []placedGlyph
	width  float64
}

func (ln *textLine) add(sr shapedRune) {
	ln.glyphs = append(ln.glyphs, placedGlyph{r: sr.r, font: sr.font, x: ln.width})
	ln.width += sr.adv
}

// wrap breaks text into lines no wider than maxW. Whitespace collapses as in
// CSS "white-space: normal"; CJK characters are individual break points and a
// word wider than the line is broken between characters.
func (l *layouter) wrap(text string, cs computed, maxW float64) []textLine {
	cands := l.fonts.candidates(cs.weight, FontStyleNormal)
	tokens := l.tokenize(norm.NFC.String(text), cands, cs.fontSize)
	spaceW := l.shape(' ', cands, cs.fontSize).adv

	var lines []textLine
	var cur textLine
	for _, tk := range tokens {
		gap := 0.0
		if tk.space && len(cur.glyphs) > 0 {
			gap = spaceW
		}
		if len(cur.glyphs) > 0 && cur.width+gap+tk.width > maxW {
			lines = append(lines, cur)
			cur, gap = textLine{}, 0
		}
		if len(cur.glyphs) == 0 && tk.width > maxW {
			for _, sr := range tk.runes {
				if len(cur.glyphs) > 0 && cur.width+sr.adv > maxW {
					lines = append(lines, cur)
					cur = textLine{}
				}
				cur.add(sr)
			}
			continue
		}
		cur.width += gap
		for _, sr := range tk.runes {
			cur.add(sr)
		}
	}
	if len(cur.glyphs) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (l *layouter) tokenize(text string, cands []*sfnt.Font, size float64) []token {
	var (
		tokens  []token
		cur     token
		pending bool
	)
	flush := func() {
		if len(cur.runes) > 0 {
			tokens = append(tokens, cur)
		}
		cur = token{}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
			pending = true
		case breaksAnywhere(r):
			flush()
			sr := l.shape(r, cands, size)
			tokens = append(tokens, token{runes: []shapedRune{sr}, width: sr.adv, space: pending})
			pending = false
		default:
			if len(cur.runes) == 0 {
				cur.space = pending
				pending = false
			}
			sr := l.shape(r, cands, size)
			cur.runes = append(cur.runes, sr)
			cur.width += sr.adv
		}
	}
	flush()
	return tokens
}

// shape picks the first candidate font that has a glyph for r and measures it.
// Runes no font covers are drawn with the primary font's missing glyph.
func (l *layouter) shape(r rune, cands []*sfnt.Font, size float64) shapedRune {
	chosen, idx := cands[0], sfnt.GlyphIndex(0)
	for _, f := range cands {
		i, err := f.GlyphIndex(&l.buf, r)
		if err != nil {
			l.fail(err)
			continue
		}
		if i != 0 {
			chosen, idx = f, i
			break
		}
	}
	adv, err := chosen.GlyphAdvance(&l.buf, idx, toFixed(size), font.HintingNone)
	if err != nil {
		l.fail(err)
		return shapedRune{r: r, font: chosen}
	}
	return shapedRune{r: r, font: chosen, adv: fromFixed(adv)}
}

func breaksAnywhere(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303f) ||
		(r >= 0xff00 && r <= 0xffef)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
