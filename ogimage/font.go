package ogimage

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Default font registered for every render when its file is readable.
const (
	DefaultFontPath   = "public/fonts/atkinson-bold.ttf"
	DefaultFontName   = "Atkinson"
	DefaultFontWeight = 700
)

// FontStyle is the CSS font-style of a FontAsset.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

func (s FontStyle) String() string {
	if s == FontStyleItalic {
		return "italic"
	}
	return "normal"
}

// FontAsset is raw font data plus the name, weight and style it is registered
// under. A zero-length Data is valid and means "not available".
type FontAsset struct {
	Name   string
	Data   []byte
	Weight int
	Style  FontStyle
}

// Enabled reports whether the asset carries font data.
func (a FontAsset) Enabled() bool {
	return len(a.Data) > 0
}

// LoadFont reads the bold site font at path. A file that cannot be read or
// parsed is logged and yields an asset with no data, so callers fall back to
// the built-in fonts. Only TrueType and OpenType files are accepted.
func LoadFont(path string, logger *slog.Logger) FontAsset {
	asset := FontAsset{Name: DefaultFontName, Weight: DefaultFontWeight, Style: FontStyleNormal}
	data, err := os.ReadFile(path)
	if err == nil {
		err = checkFont(data)
	}
	if err != nil {
		if logger != nil {
			logger.Warn("og font unavailable, using built-in fallback", "path", path, "error", err)
		}
		return asset
	}
	asset.Data = data
	return asset
}

// checkFont reports why data cannot be registered in a FontSet.
func checkFont(data []byte) error {
	if bytes.HasPrefix(data, []byte("wOFF")) || bytes.HasPrefix(data, []byte("wOF2")) {
		return errors.New("WOFF fonts are not supported, convert to TTF")
	}
	if _, err := opentype.Parse(data); err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	return nil
}

type registeredFont struct {
	name   string
	weight int
	style  FontStyle
	font   *sfnt.Font
}

// FontSet is a parsed, read-only set of fonts. It is safe for concurrent use.
type FontSet struct {
	custom   []registeredFont
	builtin  []registeredFont
	fallback bool
}

var builtinFonts = sync.OnceValues(func() ([]registeredFont, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go bold: %w", err)
	}
	return []registeredFont{
		{name: "Go", weight: 400, font: regular},
		{name: "Go", weight: 700, font: bold},
	}, nil
})

// NewFontSet parses every enabled asset. Assets without data are skipped;
// when none remain the set uses only the built-in Go fonts.
func NewFontSet(assets ...FontAsset) (*FontSet, error) {
	builtin, err := builtinFonts()
	if err != nil {
		return nil, fmt.Errorf("ogimage: %w", err)
	}
	fs := &FontSet{builtin: builtin}
	for _, a := range assets {
		if !a.Enabled() {
			continue
		}
		f, err := opentype.Parse(a.Data)
		if err != nil {
			return nil, fmt.Errorf("ogimage: parse font %q: %w", a.Name, err)
		}
		weight := a.Weight
		if weight == 0 {
			weight = 400
		}
		fs.custom = append(fs.custom, registeredFont{name: a.Name, weight: weight, style: a.Style, font: f})
	}
	fs.fallback = len(fs.custom) == 0
	return fs, nil
}

// Fallback reports whether no custom font was registered.
func (fs *FontSet) Fallback() bool {
	return fs.fallback
}

// Names lists the registered custom font names.
func (fs *FontSet) Names() []string {
	names := make([]string, 0, len(fs.custom))
	for _, f := range fs.custom {
		names = append(names, f.name)
	}
	return names
}

// candidates returns fonts in lookup order for the requested weight and
// style: custom fonts by closeness, then the built-in fonts by closeness.
func (fs *FontSet) candidates(weight int, style FontStyle) []*sfnt.Font {
	out := make([]*sfnt.Font, 0, len(fs.custom)+len(fs.builtin))
	for _, group := range [][]registeredFont{fs.custom, fs.builtin} {
		sorted := append([]registeredFont(nil), group...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return matchCost(sorted[i], weight, style) < matchCost(sorted[j], weight, style)
		})
		for _, f := range sorted {
			out = append(out, f.font)
		}
	}
	return out
}

func matchCost(f registeredFont, weight int, style FontStyle) int {
	d := f.weight - weight
	if d < 0 {
		d = -d
	}
	if f.style != style {
		d += 1000
	}
	return d
}
