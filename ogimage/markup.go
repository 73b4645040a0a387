package ogimage

import "image/color"

// Canvas size of every preview image.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
)

// Brand is the site identity printed in the footer row of every image.
type Brand struct {
	Name   string
	Domain string
}

// DefaultBrand matches the site's published constants.
var DefaultBrand = Brand{Name: "Kulius Blog", Domain: "kulius.github.io"}

var (
	white         = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gradientStart = color.NRGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	gradientEnd   = color.NRGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff}
	titleShadow   = Shadow{DX: 2, DY: 2, Blur: 4, Color: color.NRGBA{A: 77}}
)

// Compose builds the preview layout for one post. Only title and description
// vary; sizes, colors and the gradient are fixed.
func (b Brand) Compose(title, description string) *Node {
	return Box(Style{
		Direction:  Column,
		FillWidth:  true,
		FillHeight: true,
		Padding:    Uniform(60),
		Background: &LinearGradient{
			Angle: 135,
			Stops: []ColorStop{{Color: gradientStart, Offset: 0}, {Color: gradientEnd, Offset: 1}},
		},
	},
		Box(Style{Direction: Column, Justify: JustifyCenter, Grow: 1, Color: &white},
			Text(Style{FontSize: 64, FontWeight: 700, LineHeight: 1.2, TextShadow: &titleShadow}, title),
			Text(Style{FontSize: 28, MarginTop: 24, Opacity: 0.9, LineHeight: 1.4}, description),
		),
		Box(Style{Direction: Row, Align: AlignCenter, Justify: JustifySpaceBetween, Color: &white},
			Text(Style{FontSize: 24, FontWeight: 700}, b.Name),
			Text(Style{FontSize: 20, Opacity: 0.8}, b.Domain),
		),
	)
}
