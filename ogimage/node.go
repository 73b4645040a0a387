package ogimage

import "image/color"

// NodeKind tags a layout node.
type NodeKind int

const (
	NodeBox NodeKind = iota
	NodeText
)

// Direction is the flex main axis of a box.
type Direction int

const (
	Column Direction = iota
	Row
)

// Justify distributes free space along the main axis.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
)

// Align positions children on the cross axis.
type Align int

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Insets are per-edge distances in canvas pixels.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns equal insets on every edge.
func Uniform(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// ColorStop is one stop of a gradient; Offset is in [0, 1].
type ColorStop struct {
	Color  color.NRGBA
	Offset float64
}

// LinearGradient follows CSS linear-gradient: Angle is in degrees, 0 points
// up and 90 points right.
type LinearGradient struct {
	Angle float64
	Stops []ColorStop
}

// Shadow is a CSS text-shadow.
type Shadow struct {
	DX, DY, Blur float64
	Color        color.NRGBA
}

// Style is the subset of CSS the layout engine understands. Zero values mean
// "unset": typography fields inherit from the parent and Opacity 0 is read as 1.
type Style struct {
	Direction  Direction
	Justify    Justify
	Align      Align
	Grow       float64
	FillWidth  bool
	FillHeight bool
	Padding    Insets
	MarginTop  float64
	Background *LinearGradient

	Color      *color.NRGBA
	FontSize   float64
	FontWeight int
	LineHeight float64
	Opacity    float64
	TextShadow *Shadow
}

// Node is an element of the layout tree: a styled box or a text leaf.
type Node struct {
	Kind     NodeKind
	Style    Style
	Text     string
	Children []*Node
}

// Box returns a container node.
func Box(style Style, children ...*Node) *Node {
	return &Node{Kind: NodeBox, Style: style, Children: children}
}

// Text returns a text leaf.
func Text(style Style, s string) *Node {
	return &Node{Kind: NodeText, Style: style, Text: s}
}
