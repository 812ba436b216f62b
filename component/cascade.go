package component

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// FontStyle is resolved font style.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
	FontItalic
	FontUnderline
	FontStrikeout
)

func (f FontStyle) String() string {
	switch f {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontUnderline:
		return "underline"
	case FontStrikeout:
		return "strikeout"
	default:
		return "regular"
	}
}

// ParseFontStyle maps font style text to FontStyle, unknown text is regular.
func ParseFontStyle(s string) FontStyle {
	switch normalizeName(s) {
	case "bold":
		return FontBold
	case "italic":
		return FontItalic
	case "underline":
		return FontUnderline
	case "strikeout":
		return FontStrikeout
	default:
		return FontRegular
	}
}

// Alignment is resolved horizontal text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment maps alignment text to Alignment, unknown text is left.
func ParseAlignment(s string) Alignment {
	switch normalizeName(s) {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// DashStyle is resolved style of lines and borders.
type DashStyle int

const (
	DashSolid DashStyle = iota
	DashDash
	DashDot
	DashDashDot
	DashDashDotDot
)

func (d DashStyle) String() string {
	switch d {
	case DashDash:
		return "dash"
	case DashDot:
		return "dot"
	case DashDashDot:
		return "dashdot"
	case DashDashDotDot:
		return "dashdotdot"
	default:
		return "solid"
	}
}

// ParseDashStyle maps dash style text to DashStyle, unknown text is solid.
func ParseDashStyle(s string) DashStyle {
	switch normalizeName(s) {
	case "dash":
		return DashDash
	case "dot":
		return DashDot
	case "dashdot":
		return DashDashDot
	case "dashdotdot":
		return DashDashDotDot
	default:
		return DashSolid
	}
}

// DefaultColor is used for anything which could not be recognized as color.
var DefaultColor = colornames.Black

var namedColors = map[string]color.RGBA{
	"red":     colornames.Red,
	"green":   colornames.Green,
	"blue":    colornames.Blue,
	"yellow":  colornames.Yellow,
	"orange":  colornames.Orange,
	"purple":  colornames.Purple,
	"pink":    colornames.Pink,
	"black":   colornames.Black,
	"white":   colornames.White,
	"gray":    colornames.Gray,
	"brown":   colornames.Brown,
	"cyan":    colornames.Cyan,
	"magenta": colornames.Magenta,
}

// ParseColor maps color text to RGBA. Accepts "#RRGGBB" and a fixed set of
// color names, anything else is DefaultColor.
func ParseColor(s string) color.RGBA {
	code := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(code, "#") && len(code) == 7 {
		// Hex() scanning is lenient about trailing garbage
		if strings.TrimLeft(code[1:], "0123456789abcdef") != "" {
			return DefaultColor
		}
		c, err := colorful.Hex(code)
		if err != nil {
			return DefaultColor
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	if c, ok := namedColors[code]; ok {
		return c
	}
	return DefaultColor
}

// EffectiveStyle is fully resolved style of a node: its own declarations
// merged over the effective style of its parent.
type EffectiveStyle struct {
	FontFamily string
	FontStyle  FontStyle
	FontSize   float64
	// LineHeight is LineHeightUnset unless some node on the path declared it.
	LineHeight int
	Align      Alignment
	Color      color.RGBA
}

// NewEffectiveStyle returns style with nothing inherited: regular, left
// aligned, default color, no font family, size or line height.
func NewEffectiveStyle() EffectiveStyle {
	return EffectiveStyle{LineHeight: LineHeightUnset, Color: DefaultColor}
}

// HasLineHeight reports whether line height was declared anywhere on the
// path to the node.
func (e EffectiveStyle) HasLineHeight() bool {
	return e.LineHeight != LineHeightUnset
}

// Resolve computes effective style of the node given effective style of its
// parent (or baseline for the root). Nodes without style inherit everything.
// The node is not modified.
func Resolve(n *Node, inherited EffectiveStyle) EffectiveStyle {
	if n == nil || n.Style == nil {
		return inherited
	}
	s, eff := n.Style, inherited
	if declared(s.FontFamily) {
		eff.FontFamily = s.FontFamily
	}
	if declared(s.FontStyle) {
		eff.FontStyle = ParseFontStyle(s.FontStyle)
	}
	if s.FontSize > 0 {
		eff.FontSize = s.FontSize
	}
	if s.LineHeight != LineHeightUnset {
		eff.LineHeight = s.LineHeight
	}
	if declared(s.Align) {
		eff.Align = ParseAlignment(s.Align)
	}
	if declared(s.Color) {
		eff.Color = ParseColor(s.Color)
	}
	return eff
}

// declared reports whether optional text attribute carries a value, blank
// text is the same as absent attribute.
func declared(v string) bool {
	return strings.TrimSpace(v) != ""
}

// VisitFunc receives every node together with its effective style and depth
// (root is 0).
type VisitFunc func(n *Node, style EffectiveStyle, depth int) error

// Cascade walks tree top-down resolving each node against effective style
// of its parent and calls visit for every node in document order. Walk stops
// on the first error returned by visit.
func Cascade(root *Node, baseline EffectiveStyle, visit VisitFunc) error {
	if root == nil {
		return nil
	}
	return cascade(root, baseline, 0, visit)
}

func cascade(n *Node, inherited EffectiveStyle, depth int, visit VisitFunc) error {
	eff := Resolve(n, inherited)
	if err := visit(n, eff, depth); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := cascade(child, eff, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}
