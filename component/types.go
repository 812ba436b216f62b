// Package component defines typed model of print templates: a closed set of
// component variants built from markup, their inheritable style attributes
// and the cascade resolving effective style of every node.
package component

import (
	"math"
	"strconv"
	"strings"
)

// LineHeightUnset marks line height which was not declared on a node. Zero is
// a legitimate (tight) line height and cannot be used for that.
const LineHeightUnset = math.MinInt32

// CustomProperty is an attribute not recognized by the style schema, kept
// verbatim for backend specific extensions.
type CustomProperty struct {
	Key   string
	Value string
}

// Style is the set of inheritable attributes declared directly on a node.
// Empty strings, non-positive FontSize and LineHeightUnset mean "not
// declared here".
type Style struct {
	FontFamily string
	FontStyle  string
	FontSize   float64
	LineHeight int
	Align      string
	Color      string

	// order is preserved, duplicate keys are allowed
	CustomProperties []CustomProperty
}

// NewStyle returns style with nothing declared.
func NewStyle() *Style {
	return &Style{LineHeight: LineHeightUnset}
}

// CustomProperty returns value of the first custom property with the given
// key (exact match).
func (s *Style) CustomProperty(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, p := range s.CustomProperties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (s *Style) addCustomProperty(key, value string) {
	s.CustomProperties = append(s.CustomProperties, CustomProperty{Key: key, Value: value})
}

type TemplateProps struct {
	MaxWidth     int
	MarginTop    int
	MarginBottom int
	MarginLeft   int
	MarginRight  int
}

type ImageProps struct {
	Source string
	Width  int
	Height int
}

type GridProps struct {
	// ColumnWidths is relative column sizing, for example "2*1*3".
	ColumnWidths string
	BorderStyle  string
	BorderWidth  float64
}

// Columns returns relative column widths. Malformed and non-positive entries
// are skipped.
func (g *GridProps) Columns() []int {
	if g == nil || strings.TrimSpace(g.ColumnWidths) == "" {
		return nil
	}
	var cols []int
	for _, part := range strings.FieldsFunc(g.ColumnWidths, func(r rune) bool {
		return r == '*' || r == ','
	}) {
		if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && v > 0 {
			cols = append(cols, v)
		}
	}
	return cols
}

type CellProps struct {
	Column     int
	ColumnSpan int
}

type QRCodeProps struct {
	Width  int
	Height int
}

type LineProps struct {
	Style     string
	Thickness float64
}

// Node is a single component of the template tree. Kind selects which of the
// optional parts are present: Style is nil for TextBlock and LineBreak,
// Children is only populated for container kinds and exactly one of the
// variant specific property structures matching Kind may be non-nil.
type Node struct {
	Kind     Kind
	Style    *Style
	Children []*Node

	// Text is the literal of TextBlock and payload of Data and QRCode.
	Text string

	Template *TemplateProps
	Image    *ImageProps
	Grid     *GridProps
	Cell     *CellProps
	QRCode   *QRCodeProps
	Line     *LineProps
}

// NewNode allocates node of requested kind with nothing declared.
func NewNode(kind Kind) *Node {
	n := &Node{Kind: kind}
	if kind.Styleable() {
		n.Style = NewStyle()
	}
	switch kind {
	case KindTemplate:
		n.Template = &TemplateProps{}
	case KindImage:
		n.Image = &ImageProps{}
	case KindGrid:
		n.Grid = &GridProps{}
	case KindCell:
		n.Cell = &CellProps{}
	case KindQRCode:
		n.QRCode = &QRCodeProps{}
	case KindLine:
		n.Line = &LineProps{}
	}
	return n
}

// NewTextBlock creates leaf carrying literal text.
func NewTextBlock(text string) *Node {
	return &Node{Kind: KindTextBlock, Text: text}
}

// Name returns the element name of the node kind.
func (n *Node) Name() string {
	return n.Kind.String()
}

// addChild attaches child node. Callers are expected to check structural
// rules first.
func (n *Node) addChild(child *Node) {
	n.Children = append(n.Children, child)
}
