package component

import (
	"fmt"
	"strconv"
	"strings"

	"tplprint/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns readable dump of the subtree with declared (not effective)
// attributes. It exists for debugging and reporting only.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.node(0, n)
	return tw.String()
}

// DumpStyles returns readable dump of the subtree with effective style of
// every node resolved from baseline.
func DumpStyles(root *Node, baseline EffectiveStyle) string {
	tw := treeWriter{debug.NewTreeWriter()}
	_ = Cascade(root, baseline, func(n *Node, style EffectiveStyle, depth int) error {
		if n.Kind == KindTextBlock {
			tw.TextBlock(depth, n.Name(), n.Text)
			return nil
		}
		tw.Line(depth, "%s %s", n.Name(), style)
		if n.Text != "" {
			tw.TextBlock(depth+1, KindTextBlock.String(), n.Text)
		}
		return nil
	})
	return tw.String()
}

// String formats effective style on a single line.
func (e EffectiveStyle) String() string {
	lh := "unset"
	if e.HasLineHeight() {
		lh = strconv.Itoa(e.LineHeight)
	}
	return fmt.Sprintf("font=%q style=%s size=%s lineheight=%s align=%s color=#%02x%02x%02x",
		e.FontFamily, e.FontStyle, strconv.FormatFloat(e.FontSize, 'f', -1, 64), lh, e.Align, e.Color.R, e.Color.G, e.Color.B)
}

func (tw treeWriter) node(depth int, n *Node) {
	if n.Kind == KindTextBlock {
		tw.TextBlock(depth, n.Name(), n.Text)
		return
	}

	tw.Attrs(depth, n.Name(), n.variantAttrs()...)
	if n.Style != nil {
		tw.style(depth+1, n.Style)
	}
	if n.Text != "" {
		tw.TextBlock(depth+1, "text", n.Text)
	}
	for _, child := range n.Children {
		tw.node(depth+1, child)
	}
}

func (tw treeWriter) style(depth int, s *Style) {
	lh := ""
	if s.LineHeight != LineHeightUnset {
		lh = strconv.Itoa(s.LineHeight)
	}
	size := ""
	if s.FontSize > 0 {
		size = formatFloat(s.FontSize)
	}
	if s.FontFamily != "" || s.FontStyle != "" || size != "" || lh != "" || s.Align != "" || s.Color != "" {
		tw.Attrs(depth, "style",
			"font", s.FontFamily,
			"fontstyle", s.FontStyle,
			"fontsize", size,
			"lineheight", lh,
			"align", s.Align,
			"color", s.Color,
		)
	}
	for i, p := range s.CustomProperties {
		tw.Line(depth, "custom[%d] %s=%q", i, p.Key, p.Value)
	}
}

func (n *Node) variantAttrs() []string {
	switch {
	case n.Template != nil:
		return []string{
			"maxwidth", formatInt(n.Template.MaxWidth),
			"margintop", formatInt(n.Template.MarginTop),
			"marginbottom", formatInt(n.Template.MarginBottom),
			"marginleft", formatInt(n.Template.MarginLeft),
			"marginright", formatInt(n.Template.MarginRight),
		}
	case n.Image != nil:
		return []string{
			"source", n.Image.Source,
			"width", formatInt(n.Image.Width),
			"height", formatInt(n.Image.Height),
		}
	case n.Grid != nil:
		return []string{
			"columnwidths", n.Grid.ColumnWidths,
			"columns", formatInts(n.Grid.Columns()),
			"borderstyle", formatDash(n.Grid.BorderStyle),
			"borderwidth", formatFloat(n.Grid.BorderWidth),
		}
	case n.Cell != nil:
		return []string{
			"column", formatInt(n.Cell.Column),
			"columnspan", formatInt(n.Cell.ColumnSpan),
		}
	case n.QRCode != nil:
		return []string{
			"width", formatInt(n.QRCode.Width),
			"height", formatInt(n.QRCode.Height),
		}
	case n.Line != nil:
		return []string{
			"style", formatDash(n.Line.Style),
			"thickness", formatFloat(n.Line.Thickness),
		}
	default:
		return nil
	}
}

// zero values are omitted from dumps
func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// declared dash styles are shown resolved
func formatDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return ParseDashStyle(v).String()
}
