package component

import (
	"math"
	"strconv"
	"strings"
)

// SetProperty binds raw attribute to the node. Recognized style and variant
// attributes are matched case and whitespace insensitively, everything else
// is kept as custom property under its original key. Malformed numeric
// values never fail binding: they are replaced by documented defaults.
//
// Result is false only when name is blank. Kinds without style (TextBlock,
// LineBreak) accept and ignore attributes.
func (n *Node) SetProperty(name, value string) bool {
	key := normalizeName(name)
	if key == "" {
		return false
	}
	if n.Style == nil {
		return true
	}
	if n.Style.setCommon(key, value) {
		return true
	}
	if n.setVariant(key, value) {
		return true
	}
	n.Style.addCustomProperty(name, value)
	return true
}

func (s *Style) setCommon(key, value string) bool {
	switch key {
	case "font":
		s.FontFamily = value
	case "fontstyle", "fontweight":
		s.FontStyle = value
	case "fontsize":
		// 0 is "inherit"
		s.FontSize = parseFloat(value)
	case "align", "textalign":
		s.Align = value
	case "foreground", "color":
		s.Color = value
	case "lineheight":
		// NOTE: unlike font size, malformed line height becomes explicit 0
		// and not LineHeightUnset, so it overrides inherited value.
		s.LineHeight = parseInt(value)
	default:
		return false
	}
	return true
}

func (n *Node) setVariant(key, value string) bool {
	switch n.Kind {
	case KindTemplate:
		switch key {
		case "maxwidth":
			n.Template.MaxWidth = parseInt(value)
		case "margintop":
			n.Template.MarginTop = parseInt(value)
		case "marginbottom":
			n.Template.MarginBottom = parseInt(value)
		case "marginleft":
			n.Template.MarginLeft = parseInt(value)
		case "marginright":
			n.Template.MarginRight = parseInt(value)
		default:
			return false
		}
	case KindImage:
		switch key {
		case "source", "src":
			n.Image.Source = strings.TrimSpace(value)
		case "width":
			n.Image.Width = parseInt(value)
		case "height":
			n.Image.Height = parseInt(value)
		default:
			return false
		}
	case KindGrid:
		switch key {
		case "columnwidths":
			n.Grid.ColumnWidths = value
		case "borderstyle":
			n.Grid.BorderStyle = value
		case "borderwidth":
			n.Grid.BorderWidth = parseFloat(value)
		default:
			return false
		}
	case KindCell:
		switch key {
		case "column", "grid.column":
			n.Cell.Column = parseInt(value)
		case "columnspan", "grid.columnspan":
			n.Cell.ColumnSpan = parseInt(value)
		default:
			return false
		}
	case KindQRCode:
		switch key {
		case "text":
			n.Text = value
		case "width":
			n.QRCode.Width = parseInt(value)
		case "height":
			n.QRCode.Height = parseInt(value)
		default:
			return false
		}
	case KindData:
		if key != "text" {
			return false
		}
		n.Text = value
	case KindLine:
		switch key {
		case "style":
			n.Line.Style = value
		case "thickness":
			n.Line.Thickness = parseFloat(value)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func parseFloat(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseInt(value string) int {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return v
}
