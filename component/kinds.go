package component

import "strings"

// Kind identifies component variant.
type Kind int

const (
	KindTemplate Kind = iota
	KindImage
	KindGrid
	KindGridRow
	KindCells
	KindCell
	KindQRCode
	KindData
	KindLine
	KindLineBreak
	KindTextBlock
)

var kindNames = [...]string{
	KindTemplate:  "template",
	KindImage:     "image",
	KindGrid:      "grid",
	KindGridRow:   "gridrow",
	KindCells:     "cells",
	KindCell:      "cell",
	KindQRCode:    "qrcode",
	KindData:      "data",
	KindLine:      "line",
	KindLineBreak: "linebreak",
	KindTextBlock: "#text",
}

// kindByTag maps normalized element names to variants. TextBlock is never
// produced from an element name, only from character data.
var kindByTag = map[string]Kind{
	"template":  KindTemplate,
	"image":     KindImage,
	"grid":      KindGrid,
	"gridrow":   KindGridRow,
	"cells":     KindCells,
	"cell":      KindCell,
	"qrcode":    KindQRCode,
	"data":      KindData,
	"line":      KindLine,
	"linebreak": KindLineBreak,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves element name to component kind. Name is trimmed and
// lower-cased before lookup.
func ParseKind(tag string) (Kind, bool) {
	k, ok := kindByTag[normalizeName(tag)]
	return k, ok
}

// Styleable reports whether nodes of this kind carry style attribute set.
func (k Kind) Styleable() bool {
	return k != KindTextBlock && k != KindLineBreak
}

// Container reports whether nodes of this kind own child nodes.
func (k Kind) Container() bool {
	switch k {
	case KindTemplate, KindGrid, KindGridRow, KindCells, KindCell:
		return true
	default:
		return false
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
