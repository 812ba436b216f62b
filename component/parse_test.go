package component

import (
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

const receiptXML = `<Template MaxWidth="384" Font="Arial" FontSize="10">
	<!-- header -->
	<Image Source="logo.png" Width="120" Height="40"/>
	<Data Align="center" FontStyle="bold">Corner Shop</Data>
	<LineBreak/>
	<Grid ColumnWidths="3*1" Font="Courier New" barcode-type="none">
		<GridRow>
			<Cell Column="0">Coffee</Cell>
			<Cell Column="1" Align="right">2.50</Cell>
		</GridRow>
	</Grid>
	<Line Style="dash" Thickness="1"/>
	<Cells>
		<Cell><Data>Total</Data></Cell>
	</Cells>
	<QRCode Width="64" Height="64">https://example.com/r/1</QRCode>
</Template>`

func TestBuild_Receipt(t *testing.T) {
	root := mustBuild(t, receiptXML)

	if root.Kind != KindTemplate {
		t.Fatalf("expected template root, got %s", root.Kind)
	}
	if root.Template.MaxWidth != 384 || root.Style.FontFamily != "Arial" || root.Style.FontSize != 10 {
		t.Fatalf("unexpected root: %+v %+v", *root.Template, *root.Style)
	}

	wantKinds := []Kind{KindImage, KindData, KindLineBreak, KindGrid, KindLine, KindCells, KindQRCode}
	if len(root.Children) != len(wantKinds) {
		t.Fatalf("expected %d children, got %d:\n%s", len(wantKinds), len(root.Children), root)
	}
	for i, k := range wantKinds {
		if root.Children[i].Kind != k {
			t.Fatalf("child %d: expected %s, got %s", i, k, root.Children[i].Kind)
		}
	}

	img := root.Children[0]
	if img.Image.Source != "logo.png" || img.Image.Width != 120 || img.Image.Height != 40 {
		t.Fatalf("unexpected image: %+v", *img.Image)
	}

	data := root.Children[1]
	if data.Text != "Corner Shop" || len(data.Children) != 0 {
		t.Fatalf("expected data text to be folded, got text=%q children=%d", data.Text, len(data.Children))
	}

	if root.Children[2].Style != nil {
		t.Fatalf("linebreak must not carry style")
	}

	grid := root.Children[3]
	if got := grid.Grid.Columns(); len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Fatalf("unexpected columns: %v", got)
	}
	if v, ok := grid.Style.CustomProperty("barcode-type"); !ok || v != "none" {
		t.Fatalf("expected custom property, got %+v", grid.Style.CustomProperties)
	}
	row := grid.Children[0]
	if row.Kind != KindGridRow || len(row.Children) != 2 {
		t.Fatalf("unexpected row:\n%s", row)
	}
	cell := row.Children[1]
	if cell.Cell.Column != 1 || cell.Style.Align != "right" {
		t.Fatalf("unexpected cell: %+v %+v", *cell.Cell, *cell.Style)
	}
	if len(cell.Children) != 1 || cell.Children[0].Kind != KindTextBlock || cell.Children[0].Text != "2.50" {
		t.Fatalf("expected text block in cell:\n%s", cell)
	}

	if line := root.Children[4]; line.Line.Style != "dash" || line.Line.Thickness != 1 {
		t.Fatalf("unexpected line: %+v", *line.Line)
	}

	if qr := root.Children[6]; qr.Text != "https://example.com/r/1" || qr.QRCode.Width != 64 {
		t.Fatalf("unexpected qrcode: text=%q %+v", qr.Text, *qr.QRCode)
	}
}

func TestBuild_UnknownTag(t *testing.T) {
	el := mustElement(t, `<template><grid><gridrow><foo/></gridrow></grid></template>`)

	node, err := Build(el, testLogger(t))
	if err == nil {
		t.Fatalf("expected error, got tree:\n%s", node)
	}
	if node != nil {
		t.Fatalf("partial tree returned on error")
	}

	var unknown *UnknownTagError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTagError, got %T: %v", err, err)
	}
	if unknown.Tag != "foo" {
		t.Fatalf("expected tag foo, got %q", unknown.Tag)
	}

	var failure *ParseFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ParseFailure, got %T", err)
	}
	if got := strings.Join(failure.Path, "/"); got != "template/grid/gridrow/foo" {
		t.Fatalf("unexpected path %q", got)
	}
	if failure.Tag() != "foo" {
		t.Fatalf("unexpected failure tag %q", failure.Tag())
	}
	if !strings.Contains(err.Error(), `"foo"`) {
		t.Fatalf("error does not name the tag: %v", err)
	}
}

func TestBuild_NestedTemplate(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		path string
	}{
		{"direct child", `<template><template/></template>`, "template/template"},
		{"deep", `<template><grid><gridrow><cell><Template/></cell></gridrow></grid></template>`, "template/grid/gridrow/cell/Template"},
		{"under non-container", `<grid><data><template/></data></grid>`, "grid/data/template"},
		{"after valid siblings", `<template><data>x</data><line/><template><data/></template></template>`, "template/template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Build(mustElement(t, tt.xml), testLogger(t))
			if err == nil {
				t.Fatalf("expected error, got tree:\n%s", node)
			}
			var invalid *InvalidChildError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidChildError, got %T: %v", err, err)
			}
			var failure *ParseFailure
			if !errors.As(err, &failure) {
				t.Fatalf("expected ParseFailure, got %T", err)
			}
			if got := strings.Join(failure.Path, "/"); got != tt.path {
				t.Fatalf("path = %q, want %q", got, tt.path)
			}
		})
	}
}

func TestBuild_PrunedTokens(t *testing.T) {
	root := mustBuild(t, `<grid>
		<!-- comment -->
		<?render fast?>
		<gridrow>   </gridrow>
		<cell><![CDATA[raw <text>]]></cell>
	</grid>`)

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d:\n%s", len(root.Children), root)
	}
	if len(root.Children[0].Children) != 0 {
		t.Fatalf("whitespace must not produce text blocks:\n%s", root)
	}
	cell := root.Children[1]
	if len(cell.Children) != 1 {
		t.Fatalf("expected single CDATA block:\n%s", root)
	}
	if tb := cell.Children[0]; tb.Kind != KindTextBlock || tb.Text != "raw <text>" {
		t.Fatalf("unexpected CDATA block: %s %q", tb.Kind, tb.Text)
	}

	node, err := Build(etree.NewComment("just a comment"), testLogger(t))
	if err != nil || node != nil {
		t.Fatalf("comment root: node=%v err=%v", node, err)
	}
}

func TestBuild_TextBlockLeaf(t *testing.T) {
	node, err := Build(etree.NewText("Hello"), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if node.Kind != KindTextBlock || node.Text != "Hello" || node.Style != nil {
		t.Fatalf("unexpected text node: %+v", node)
	}
}

func TestBuild_NonContainerChildrenIgnored(t *testing.T) {
	root := mustBuild(t, `<cell><image source="a.png"><data>x</data>caption</image><data text="A">B</data></cell>`)

	img := root.Children[0]
	if len(img.Children) != 0 || img.Text != "" {
		t.Fatalf("image must not keep content: %+v", img)
	}
	if data := root.Children[1]; data.Text != "AB" {
		t.Fatalf("expected attribute and child text to combine, got %q", data.Text)
	}
}

func TestBuild_AttributeNames(t *testing.T) {
	root := mustBuild(t, `<GRID xmlns:x="urn:ext" FontSize="abc" LineHeight="abc" x:hint="1" Font="Tahoma"/>`)

	if root.Style.FontSize != 0 {
		t.Fatalf("expected unset font size, got %v", root.Style.FontSize)
	}
	if root.Style.LineHeight != 0 {
		t.Fatalf("expected explicit zero line height, got %d", root.Style.LineHeight)
	}
	if v, ok := root.Style.CustomProperty("x:hint"); !ok || v != "1" {
		t.Fatalf("expected prefixed custom property, got %+v", root.Style.CustomProperties)
	}
	if _, ok := root.Style.CustomProperty("xmlns:x"); !ok {
		t.Fatalf("expected namespace declaration to be retained, got %+v", root.Style.CustomProperties)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(nil, nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	if _, err := Parse(etree.NewDocument(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}

	doc := NewDocument()
	if err := doc.ReadFromString(`<?xml version="1.0"?><!-- top --><template><data>x</data></template>`); err != nil {
		t.Fatalf("read: %v", err)
	}
	root, err := Parse(doc, testLogger(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != KindTemplate || len(root.Children) != 1 {
		t.Fatalf("unexpected tree:\n%s", root)
	}
}

func TestLoad(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<template><data font=\"Caf\xe9\">Cr\xe8me</data></template>"

	_, root, err := Load(strings.NewReader(src), testLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	data := root.Children[0]
	if data.Text != "Crème" || data.Style.FontFamily != "Café" {
		t.Fatalf("charset not honoured: text=%q font=%q", data.Text, data.Style.FontFamily)
	}

	if _, _, err := Load(strings.NewReader(`<template><bogus/></template>`), nil); err == nil {
		t.Fatalf("expected error")
	} else {
		var unknown *UnknownTagError
		if !errors.As(err, &unknown) || unknown.Tag != "bogus" {
			t.Fatalf("expected wrapped UnknownTagError, got %v", err)
		}
	}

	if _, _, err := Load(strings.NewReader(``), nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestParseKind(t *testing.T) {
	for _, tag := range []string{"template", " Grid ", "GRIDROW", "QrCode", "lineBreak"} {
		if _, ok := ParseKind(tag); !ok {
			t.Fatalf("ParseKind(%q) failed", tag)
		}
	}
	for _, tag := range []string{"", "#text", "#comment", "text", "foo"} {
		if k, ok := ParseKind(tag); ok {
			t.Fatalf("ParseKind(%q) = %s, expected failure", tag, k)
		}
	}
	if KindTextBlock.Styleable() || KindLineBreak.Styleable() || !KindImage.Styleable() {
		t.Fatalf("unexpected styleable kinds")
	}
	if !KindCell.Container() || KindData.Container() || KindTextBlock.Container() {
		t.Fatalf("unexpected container kinds")
	}
	if Kind(100).String() != "unknown" {
		t.Fatalf("unexpected name for invalid kind")
	}
}
