package main

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	fixzip "github.com/hidez8891/zip"

	"tplprint/state"
)

const receipt = `<?xml version="1.0" encoding="utf-8"?>
<template maxwidth="384">
	<image source="logo.png" width="120"/>
	<grid columnwidths="3*1" font="Font10">
		<gridrow>
			<cell>Coffee</cell>
			<cell align="right" font="Font2">2.50</cell>
		</gridrow>
		<gridrow>
			<cell font="font2" fontstyle="bold">Total</cell>
		</gridrow>
	</grid>
	<linebreak/>
	<data align="center">Thank you</data>
</template>
`

type fixture struct {
	dir      string
	config   string
	template string
	report   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		config:   filepath.Join(dir, "config.yaml"),
		template: filepath.Join(dir, "Receipt Form.xml"),
		report:   filepath.Join(dir, "report.zip"),
	}

	cfg := `version: 1
document:
  baseline:
    font: Courier
    font_size: 9
logging:
  console:
    level: none
  file:
    level: none
    destination: ` + filepath.Join(dir, "tplprint.log") + `
reporting:
  destination: ` + f.report + `
`
	if err := os.WriteFile(f.config, []byte(cfg), 0644); err != nil {
		t.Fatalf("unable to write config: %v", err)
	}
	if err := os.WriteFile(f.template, []byte(receipt), 0644); err != nil {
		t.Fatalf("unable to write template: %v", err)
	}
	if err := imaging.Save(imaging.New(3, 2, color.NRGBA{G: 255, A: 255}), filepath.Join(dir, "logo.png")); err != nil {
		t.Fatalf("unable to write image: %v", err)
	}
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(state.ContextWithEnv(context.Background()), append([]string{"tplprint"}, args...))
	return out.String(), err
}

func TestTree(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "--config", f.config, "tree", f.template)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	for _, want := range []string{"template maxwidth=384\n", "image source=logo.png width=120\n", "grid columnwidths=3*1 columns=3,1\n", "text: \"Thank you\"", "#text: \"Total\"", "linebreak\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output misses %q:\n%s", want, out)
		}
	}
}

func TestFonts(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "--config", f.config, "fonts", f.template)
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	if out != "Font2\nFont10\n" {
		t.Errorf("fonts = %q", out)
	}

	out, err = run(t, "--config", f.config, "fonts", "--all", f.template)
	if err != nil {
		t.Fatalf("fonts --all: %v", err)
	}
	if out != "Font10\nFont2\nfont2\n" {
		t.Errorf("fonts --all = %q", out)
	}
}

func TestStyles(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "--config", f.config, "styles", f.template)
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	for _, want := range []string{
		"template font=\"Courier\" style=regular size=9 lineheight=unset align=left color=#000000\n",
		"      cell font=\"font2\" style=bold size=9 ",
		"  data font=\"Courier\" style=regular size=9 lineheight=unset align=center ",
		"    #text: \"Thank you\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("styles output misses %q:\n%s", want, out)
		}
	}
}

func TestAssets(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "--config", f.config, "assets", f.template)
	if err != nil {
		t.Fatalf("assets: %v", err)
	}
	if !strings.Contains(out, "\"logo.png\"\timage/png\t3x2\tcolor\t") {
		t.Errorf("unexpected assets output %q", out)
	}

	if err := os.Remove(filepath.Join(f.dir, "logo.png")); err != nil {
		t.Fatalf("unable to remove image: %v", err)
	}
	out, err = run(t, "--config", f.config, "assets", f.template)
	if err == nil {
		t.Fatal("expected error for missing image")
	}
	if !strings.Contains(out, "\"logo.png\"\tERROR\t") {
		t.Errorf("unexpected assets output %q", out)
	}
}

func TestSourceErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := run(t, "--config", f.config, "tree"); err == nil {
		t.Error("expected error without source")
	}

	bad := filepath.Join(f.dir, "bad.xml")
	if err := os.WriteFile(bad, []byte(`<template><grid><gridrow><barcode/></gridrow></grid></template>`), 0644); err != nil {
		t.Fatalf("unable to write template: %v", err)
	}
	_, err := run(t, "--config", f.config, "tree", bad)
	if err == nil || !strings.Contains(err.Error(), `unknown tag "barcode"`) {
		t.Errorf("expected unknown tag error, got %v", err)
	}
}

func TestDumpConfig(t *testing.T) {
	f := newFixture(t)

	dest := filepath.Join(f.dir, "actual.yaml")
	if _, err := run(t, "--config", f.config, "dumpconfig", dest); err != nil {
		t.Fatalf("dumpconfig: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("unable to read dumped config: %v", err)
	}
	if !strings.Contains(string(data), "font: Courier") {
		t.Errorf("actual configuration misses overridden font:\n%s", data)
	}

	out, err := run(t, "--config", f.config, "dumpconfig", "--default")
	if err != nil {
		t.Fatalf("dumpconfig --default: %v", err)
	}
	if !strings.Contains(out, "Arial") {
		t.Errorf("default configuration misses default font:\n%s", out)
	}
}

func TestDebugReport(t *testing.T) {
	f := newFixture(t)

	if _, err := run(t, "--config", f.config, "--debug", "tree", f.template); err != nil {
		t.Fatalf("tree --debug: %v", err)
	}

	r, err := fixzip.OpenReader(f.report)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer r.Close()

	names := make(map[string]bool)
	for _, file := range r.File {
		names[file.Name] = true
	}
	for _, want := range []string{"MANIFEST", "config/config.yaml", "template/receipt-form.xml", "tree.txt", "final.log"} {
		if !names[want] {
			t.Errorf("report misses %q, has %v", want, names)
		}
	}
}
