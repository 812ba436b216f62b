package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented, line oriented dump of a tree.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Attrs writes label followed by key=value pairs. Pairs with empty values are
// skipped, values are quoted only when they contain spaces or quotes.
// Dangling key without value is ignored.
func (tw TreeWriter) Attrs(depth int, label string, kv ...string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		tw.w.WriteByte(' ')
		tw.w.WriteString(kv[i])
		tw.w.WriteByte('=')
		tw.w.WriteString(encodeValue(kv[i+1]))
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

func encodeValue(raw string) string {
	if strings.ContainsAny(raw, " \t\n\"\\") {
		return strconv.Quote(raw)
	}
	return raw
}
