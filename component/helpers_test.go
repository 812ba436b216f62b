package component

import (
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func mustElement(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	if doc.Root() == nil {
		t.Fatalf("xml has no root element")
	}
	return doc.Root()
}

func mustBuild(t *testing.T, xml string) *Node {
	t.Helper()

	node, err := Build(mustElement(t, xml), testLogger(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if node == nil {
		t.Fatalf("Build returned nil node")
	}
	return node
}
