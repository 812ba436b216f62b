package component

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Markup is walked exhaustively: every element must map to a known component
// and every attribute ends up either in a typed field or among custom
// properties. Structural problems abort the whole build, attribute problems
// never do.

// Parse builds component tree starting at the document root element.
func Parse(doc *etree.Document, log *zap.Logger) (*Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return Build(root, log)
}

// Build constructs component (sub)tree from markup token. Comments,
// processing instructions, directives and insignificant whitespace produce
// nil node and no error. Structural errors are always returned as
// *ParseFailure and no partial tree is produced.
func Build(tok etree.Token, log *zap.Logger) (*Node, error) {
	if log == nil {
		log = zap.NewNop()
	}
	return build(tok, nil, log)
}

func build(tok etree.Token, path []string, log *zap.Logger) (*Node, error) {
	switch t := tok.(type) {
	case *etree.Element:
		return buildElement(t, path, log)
	case *etree.CharData:
		if strings.TrimSpace(t.Data) == "" {
			return nil, nil
		}
		return NewTextBlock(t.Data), nil
	default:
		return nil, nil
	}
}

func buildElement(el *etree.Element, parentPath []string, log *zap.Logger) (*Node, error) {
	path := appendPath(parentPath, el.Tag)

	kind, ok := ParseKind(el.Tag)
	if !ok {
		return nil, &ParseFailure{Path: path, Err: &UnknownTagError{Tag: el.Tag}}
	}

	node := NewNode(kind)
	for _, attr := range el.Attr {
		if !node.SetProperty(attr.FullKey(), attr.Value) {
			log.Debug("Unable to bind attribute, ignoring", zap.String("tag", el.Tag), zap.String("attr", attr.FullKey()))
		}
	}

	for _, tok := range el.Child {
		child, err := build(tok, path, log)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if child.Kind == KindTemplate {
			childTag := tok.(*etree.Element).Tag
			return nil, &ParseFailure{
				Path: appendPath(path, childTag),
				Err:  &InvalidChildError{Parent: el.Tag, Child: childTag},
			}
		}
		node.attach(child, log)
	}
	return node, nil
}

// attach places child under node. Non-container components only absorb
// text, everything else placed under them is dropped.
func (n *Node) attach(child *Node, log *zap.Logger) {
	if n.Kind.Container() {
		n.addChild(child)
		return
	}
	if child.Kind == KindTextBlock && (n.Kind == KindData || n.Kind == KindQRCode) {
		n.Text += child.Text
		return
	}
	log.Warn("Unexpected content, ignoring", zap.Stringer("parent", n.Kind), zap.Stringer("child", child.Kind))
}

func appendPath(path []string, tag string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, tag)
}
