package component

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
)

// FontFamilies yields font families declared (not inherited) by the node and
// all its descendants in depth-first pre-order. Duplicates are not removed.
// Sequence may be iterated any number of times.
func (n *Node) FontFamilies() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, node := range n.Walk() {
			if node.Style == nil || !declared(node.Style.FontFamily) {
				continue
			}
			if !yield(node.Style.FontFamily) {
				return
			}
		}
	}
}

// DistinctFontFamilies returns declared font families of the subtree in order
// of first appearance ignoring case and surrounding whitespace differences.
func DistinctFontFamilies(n *Node) []string {
	var (
		fold   = cases.Fold()
		seen   = make(map[string]struct{})
		result []string
	)
	for family := range n.FontFamilies() {
		key := fold.String(strings.TrimSpace(family))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, family)
	}
	return result
}

// Walk yields the node and all its descendants in depth-first pre-order
// together with their depth relative to n.
func (n *Node) Walk() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		walk(n, 0, yield)
	}
}

func walk(n *Node, depth int, yield func(int, *Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(depth, n) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, depth+1, yield) {
			return false
		}
	}
	return true
}

// Images returns all image components of the subtree in document order.
func (n *Node) Images() []*Node {
	var images []*Node
	for _, node := range n.Walk() {
		if node.Kind == KindImage {
			images = append(images, node)
		}
	}
	return images
}
