package transform

import "github.com/alnah/go-db2md/internal/tree"

// MaxHeadingLevel is the deepest heading level.
const MaxHeadingLevel = 6

// HeadingContext carries heading levels from the scan pass to the balance
// pass. Levels maps each raw level seen in the document to its new level.
type HeadingContext struct {
	Levels map[int]int
}

// NewHeadingContext returns an empty context.
func NewHeadingContext() *HeadingContext {
	return &HeadingContext{Levels: make(map[int]int)}
}

// ScanHeadings records every distinct heading level in doc.
func ScanHeadings(doc *tree.Document, hc *HeadingContext) {
	tree.Walk(doc, func(n tree.Node, _ int) tree.Action {
		if h, ok := n.(*tree.Heading); ok {
			hc.Levels[h.Level] = 0
		}
		return tree.Keep()
	})
}

// BalanceLevels fills hc.Levels with a gap-free mapping that starts at level
// 2. Level 1 is kept for the document title.
func BalanceLevels(hc *HeadingContext) {
	offset := 0
	if _, ok := hc.Levels[1]; ok {
		hc.Levels[1] = 2
		offset++
	}
	for level := 2; level <= MaxHeadingLevel; level++ {
		if _, ok := hc.Levels[level]; ok {
			hc.Levels[level] = min(level+offset, MaxHeadingLevel)
		} else {
			offset--
		}
	}
}

// BalanceHeadings rewrites heading levels through hc.Levels and lifts the
// children of a leading bold run into the heading itself.
func BalanceHeadings(doc *tree.Document, hc *HeadingContext) {
	tree.Walk(doc, func(n tree.Node, _ int) tree.Action {
		h, ok := n.(*tree.Heading)
		if !ok {
			return tree.Keep()
		}
		if level, ok := hc.Levels[h.Level]; ok {
			h.Level = level
		}
		if len(h.Content) > 0 {
			if strong, ok := h.Content[0].(*tree.Strong); ok {
				content := make([]tree.Node, 0, len(strong.Content)+len(h.Content)-1)
				content = append(content, strong.Content...)
				h.Content = append(content, h.Content[1:]...)
			}
		}
		return tree.Keep()
	})
}
