// Package transform holds the passes that run over a parsed document tree
// before it is rendered: heading level scan and balance, link and image
// cleanup, and wiki namespace extraction.
//
// Each pass is a tree.Visitor closed over an explicit context struct, so the
// passes can be run and tested one at a time. Run applies them in order.
package transform
