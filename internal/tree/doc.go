// Package tree is the structural document model shared by the parser, the
// transform passes and the renderer.
//
// The node set is closed: Heading, Link, Image, LineBreak, Paragraph,
// Strikeout, Strong and Str are modelled explicitly because transform passes
// inspect or build them. Everything else is an Other node that keeps its tag
// and content verbatim, so a document survives a decode/encode cycle even when
// it uses constructs this package knows nothing about. Links and images nested
// inside Other nodes (lists, tables, emphasis) are still reached by Walk.
//
// The JSON form is the Pandoc AST.
package tree
