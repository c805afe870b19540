// Package preview renders converted Markdown with goldmark: a standalone
// HTML page for eyeballing a migration, and an outline audit that reports
// heading structure problems in the rendered output.
package preview
