package db2md

import "errors"

// Sentinel errors for record conversion.
var (
	// ErrValidation wraps every record validation fault.
	ErrValidation = errors.New("invalid record")

	// Record validation errors.
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyID           = errors.New("id is empty")
	ErrEmptyBody         = errors.New("body cannot be empty")
	ErrUnsupportedFormat = errors.New("unsupported body format")
	ErrMissingOutFolder  = errors.New("out folder not configured")

	// Pipeline errors.
	ErrSourceFixes   = errors.New("source fixes failed")
	ErrMarkdownFixes = errors.New("markdown fixes failed")
	ErrParse         = errors.New("parsing document failed")
	ErrRender        = errors.New("rendering document failed")
	ErrFrontMatter   = errors.New("front matter serialization failed")
	ErrWriteOutput   = errors.New("writing output failed")
)
