// Package source reads legacy wiki and blog dumps as a lazy sequence of raw
// records. MediaWiki XML exports are streamed; SQL dumps from MediaWiki and
// WordPress are loaded into an in-memory SQLite database and queried.
package source

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Format is the markup of a record body.
type Format string

const (
	FormatWiki Format = "wiki"
	FormatHTML Format = "html"
)

// Sentinel errors for dump reading.
var (
	ErrUnsupportedSource = errors.New("unsupported source file")
	ErrUnsupportedDump   = errors.New("unsupported dump schema")
)

// Record is one article as found in a dump. Optional fields are empty when
// the dump does not carry them.
type Record struct {
	Title     string
	Body      string
	Format    Format
	Author    string
	CreatedAt string
	UpdatedAt string
}

// Field returns a record field by its summary column key.
func (r Record) Field(key string) string {
	switch key {
	case "title":
		return r.Title
	case "author":
		return r.Author
	case "created_at":
		return r.CreatedAt
	case "updated_at":
		return r.UpdatedAt
	case "format":
		return string(r.Format)
	default:
		return ""
	}
}

// Open checks path and returns a sequence over its records. The file is
// read when the sequence is iterated. A read error ends the sequence after
// being yielded once.
func Open(path string) (iter.Seq2[Record, error], error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedSource, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return xmlRecords(path), nil
	case ".sql":
		return sqlRecords(path), nil
	default:
		return nil, fmt.Errorf("%w: %s (want .xml or .sql)", ErrUnsupportedSource, path)
	}
}
