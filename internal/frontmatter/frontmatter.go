// Package frontmatter builds and reads the YAML header written at the top of
// every converted document.
package frontmatter

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	adrg "github.com/adrg/frontmatter"

	"github.com/alnah/go-db2md/internal/yamlutil"
)

// Delimiter opens and closes the header block.
const Delimiter = "---"

// Metadata keys written by the converter.
const (
	KeyID        = "id"
	KeyTitle     = "title"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
	KeyAuthor    = "author"
	KeyCategory  = "category"
	KeyImage     = "image"
	KeyAliasFor  = "alias_for"
)

// Clean sorts list values and drops empty ones, descending into nested
// mappings. Lists of mixed types keep their order. m is modified in place
// and returned.
func Clean(m map[string]any) map[string]any {
	for k, v := range m {
		switch v := v.(type) {
		case []string:
			if len(v) == 0 {
				delete(m, k)
				continue
			}
			sorted := append([]string(nil), v...)
			sort.Strings(sorted)
			m[k] = sorted
		case []any:
			if len(v) == 0 {
				delete(m, k)
				continue
			}
			m[k] = sortStrings(v)
		case map[string]any:
			m[k] = Clean(v)
		}
	}
	return m
}

func sortStrings(list []any) []any {
	strs := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return list
		}
		strs = append(strs, s)
	}
	sort.Strings(strs)
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

// Marshal cleans m and renders it as a delimited YAML block with keys in
// lexical order.
func Marshal(m map[string]any) (string, error) {
	body, err := yamlutil.MarshalSorted(Clean(m))
	if err != nil {
		return "", fmt.Errorf("front matter: %w", err)
	}
	return Delimiter + "\n" + string(body) + Delimiter + "\n", nil
}

// Meta is the part of a header that checks read back.
type Meta struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Author    string   `yaml:"author"`
	CreatedAt string   `yaml:"created_at"`
	UpdatedAt string   `yaml:"updated_at"`
	Category  []string `yaml:"category"`
	Image     []string `yaml:"image"`
	AliasFor  []string `yaml:"alias_for"`
}

var yamlFormat = adrg.NewFormat(Delimiter, Delimiter, func(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yamlutil.Unmarshal(data, v)
})

// Parse reads the header of a converted document and returns it with the
// body that follows. A document without a header yields an empty Meta.
func Parse(r io.Reader) (Meta, []byte, error) {
	var meta Meta
	body, err := adrg.Parse(r, &meta, yamlFormat)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("front matter: %w", err)
	}
	return meta, body, nil
}
