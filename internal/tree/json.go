package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed indicates JSON that does not have the shape of a Pandoc AST.
var ErrMalformed = errors.New("malformed document tree")

// DefaultAPIVersion is written when a document was built rather than parsed.
var DefaultAPIVersion = []int{1, 23, 1}

// Document is a parsed document: its blocks plus the opaque metadata map.
type Document struct {
	APIVersion []int
	Meta       json.RawMessage
	Blocks     []Node
}

type wireDocument struct {
	APIVersion []int           `json:"pandoc-api-version"`
	Meta       json.RawMessage `json:"meta"`
	Blocks     []any           `json:"blocks"`
}

// Decode parses Pandoc JSON into a Document.
func Decode(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var w wireDocument
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	blocks, err := nodeList(w.Blocks)
	if err != nil {
		return nil, err
	}
	return &Document{APIVersion: w.APIVersion, Meta: w.Meta, Blocks: blocks}, nil
}

// Encode serializes doc to compact Pandoc JSON.
func Encode(doc *Document) ([]byte, error) {
	return json.Marshal(doc.wire())
}

// EncodeIndent serializes doc to indented Pandoc JSON, for debug output.
func EncodeIndent(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc.wire(), "", "  ")
}

func (d *Document) wire() wireDocument {
	version := d.APIVersion
	if len(version) == 0 {
		version = DefaultAPIVersion
	}
	meta := d.Meta
	if len(meta) == 0 {
		meta = json.RawMessage("{}")
	}
	blocks := make([]any, len(d.Blocks))
	for i, n := range d.Blocks {
		blocks[i] = encodeNode(n)
	}
	return wireDocument{APIVersion: version, Meta: meta, Blocks: blocks}
}

// decodeValue converts a generic JSON value, turning element objects into
// Nodes and arrays made only of elements into []Node.
func decodeValue(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		if _, ok := v["t"].(string); ok {
			return decodeNode(v)
		}
		out := make(map[string]any, len(v))
		for k, item := range v {
			dv, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = dv
		}
		return out, nil
	case []any:
		if len(v) > 0 && allElements(v) {
			return nodeList(v)
		}
		out := make([]any, len(v))
		for i, item := range v {
			dv, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = dv
		}
		return out, nil
	default:
		return v, nil
	}
}

func allElements(list []any) bool {
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := m["t"].(string); !ok {
			return false
		}
	}
	return true
}

func nodeList(v any) ([]Node, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected element list, got %T", ErrMalformed, v)
	}
	out := make([]Node, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected element, got %T", ErrMalformed, item)
		}
		n, err := decodeNode(m)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeNode(m map[string]any) (Node, error) {
	tag, _ := m["t"].(string)
	c, hasContent := m["c"]

	switch tag {
	case "Header":
		parts, err := tuple(tag, c, 3)
		if err != nil {
			return nil, err
		}
		level, err := intValue(parts[0])
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(parts[1])
		if err != nil {
			return nil, err
		}
		content, err := nodeList(parts[2])
		if err != nil {
			return nil, err
		}
		return &Heading{Level: level, Attr: attr, Content: content}, nil

	case "Link", "Image":
		parts, err := tuple(tag, c, 3)
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(parts[0])
		if err != nil {
			return nil, err
		}
		content, err := nodeList(parts[1])
		if err != nil {
			return nil, err
		}
		target, err := tuple(tag+" target", parts[2], 2)
		if err != nil {
			return nil, err
		}
		url, _ := target[0].(string)
		title, _ := target[1].(string)
		if tag == "Link" {
			return &Link{Attr: attr, Content: content, URL: url, Title: title}, nil
		}
		return &Image{Attr: attr, Content: content, URL: url, Title: title}, nil

	case "LineBreak":
		return &LineBreak{}, nil

	case "Para", "Strikeout", "Strong":
		content, err := nodeList(c)
		if err != nil {
			return nil, err
		}
		switch tag {
		case "Para":
			return &Paragraph{Content: content}, nil
		case "Strikeout":
			return &Strikeout{Content: content}, nil
		default:
			return &Strong{Content: content}, nil
		}

	case "Str":
		s, ok := c.(string)
		if !ok {
			return nil, fmt.Errorf("%w: Str content is %T", ErrMalformed, c)
		}
		return &Str{Text: s}, nil
	}

	if !hasContent {
		return &Other{Tag: tag}, nil
	}
	content, err := decodeValue(c)
	if err != nil {
		return nil, err
	}
	return &Other{Tag: tag, Content: content}, nil
}

func tuple(what string, v any, n int) ([]any, error) {
	list, ok := v.([]any)
	if !ok || len(list) != n {
		return nil, fmt.Errorf("%w: %s expects %d fields", ErrMalformed, what, n)
	}
	return list, nil
}

func intValue(v any) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: expected number, got %T", ErrMalformed, v)
	}
	i, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return int(i), nil
}

func decodeAttr(v any) (Attr, error) {
	parts, err := tuple("Attr", v, 3)
	if err != nil {
		return Attr{}, err
	}
	var attr Attr
	attr.ID, _ = parts[0].(string)
	classes, _ := parts[1].([]any)
	for _, c := range classes {
		if s, ok := c.(string); ok {
			attr.Classes = append(attr.Classes, s)
		}
	}
	kvs, _ := parts[2].([]any)
	for _, kv := range kvs {
		pair, ok := kv.([]any)
		if !ok || len(pair) != 2 {
			return Attr{}, fmt.Errorf("%w: attribute is not a pair", ErrMalformed)
		}
		k, _ := pair[0].(string)
		val, _ := pair[1].(string)
		attr.Attributes = append(attr.Attributes, [2]string{k, val})
	}
	return attr, nil
}

func encodeAttr(a Attr) []any {
	classes := make([]any, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = c
	}
	kvs := make([]any, len(a.Attributes))
	for i, kv := range a.Attributes {
		kvs[i] = []any{kv[0], kv[1]}
	}
	return []any{a.ID, classes, kvs}
}

func encodeList(list []Node) []any {
	out := make([]any, len(list))
	for i, n := range list {
		out[i] = encodeNode(n)
	}
	return out
}

func encodeNode(n Node) map[string]any {
	switch n := n.(type) {
	case *Heading:
		return map[string]any{"t": "Header", "c": []any{n.Level, encodeAttr(n.Attr), encodeList(n.Content)}}
	case *Link:
		return map[string]any{"t": "Link", "c": []any{encodeAttr(n.Attr), encodeList(n.Content), []any{n.URL, n.Title}}}
	case *Image:
		return map[string]any{"t": "Image", "c": []any{encodeAttr(n.Attr), encodeList(n.Content), []any{n.URL, n.Title}}}
	case *LineBreak:
		return map[string]any{"t": "LineBreak"}
	case *Paragraph:
		return map[string]any{"t": "Para", "c": encodeList(n.Content)}
	case *Strikeout:
		return map[string]any{"t": "Strikeout", "c": encodeList(n.Content)}
	case *Strong:
		return map[string]any{"t": "Strong", "c": encodeList(n.Content)}
	case *Str:
		return map[string]any{"t": "Str", "c": n.Text}
	case *Other:
		if n.Content == nil {
			return map[string]any{"t": n.Tag}
		}
		return map[string]any{"t": n.Tag, "c": encodeValue(n.Content)}
	default:
		panic(fmt.Sprintf("tree: unknown node type %T", n))
	}
}

func encodeValue(v any) any {
	switch v := v.(type) {
	case Node:
		return encodeNode(v)
	case []Node:
		return encodeList(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = encodeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = encodeValue(item)
		}
		return out
	default:
		return v
	}
}
