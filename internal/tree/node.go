package tree

// Node is one element of the document tree.
type Node interface {
	isNode()
}

// Attr holds an element's identifier, classes and key-value attributes.
type Attr struct {
	ID         string
	Classes    []string
	Attributes [][2]string
}

// Heading is a section heading of level 1 to 6.
type Heading struct {
	Level   int
	Attr    Attr
	Content []Node
}

// Link is a hyperlink. Content is the link text.
type Link struct {
	Attr    Attr
	Content []Node
	URL     string
	Title   string
}

// Image is an embedded image. Content is the alt text.
type Image struct {
	Attr    Attr
	Content []Node
	URL     string
	Title   string
}

// LineBreak is a hard line break.
type LineBreak struct{}

// Paragraph is a block of inline content.
type Paragraph struct {
	Content []Node
}

// Strikeout is struck-through inline content.
type Strikeout struct {
	Content []Node
}

// Strong is bold inline content.
type Strong struct {
	Content []Node
}

// Str is a run of text without spaces.
type Str struct {
	Text string
}

// Other is any element without a dedicated type. Content holds the decoded
// "c" field: nested elements appear as Node or []Node, everything else as
// plain JSON values. A nil Content means the element has no "c" field.
type Other struct {
	Tag     string
	Content any
}

func (*Heading) isNode()   {}
func (*Link) isNode()      {}
func (*Image) isNode()     {}
func (*LineBreak) isNode() {}
func (*Paragraph) isNode() {}
func (*Strikeout) isNode() {}
func (*Strong) isNode()    {}
func (*Str) isNode()       {}
func (*Other) isNode()     {}

// Space returns the inter-word space element.
func Space() Node { return &Other{Tag: "Space"} }

// Text splits s on single spaces into Str and Space elements.
func Text(s string) []Node {
	var out []Node
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			continue
		}
		if i > start {
			out = append(out, &Str{Text: s[start:i]})
		}
		if i < len(s) {
			out = append(out, Space())
		}
		start = i + 1
	}
	return out
}

// Stringify concatenates the text of nodes, rendering spaces and breaks as
// single spaces.
func Stringify(nodes []Node) string {
	var b []byte
	var walk func([]Node)
	walk = func(list []Node) {
		for _, n := range list {
			switch n := n.(type) {
			case *Str:
				b = append(b, n.Text...)
			case *LineBreak:
				b = append(b, ' ')
			case *Other:
				switch n.Tag {
				case "Space", "SoftBreak":
					b = append(b, ' ')
				default:
					walkValue(n.Content, walk)
				}
			default:
				walk(Children(n))
			}
		}
	}
	walk(nodes)
	return string(b)
}

func walkValue(v any, fn func([]Node)) {
	switch v := v.(type) {
	case []Node:
		fn(v)
	case Node:
		fn([]Node{v})
	case []any:
		for _, item := range v {
			walkValue(item, fn)
		}
	}
}

// Children returns the inline or block content of a typed node, or nil.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Heading:
		return n.Content
	case *Link:
		return n.Content
	case *Image:
		return n.Content
	case *Paragraph:
		return n.Content
	case *Strikeout:
		return n.Content
	case *Strong:
		return n.Content
	default:
		return nil
	}
}
