package tree

type actionKind int

const (
	actionKeep actionKind = iota
	actionRemove
	actionReplace
)

// Action tells Walk what to do with the node just visited.
type Action struct {
	kind  actionKind
	nodes []Node
}

// Keep leaves the node in place.
func Keep() Action { return Action{kind: actionKeep} }

// Remove drops the node from its parent list.
func Remove() Action { return Action{kind: actionRemove} }

// Replace substitutes the node with zero or more nodes.
func Replace(nodes ...Node) Action { return Action{kind: actionReplace, nodes: nodes} }

// Visitor is called once per node that sits in a node list, after the node's
// own children have been visited. index is the node's position in the
// original list.
type Visitor func(n Node, index int) Action

// Walk visits every listed node of doc depth-first, children before parents.
func Walk(doc *Document, v Visitor) {
	doc.Blocks = walkList(doc.Blocks, v)
}

func walkList(list []Node, v Visitor) []Node {
	out := make([]Node, 0, len(list))
	for i, n := range list {
		walkChildren(n, v)
		act := v(n, i)
		switch act.kind {
		case actionRemove:
		case actionReplace:
			out = append(out, act.nodes...)
		default:
			out = append(out, n)
		}
	}
	return out
}

func walkChildren(n Node, v Visitor) {
	switch n := n.(type) {
	case *Heading:
		n.Content = walkList(n.Content, v)
	case *Link:
		n.Content = walkList(n.Content, v)
	case *Image:
		n.Content = walkList(n.Content, v)
	case *Paragraph:
		n.Content = walkList(n.Content, v)
	case *Strikeout:
		n.Content = walkList(n.Content, v)
	case *Strong:
		n.Content = walkList(n.Content, v)
	case *Other:
		n.Content = walkAny(n.Content, v)
	}
}

func walkAny(value any, v Visitor) any {
	switch value := value.(type) {
	case []Node:
		return walkList(value, v)
	case Node:
		walkChildren(value, v)
		return value
	case []any:
		for i := range value {
			value[i] = walkAny(value[i], v)
		}
		return value
	default:
		return value
	}
}
