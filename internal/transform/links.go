package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/slugify"
	"github.com/alnah/go-db2md/internal/tree"
)

// Title pandoc gives every internal wiki link.
const wikilinkTitle = "wikilink"

const figurePrefix = "fig:"

// Logger receives pass diagnostics at a job log level.
type Logger interface {
	Log(level logging.Level, msg string)
}

// Set is an unordered set of strings.
type Set map[string]struct{}

// Add inserts s.
func (s Set) Add(v string) { s[v] = struct{}{} }

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// NamespaceContext collects metadata found in link and image targets.
type NamespaceContext struct {
	IsRedirect bool
	AliasFor   Set
	Images     Set
	Categories Set
}

// NewNamespaceContext returns an empty context for a document.
func NewNamespaceContext(isRedirect bool) *NamespaceContext {
	return &NamespaceContext{
		IsRedirect: isRedirect,
		AliasFor:   make(Set),
		Images:     make(Set),
		Categories: make(Set),
	}
}

// CleanLinks drops pandoc's wikilink link titles, gives empty links a text,
// strips the figure marker from images and removes a line break that opens
// its parent.
func CleanLinks(doc *tree.Document, log Logger) {
	tree.Walk(doc, func(n tree.Node, index int) tree.Action {
		switch n := n.(type) {
		case *tree.Link:
			if n.Title == wikilinkTitle {
				n.Title = ""
			}
			if len(n.Content) == 0 {
				text := n.Title
				if text == "" {
					text = n.URL
				}
				n.Content = tree.Text(text)
			}
		case *tree.Image:
			n.Title = strings.TrimPrefix(n.Title, figurePrefix)
			n.Attr.Attributes = nil
		case *tree.LineBreak:
			if index == 0 {
				log.Log(logging.LevelDebug, "Removed hard line break at start of paragraph")
				return tree.Remove()
			}
		}
		return tree.Keep()
	})
}

// ExtractNamespaces strips wiki namespaces from link and image targets and
// turns them into metadata: redirect aliases, images and categories. Links
// into ignored namespaces are struck out. Other internal targets are
// slugified so they point at output file names.
func ExtractNamespaces(doc *tree.Document, nc *NamespaceContext, log Logger) {
	tree.Walk(doc, func(n tree.Node, _ int) tree.Action {
		var url *string
		var content []tree.Node
		image := false
		switch n := n.(type) {
		case *tree.Link:
			url, content = &n.URL, n.Content
		case *tree.Image:
			url, content, image = &n.URL, n.Content, true
		default:
			return tree.Keep()
		}

		m := MatchNamespace(*url)
		target := strings.TrimSpace(m.Rest)
		if target == "" {
			panic(fmt.Sprintf("empty link target after namespace in %q", *url))
		}
		*url = target

		switch {
		case nc.IsRedirect:
			nc.AliasFor.Add(slugify.Name(strings.ReplaceAll(target, "_", " ")))
			return tree.Keep()
		case image:
			nc.Images.Add(target)
			return tree.Keep()
		case m.Kind == NamespaceCategory:
			nc.Categories.Add(strings.ReplaceAll(target, "_", " "))
			return tree.Remove()
		case m.Kind == NamespaceIgnored:
			return tree.Replace(&tree.Strikeout{Content: content})
		case m.HasNamespace():
			log.Log(logging.LevelWarn, fmt.Sprintf("Forcing unknown namespace %s from %s to be a mention", m.Namespace, m.Whole))
		}

		if !fileutil.IsURL(target) {
			*url = slugify.Name(target)
		}
		return tree.Keep()
	})
}

// Result is the metadata gathered by Run.
type Result struct {
	Headings  *HeadingContext
	Namespace *NamespaceContext
}

// Run applies all passes in order. Namespace extraction only applies to wiki
// sources.
func Run(doc *tree.Document, isRedirect, wiki bool, log Logger) Result {
	hc := NewHeadingContext()
	ScanHeadings(doc, hc)
	BalanceLevels(hc)
	BalanceHeadings(doc, hc)
	CleanLinks(doc, log)

	nc := NewNamespaceContext(isRedirect)
	if wiki {
		ExtractNamespaces(doc, nc, log)
	}
	return Result{Headings: hc, Namespace: nc}
}
