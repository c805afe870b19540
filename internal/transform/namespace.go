package transform

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// NamespaceKind classifies a matched wiki namespace.
type NamespaceKind int

const (
	NamespaceNone NamespaceKind = iota
	NamespaceIgnored
	NamespaceMedia
	NamespaceCategory
	NamespaceUnknown
)

// Namespaces whose pages carry no article content.
var IgnoredNamespaces = []string{
	"Special", "Talk", "Diskussion", "User", "Användare", "User_talk", "Användardiskussion",
	"File_talk", "Fildiskussion", "MediaWiki", "MediaWiki_talk", "MediaWiki-diskussion",
	"Template", "Mall", "Template_talk", "Malldiskussion", "Help", "Hjälp", "Help_talk",
	"Hjälpdiskussion", "Category_talk", "Kategoridiskussion", "Bilddiskussion",
}

// Namespaces that address uploaded files.
var MediaNamespaces = []string{"Media", "File", "Image", "Fil", "Bild"}

// Namespaces that tag the page with a category.
var CategoryNamespaces = []string{"Category", "Kategori"}

var (
	namespacePattern = compileNamespacePattern()
	namespaceKinds   = indexNamespaces()
)

// compileNamespacePattern builds `[: ]?((ns)sep)?(rest)`. The separator is a
// colon with optional underscores or whitespace around it, never one that is
// followed by a slash as in "http://".
func compileNamespacePattern() *regexp2.Regexp {
	names := make([]string, 0, len(IgnoredNamespaces)+len(MediaNamespaces)+len(CategoryNamespaces))
	for _, group := range [][]string{IgnoredNamespaces, MediaNamespaces, CategoryNamespaces} {
		for _, n := range group {
			names = append(names, regexp2.Escape(n))
		}
	}
	pattern := `\A[: ]?((?<ns>` + strings.Join(names, "|") + `)[_\s]*:(?!/)[_\s]*)?(?<rest>.*)`
	return regexp2.MustCompile(pattern, regexp2.IgnoreCase|regexp2.Singleline)
}

func indexNamespaces() map[string]NamespaceKind {
	kinds := make(map[string]NamespaceKind)
	for _, n := range IgnoredNamespaces {
		kinds[strings.ToLower(n)] = NamespaceIgnored
	}
	for _, n := range MediaNamespaces {
		kinds[strings.ToLower(n)] = NamespaceMedia
	}
	for _, n := range CategoryNamespaces {
		kinds[strings.ToLower(n)] = NamespaceCategory
	}
	return kinds
}

// NamespaceMatch is the result of matching a title or link target.
type NamespaceMatch struct {
	Namespace string
	Kind      NamespaceKind
	Rest      string
	Whole     string
}

// HasNamespace reports whether a namespace prefix was present.
func (m NamespaceMatch) HasNamespace() bool { return m.Namespace != "" }

// MatchNamespace splits s into an optional namespace and the rest. The
// grammar accepts every string, so a failed match panics.
func MatchNamespace(s string) NamespaceMatch {
	m, err := namespacePattern.FindStringMatch(s)
	if err != nil {
		panic(fmt.Sprintf("namespace grammar failed on %q: %v", s, err))
	}
	if m == nil {
		panic(fmt.Sprintf("namespace grammar did not match %q", s))
	}
	rest := m.GroupByName("rest")
	if rest == nil || len(rest.Captures) == 0 {
		panic(fmt.Sprintf("namespace grammar captured no rest in %q", s))
	}

	out := NamespaceMatch{Rest: rest.String(), Whole: m.String()}
	if ns := m.GroupByName("ns"); ns != nil && len(ns.Captures) > 0 {
		out.Namespace = ns.String()
		out.Kind = kindOf(out.Namespace)
	}
	return out
}

func kindOf(ns string) NamespaceKind {
	if kind, ok := namespaceKinds[strings.ToLower(ns)]; ok {
		return kind
	}
	return NamespaceUnknown
}
