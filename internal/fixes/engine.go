// Package fixes applies ordered tables of regex rules to raw text.
//
// Each rule rescans the text produced by the rules before it, so table order
// is part of a table's meaning. A rule with a replacement rewrites every
// non-overlapping match; a scan-only rule leaves the text alone and reports
// where it matched.
package fixes

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-db2md/internal/logging"
)

// previewLength is the number of runes of each match shown by scan-only rules.
const previewLength = 10

// Logger receives rule log lines. *batch.Job satisfies it.
type Logger interface {
	Log(level logging.Level, msg string)
}

// Rule is one regex fix. A zero Level never logs.
type Rule struct {
	ID          string
	Pattern     *regexp2.Regexp
	Replacement string
	ScanOnly    bool
	Comment     string
	Level       logging.Level
}

// Replace builds a rewriting rule.
func Replace(id, pattern string, opts regexp2.RegexOptions, repl, comment string, level logging.Level) Rule {
	return Rule{
		ID:          id,
		Pattern:     regexp2.MustCompile(pattern, opts),
		Replacement: repl,
		Comment:     comment,
		Level:       level,
	}
}

// Scan builds a scan-only rule.
func Scan(id, pattern string, opts regexp2.RegexOptions, comment string, level logging.Level) Rule {
	return Rule{
		ID:       id,
		Pattern:  regexp2.MustCompile(pattern, opts),
		ScanOnly: true,
		Comment:  comment,
		Level:    level,
	}
}

// Table is a named, ordered rule set.
type Table struct {
	Name  string
	Rules []Rule
}

// Counts maps rule id to the number of replacements (or matches, for
// scan-only rules) found in one Apply call.
type Counts map[string]int

// Apply runs every rule of table over text in order. log may be nil.
func Apply(text string, table Table, log Logger) (string, Counts, error) {
	counts := make(Counts, len(table.Rules))

	for _, rule := range table.Rules {
		matches, err := findAll(rule.Pattern, text)
		if err != nil {
			return text, counts, fmt.Errorf("%s/%s: %w", table.Name, rule.ID, err)
		}
		counts[rule.ID] = len(matches)
		if len(matches) == 0 {
			continue
		}

		if !rule.ScanOnly {
			text, err = rule.Pattern.Replace(text, rule.Replacement, -1, -1)
			if err != nil {
				return text, counts, fmt.Errorf("%s/%s: %w", table.Name, rule.ID, err)
			}
			if log != nil && rule.Level != logging.LevelNone {
				log.Log(rule.Level, fmt.Sprintf("Replaced %s %d times", rule.ID, len(matches)))
			}
			continue
		}

		if log != nil && rule.Level != logging.LevelNone {
			previews := make([]string, len(matches))
			for i, m := range matches {
				previews[i] = truncate(m)
			}
			log.Log(rule.Level, fmt.Sprintf("%s, at %s", rule.Comment, strings.Join(previews, ", ")))
		}
	}

	return text, counts, nil
}

func findAll(re *regexp2.Regexp, text string) ([]string, error) {
	var out []string
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		out = append(out, m.String())
		m, err = re.FindNextMatch(m)
	}
	return out, err
}

// truncate trims s and keeps the first previewLength runes, marking the cut.
func truncate(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= previewLength {
		return string(r)
	}
	return string(r[:previewLength]) + "…"
}
