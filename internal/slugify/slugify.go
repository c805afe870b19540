// Package slugify turns titles into filesystem- and URL-safe identifiers.
//
// Letters and numbers from any script survive, so "'Tricky: Ϡ" becomes
// "'Tricky Ϡ" rather than being transliterated away.
package slugify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultOK lists punctuation kept by default.
const DefaultOK = "-_~"

// IDOK lists punctuation kept in document identifiers and file names.
// These are all legal in MediaWiki titles and safe on common filesystems.
const IDOK = "-_~'()!,.&+"

var (
	lower      = cases.Lower(language.Und)
	spaceRunRe = regexp.MustCompile(`[-\s]+`)
)

// Options controls Slugify.
type Options struct {
	// OK lists non-alphanumeric characters to keep. Empty means DefaultOK.
	OK string
	// Lower folds the result to lower case.
	Lower bool
	// Spaces keeps spaces instead of collapsing them into dashes.
	Spaces bool
}

// Slugify normalizes text to NFKC, keeps letters, numbers and the OK set,
// maps every separator to a plain space and trims the result.
func Slugify(text string, opts Options) string {
	ok := opts.OK
	if ok == "" {
		ok = DefaultOK
	}

	var b strings.Builder
	for _, r := range norm.NFKC.String(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || strings.ContainsRune(ok, r):
			b.WriteRune(r)
		case unicode.In(r, unicode.Z):
			b.WriteByte(' ')
		}
	}
	out := strings.TrimSpace(b.String())

	if !opts.Spaces {
		out = spaceRunRe.ReplaceAllString(out, "-")
	}
	if opts.Lower {
		out = lower.String(out)
	}
	return out
}

// ID returns the case-insensitive document identifier for a title.
func ID(title string) string {
	return Slugify(title, Options{OK: IDOK, Lower: true, Spaces: true})
}

// Name returns the case-preserving form used for file names and link targets.
func Name(title string) string {
	return Slugify(title, Options{OK: IDOK, Spaces: true})
}
