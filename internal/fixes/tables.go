package fixes

import (
	"github.com/dlclark/regexp2"

	"github.com/alnah/go-db2md/internal/logging"
)

// Table names.
const (
	TableWiki     = "wikiFixes"
	TableHTML     = "htmlFixes"
	TableMarkdown = "markdownFixes"
)

const (
	multiline  = regexp2.Multiline
	ignoreCase = regexp2.IgnoreCase
	singleline = regexp2.Singleline
)

// WikiFixes returns the rules applied to MediaWiki source before parsing.
// normalize_image_links rewrites localized media prefixes to "Image:", the
// only spelling pandoc's MediaWiki reader turns into an image.
func WikiFixes() Table {
	return Table{Name: TableWiki, Rules: []Rule{
		Replace("behavior_switches_pattern", `__\w+__`, regexp2.None, "",
			"A MediaWiki magic word like __TOC__ and __NOTOC__", logging.LevelDebug),
		Replace("fix_broken_tables", ` = `, regexp2.None, "=",
			"MediaWiki tables may have space around = when setting attributes", logging.LevelDebug),
		Replace("normalize_image_links", `\[\[(File|Image|Fil|Bild):`, ignoreCase, "[[Image:",
			"Localized or incorrectly cased media namespaces are not recognized as image links", logging.LevelDebug),
		Replace("asterisk_horizontal_line", `^\*\*\*+`, multiline, "----",
			"A row of asterisks used as a horizontal line", logging.LevelDebug),
		Replace("implied_heading", `^''' *(.+?) *'''(<br>|</br>| )*$`, multiline, "==== $1 ====\n",
			"Bold words on a single row are an implied heading, rebalanced later", logging.LevelDebug),
		Replace("implied_list", `^'''(.*)(<br>|</br>)`, multiline, "* '''$1",
			"Lines starting with bold and ending with <br> are list items", logging.LevelDebug),
		Replace("strikethrough_pattern", `<s>(.+?)</s>`, regexp2.None, "<del>$1</del>",
			"Only <del> is recognized as strike-through", logging.LevelDebug),
	}}
}

// HTMLFixes returns the rules applied to HTML (WordPress) source before parsing.
func HTMLFixes() Table {
	return Table{Name: TableHTML, Rules: []Rule{
		Replace("apple_style_span", `<span class="Apple-style-span"[^>]*>(.*?)</span>`, ignoreCase|singleline, "$1",
			"Inline style spans pasted from Safari carry no meaning", logging.LevelDebug),
		Replace("caption_shortcode", `\[caption[^\]]*\](.*?)\[/caption\]`, singleline, "$1",
			"WordPress caption shortcode wraps an image that converts on its own", logging.LevelDebug),
		Scan("leftover_shortcode", `\[[a-z0-9_-]+\s+[a-z_]+="[^"]*"[^\]]*\]`, ignoreCase,
			"WordPress shortcode cannot be converted, clean manually", logging.LevelInfo),
	}}
}

// MarkdownFixes returns the lint and normalization rules applied to rendered Markdown.
func MarkdownFixes() Table {
	return Table{Name: TableMarkdown, Rules: []Rule{
		Scan("empty_image_link", `!\[\]\[\d\]`, regexp2.None,
			"Empty image reference links found, should be captioned", logging.LevelInfo),
		Scan("html_comment_pattern", `<!--.+?-->`, regexp2.None,
			"HTML comment found, may be added to keep lists apart. Clean manually", logging.LevelWarn),
		Scan("escaped_chars", `\\[-"'*_#+.(){}\[\]]`, regexp2.None,
			"Markdown special characters escaped, consider changing the text", logging.LevelWarn),
		Scan("html_tag_pattern", `<(?!(!|http)).+?>`, regexp2.None,
			"Possibly unintentional HTML tag", logging.LevelWarn),
		Scan("unconverted_mediawiki_formatting", `^=+`, multiline,
			"Looks like a MediaWiki heading is still in the text", logging.LevelWarn),
		Scan("use_list_instead", `\\\n\S+\\\n`, regexp2.None,
			"Multiple lines using forced line break, maybe make a list?", logging.LevelWarn),
		Scan("link_as_header", `\[.+?\]\\\n`, regexp2.None,
			"Link as header on a single line, maybe join as [Link]: text", logging.LevelWarn),
		Replace("space_on_line_endings", `[^\S\r\n]+$`, multiline, "",
			"Remove whitespace at end of lines", logging.LevelDebug),
		Replace("empty_ref_link", `\[(.+?)\]\[\]`, regexp2.None, "[$1]",
			"Shortcut reference links are written as [link][]", logging.LevelDebug),
		Scan("inline_code_intended_as_block", "(`[^`]+`\n)+", regexp2.None,
			"Complete lines marked as inline code, should probably be a code block", logging.LevelWarn),
		Replace("multiple_empty_rows", `\n\n\n+`, regexp2.None, "\n\n",
			"Reduce 3 or more newlines in a row to 2", logging.LevelDebug),
		Scan("remaining_wikicode", `['=]{2,}`, regexp2.None,
			"Some MediaWiki formatting is still left, fix manually", logging.LevelWarn),
		Scan("unusual_whitespace", `.?[^\S\r\n ]+`, regexp2.None,
			"Unusual whitespace character detected (not regular space or line break)", logging.LevelWarn),
	}}
}
