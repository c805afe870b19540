package source

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Rewrites that let a MySQL dump run on SQLite. Order matters: key lines
// are dropped before enum columns are coerced.
var sqliteRewrites = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?m)(int\(\d+\)) unsigned`), "${1}"},
	{regexp.MustCompile(`(?m)ENGINE=.*;$`), ";"},
	{regexp.MustCompile(`(?m) ?AUTO_INCREMENT ?`), ""},
	{regexp.MustCompile(`(?m)^CREATE DATABASE.*;$`), ""},
	{regexp.MustCompile(`(?m)^USE .*;$`), ""},
	{regexp.MustCompile(`(?m),?\s*(FULLTEXT|PRIMARY|UNIQUE)?\s*KEY .*$`), ""},
	{regexp.MustCompile(`(?m)^(UN)?LOCK.*$`), ""},
	{regexp.MustCompile(`(?m)ON UPDATE.*(,)?$`), "${1}"},
	{regexp.MustCompile(`(?m)enum\(.*,$`), "blob,"},
	{regexp.MustCompile(`\\'`), "''"},
}

// makeSQLiteSafe coerces common MySQL dump syntax into SQLite syntax.
func makeSQLiteSafe(script string) string {
	for _, rw := range sqliteRewrites {
		script = rw.re.ReplaceAllString(script, rw.repl)
	}
	return script
}

const (
	mediawikiQuery = `SELECT page_title, page_namespace, rev_timestamp, user_name, old_text
FROM page
	INNER JOIN revision ON page.page_latest = revision.rev_id
	INNER JOIN user ON revision.rev_user = user.user_id
	INNER JOIN text ON revision.rev_text_id = text.old_id
ORDER BY page.page_id`

	wordpressQuery = `SELECT post_title, CAST(post_date_gmt AS TEXT), CAST(post_modified_gmt AS TEXT),
	post_content, display_name
FROM wp_posts
	INNER JOIN wp_users ON wp_posts.post_author = wp_users.ID
ORDER BY wp_posts.ID`
)

type dumpKind int

const (
	dumpUnknown dumpKind = iota
	dumpMediaWiki
	dumpWordPress
	dumpJoomla
)

func detectDump(script string) dumpKind {
	switch {
	case strings.Contains(script, "CREATE TABLE `page`") && strings.Contains(script, "CREATE TABLE `revision`"):
		return dumpMediaWiki
	case strings.Contains(script, "CREATE TABLE `wp_posts`") && strings.Contains(script, "CREATE TABLE `wp_users`"):
		return dumpWordPress
	case strings.Contains(script, "CREATE TABLE `mos_content`"):
		return dumpJoomla
	default:
		return dumpUnknown
	}
}

// sqlRecords loads a SQL dump into an in-memory database and yields one
// record per article row. MediaWiki pages outside the main namespace are
// skipped.
func sqlRecords(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		data, err := os.ReadFile(path)
		if err != nil {
			yield(Record{}, fmt.Errorf("opening source: %w", err))
			return
		}
		script := makeSQLiteSafe(strings.ToValidUTF8(string(data), ""))

		kind := detectDump(script)
		switch kind {
		case dumpJoomla:
			yield(Record{}, fmt.Errorf("%w: joomla", ErrUnsupportedDump))
			return
		case dumpUnknown:
			yield(Record{}, fmt.Errorf("%w: no mediawiki or wordpress tables", ErrUnsupportedDump))
			return
		}

		db, err := loadScript(script)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer func() { _ = db.Close() }()

		if kind == dumpMediaWiki {
			err = queryRows(db, mediawikiQuery, 5, mediawikiRecord, yield)
		} else {
			err = queryRows(db, wordpressQuery, 5, wordpressRecord, yield)
		}
		if err != nil {
			yield(Record{}, err)
		}
	}
}

func loadScript(script string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), script); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading dump: %w", err)
	}
	return db, nil
}

func queryRows(db *sql.DB, query string, columns int, convert func([]any) (Record, bool), yield func(Record, error) bool) error {
	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return fmt.Errorf("querying dump: %w", err)
	}
	defer func() { _ = rows.Close() }()

	values := make([]any, columns)
	ptrs := make([]any, columns)
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		rec, ok := convert(values)
		if !ok {
			continue
		}
		if !yield(rec, nil) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

func mediawikiRecord(v []any) (Record, bool) {
	if ns, err := strconv.Atoi(columnText(v[1])); err != nil || ns != 0 {
		return Record{}, false
	}
	return Record{
		Title:     unescapeSQL(strings.ReplaceAll(columnText(v[0]), "_", " ")),
		CreatedAt: columnText(v[2]),
		Author:    columnText(v[3]),
		Body:      unescapeSQL(columnText(v[4])),
		Format:    FormatWiki,
	}, true
}

func wordpressRecord(v []any) (Record, bool) {
	return Record{
		Title:     unescapeSQL(columnText(v[0])),
		CreatedAt: columnText(v[1]),
		UpdatedAt: columnText(v[2]),
		Body:      unescapeSQL(columnText(v[3])),
		Author:    columnText(v[4]),
		Format:    FormatHTML,
	}, true
}

func columnText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// unescapeSQL decodes the backslash escapes MySQL writes in string literals.
// Unknown escapes are kept as written.
func unescapeSQL(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
