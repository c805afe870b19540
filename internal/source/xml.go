package source

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

type xmlPage struct {
	Title     string        `xml:"title"`
	Revisions []xmlRevision `xml:"revision"`
}

type xmlRevision struct {
	Timestamp   string `xml:"timestamp"`
	Contributor struct {
		Username string `xml:"username"`
	} `xml:"contributor"`
	Text string `xml:"text"`
}

// xmlRecords streams <page> elements of a MediaWiki export, whatever its
// schema version namespace. The first revision supplies timestamp, author
// and text.
func xmlRecords(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Record{}, fmt.Errorf("opening source: %w", err))
			return
		}
		defer func() { _ = f.Close() }()

		if err := decodePages(f, yield); err != nil {
			yield(Record{}, err)
		}
	}
}

func decodePages(r io.Reader, yield func(Record, error) bool) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}

		var page xmlPage
		if err := dec.DecodeElement(&page, &start); err != nil {
			return fmt.Errorf("reading xml page: %w", err)
		}
		if !yield(page.record(), nil) {
			return nil
		}
	}
}

func (p xmlPage) record() Record {
	rec := Record{Title: p.Title, Format: FormatWiki}
	if len(p.Revisions) > 0 {
		rev := p.Revisions[0]
		rec.CreatedAt = rev.Timestamp
		rec.Author = rev.Contributor.Username
		rec.Body = rev.Text
	}
	return rec
}
