package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	db2md "github.com/alnah/go-db2md"
	"github.com/alnah/go-db2md/internal/frontmatter"
	"github.com/alnah/go-db2md/internal/slugify"
)

func newCheckCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "check <outFolder>",
		Short: "Check converted documents for duplicate ids and dangling aliases",
		Args:  argsBetween(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], env.Stdout)
		},
	}
}

// checkedDoc is what check reads back from one converted file.
type checkedDoc struct {
	file string
	meta frontmatter.Meta
}

// runCheck reads the front matter of every Markdown file in dir and reports
// identifiers used by several files and aliases pointing nowhere.
func runCheck(dir string, w io.Writer) error {
	docs, problems, err := readDocs(dir)
	if err != nil {
		return err
	}

	byID := make(map[string][]string, len(docs))
	for _, d := range docs {
		id := d.meta.ID
		if id == "" {
			id = slugify.ID(strings.TrimSuffix(d.file, db2md.MarkdownExt))
		}
		byID[id] = append(byID[id], d.file)
	}

	for id, files := range byID {
		if len(files) > 1 {
			slices.Sort(files)
			problems = append(problems, fmt.Sprintf("id %q is used by %s", id, strings.Join(files, ", ")))
		}
	}

	for _, d := range docs {
		for _, target := range d.meta.AliasFor {
			if _, ok := byID[slugify.ID(target)]; !ok {
				problems = append(problems, fmt.Sprintf("%s: alias_for %q matches no document", d.file, target))
			}
		}
	}

	slices.Sort(problems)
	for _, p := range problems {
		fmt.Fprintf(w, "  [ERROR] %s\n", p)
	}
	fmt.Fprintf(w, "Checked %d documents, %d problems\n", len(docs), len(problems))

	if len(problems) > 0 {
		return fmt.Errorf("%w: %d", ErrCheckFailed, len(problems))
	}
	return nil
}

// readDocs parses every Markdown file directly under dir. Files with broken
// front matter are reported as problems.
func readDocs(dir string) ([]checkedDoc, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var docs []checkedDoc
	var problems []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != db2md.MarkdownExt {
			continue
		}
		meta, err := readMeta(filepath.Join(dir, e.Name()))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		docs = append(docs, checkedDoc{file: e.Name(), meta: meta})
	}
	return docs, problems, nil
}

func readMeta(path string) (frontmatter.Meta, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the listed folder
	if err != nil {
		return frontmatter.Meta{}, err
	}
	defer f.Close()

	meta, _, err := frontmatter.Parse(f)
	return meta, err
}
