// Package db2md migrates wiki and blog dumps to Markdown files with YAML
// front matter.
//
// # Quick Start
//
// Open a dump, create a converter and run it over the records:
//
//	records, err := source.Open("dump.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv := db2md.NewConverter(db2md.WithPandocPath("/usr/bin/pandoc"))
//	b, err := conv.Run(ctx, records, batch.Config{OutFolder: "out"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(b.Summary())
//
// Every record becomes one job with exactly one terminal status. A failing
// record never stops the run.
//
// # Conversion Pipeline
//
// Each record goes through these stages:
//
//  1. Identifier assignment, filter and namespace guard
//  2. Collision check against the run's identifier registry
//  3. Source fixes (regex rules for wiki or HTML markup)
//  4. Parsing to a document tree via Pandoc
//  5. Tree passes: heading balance, link cleanup, namespace extraction
//  6. Rendering to CommonMark via Pandoc
//  7. Markdown fixes and an outline audit
//  8. Front matter assembly and output
//
// # Outcomes
//
// Jobs end as OK, WARN (completed with warnings), SKIP (filtered or
// namespaced title), FAIL (identifier collision) or INCOMPLETE (a
// validation fault or an unexpected error).
//
// # Dry Run
//
// With batch.Config.DryRun set nothing is written; each job's result holds
// the rendered text, front matter and path instead.
package db2md
