package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	db2md "github.com/alnah/go-db2md"
	"github.com/alnah/go-db2md/internal/batch"
	"github.com/alnah/go-db2md/internal/config"
	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/hints"
	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/pandoc"
	"github.com/alnah/go-db2md/internal/source"
)

// convertFlags holds the flags of the convert command.
type convertFlags struct {
	config        string
	filter        string
	logLevel      string
	logFormat     string
	extraMetadata string
	pandocPath    string
	dryRun        bool
	noMetadata    bool
	htmlPreview   bool
}

func newConvertCommand(env *Environment) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <file> [outFolder]",
		Short: "Convert a MediaWiki XML export or a SQL dump to Markdown files",
		Long: `Convert every article of a MediaWiki XML export (.xml) or a MediaWiki or
WordPress SQL dump (.sql) into one Markdown file with YAML front matter.

The run exits 0 even when some documents fail; see the summary for details.
outFolder may be omitted when the config file sets it.`,
		Args: argsBetween(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args, &flags, cmd.Flags(), env)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "Config file name or path")
	f.StringVar(&flags.filter, "filter", "", "Only convert documents whose id contains this text")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (default WARN)")
	f.StringVar(&flags.logFormat, "log-format", "", "Log format: console, json (default console)")
	f.StringVar(&flags.extraMetadata, "extra-metadata", "", "JSON object merged into every document's front matter")
	f.StringVar(&flags.pandocPath, "pandoc", "", "Path to the pandoc executable (default $"+hints.PandocEnv+" or PATH)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the converted documents instead of writing them")
	f.BoolVar(&flags.noMetadata, "no-metadata", false, "Do not write front matter")
	f.BoolVar(&flags.htmlPreview, "html-preview", false, "Also write an HTML preview next to each document")

	return cmd
}

// runConvert loads settings, converts the dump and prints the run summary.
func runConvert(ctx context.Context, args []string, flags *convertFlags, fs *flag.FlagSet, env *Environment) error {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	if len(args) > 1 {
		cfg.OutFolder = args[1]
	}
	if err := mergeFlags(flags, fs, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.OutFolder == "" && !cfg.DryRun {
		return fmt.Errorf("%w: pass it as the second argument or set outFolder in the config", ErrNoOutFolder)
	}
	outFolder := cfg.OutFolder
	if outFolder != "" {
		if outFolder, err = filepath.Abs(outFolder); err != nil {
			return fmt.Errorf("resolving output folder: %w", err)
		}
	}

	level := cfg.Level()
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.LogFormat,
		Writer: env.Stderr,
		Color:  logging.IsTerminal(env.Stderr),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	records, err := source.Open(args[0])
	if err != nil {
		if errors.Is(err, source.ErrUnsupportedSource) {
			return fmt.Errorf("%w%s", err, hints.ForUnsupportedSource())
		}
		return err
	}

	conv := db2md.NewConverter(
		db2md.WithPandocPath(env.pandocPath(cfg.PandocPath)),
		db2md.WithCommandRunner(env.Runner),
		db2md.WithHTMLPreview(cfg.HTMLPreview),
	)
	if _, err := conv.StructuralVersion(ctx); err != nil {
		if errors.Is(err, pandoc.ErrNotInstalled) {
			return fmt.Errorf("%w%s", err, hints.ForPandocMissing())
		}
		return err
	}

	if !cfg.DryRun {
		unlock, err := fileutil.LockDir(outFolder)
		if err != nil {
			if errors.Is(err, fileutil.ErrFolderLocked) {
				return fmt.Errorf("%w%s", err, hints.ForFolderLocked(outFolder))
			}
			return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
		}
		defer func() { _ = unlock() }()
	}

	b, runErr := conv.Run(ctx, records, batch.Config{
		Name:          "Database to Markdown: " + args[0],
		LogLevel:      level,
		DryRun:        cfg.DryRun,
		NoMetadata:    cfg.NoMetadata,
		ExtraMetadata: cfg.ExtraMetadata,
		Filter:        cfg.Filter,
		OutFolder:     outFolder,
		Columns:       cfg.Columns,
		Logger:        logger,
	})

	if cfg.DryRun {
		printDryRun(env.Stdout, b)
	}
	if table := b.Table(); table != "" {
		fmt.Fprintln(env.Stdout, table)
	}
	fmt.Fprintln(env.Stdout, b.Summary())

	if runErr != nil && errors.Is(runErr, source.ErrUnsupportedDump) {
		return fmt.Errorf("%w%s", runErr, hints.ForUnsupportedDump())
	}
	return runErr
}

// loadConfig returns the defaults, or the named config file.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(nameOrPath)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags copies explicitly set flags over cfg (CLI wins). Extra
// metadata from the flag is merged key by key over the config's.
func mergeFlags(flags *convertFlags, fs *flag.FlagSet, cfg *config.Config) error {
	if fs.Changed("filter") {
		cfg.Filter = flags.filter
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if fs.Changed("pandoc") {
		cfg.PandocPath = flags.pandocPath
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if fs.Changed("no-metadata") {
		cfg.NoMetadata = flags.noMetadata
	}
	if fs.Changed("html-preview") {
		cfg.HTMLPreview = flags.htmlPreview
	}

	if flags.extraMetadata != "" {
		extra, err := parseExtraMetadata(flags.extraMetadata)
		if err != nil {
			return err
		}
		if cfg.ExtraMetadata == nil {
			cfg.ExtraMetadata = make(map[string]any, len(extra))
		}
		maps.Copy(cfg.ExtraMetadata, extra)
	}
	return nil
}

// parseExtraMetadata decodes a JSON object.
func parseExtraMetadata(raw string) (map[string]any, error) {
	var extra map[string]any
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtraMetadata, err)
	}
	if extra == nil {
		return nil, ErrInvalidExtraMetadata
	}
	return extra, nil
}

// printDryRun writes the would-be output of every completed job.
func printDryRun(w io.Writer, b *batch.Batch) {
	for _, job := range b.Jobs() {
		res := job.Result()
		if res == nil {
			continue
		}
		fmt.Fprintf(w, "==> %s\n", res.Path)
		fmt.Fprint(w, res.FrontMatter)
		fmt.Fprintln(w, res.Text)
	}
}
