package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/hints"
)

// minPandocMajor is the oldest pandoc whose JSON output the tree codec reads.
const minPandocMajor = 3

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   pandocInfo `json:"pandoc"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	PandocEnv string `json:"db2md_pandoc"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func newDoctorCommand(env *Environment) *cobra.Command {
	var jsonOutput bool
	var pandocPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that pandoc and the system are ready for conversion",
		Args:  argsBetween(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := runDoctor(cmd.Context(), env, pandocPath)

			if jsonOutput {
				enc := json.NewEncoder(env.Stdout)
				enc.SetIndent("", "  ")
				_ = enc.Encode(result)
			} else {
				printDoctorResult(env.Stdout, result)
			}

			if result.Status == "errors" {
				return fmt.Errorf("doctor: %s", strings.Join(result.Errors, "; "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	cmd.Flags().StringVar(&pandocPath, "pandoc", "", "Path to the pandoc executable")
	return cmd
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, env *Environment, pandocPath string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Container: hints.IsInContainer(),
			PandocEnv: env.Getenv(hints.PandocEnv),
		},
	}

	checkPandoc(ctx, env, pandocPath, result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkPandoc runs pandoc --version and checks the major version.
func checkPandoc(ctx context.Context, env *Environment, path string, result *doctorResult) {
	conv := env.pandoc(path)
	result.Pandoc.Path = conv.Path

	version, err := conv.Version(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("pandoc not usable: %v%s", err, hints.ForPandocMissing()))
		return
	}
	result.Pandoc.Found = true
	result.Pandoc.Version = version

	major, ok := pandocMajor(version)
	switch {
	case !ok:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not read pandoc version from %q", version))
	case major < minPandocMajor:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("pandoc %d.x is older than %d.0; its JSON output may not be readable", major, minPandocMajor))
	}
}

// pandocMajor extracts the major version from a line like "pandoc 3.1.9".
func pandocMajor(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	majorStr, _, _ := strings.Cut(fields[1], ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return 0, false
	}
	return major, true
}

// checkSystem verifies the temp directory used for pandoc input is writable.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("test", "txt")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %v", err))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "db2md doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pandoc")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  [OK] Found: %s\n", r.Pandoc.Path)
		fmt.Fprintf(w, "  [OK] Version: %s\n", r.Pandoc.Version)
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.PandocEnv != "" {
		fmt.Fprintf(w, "  [OK] %s=%s\n", hints.PandocEnv, r.Env.PandocEnv)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
