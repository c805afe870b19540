// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-db2md/internal/fileutil"
)

// PandocEnv names the environment variable holding a pandoc path.
const PandocEnv = "DB2MD_PANDOC"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocMissing returns hints for a pandoc executable that cannot be run.
func ForPandocMissing() string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "add pandoc to the image, e.g. apt-get install -y pandoc")
	} else {
		hints = append(hints, "install pandoc from https://pandoc.org/installing.html")
	}

	if os.Getenv(PandocEnv) == "" {
		hints = append(hints, "or set "+PandocEnv+" / --pandoc to its path")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/db2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/db2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFolderLocked returns hints when another run holds the output folder.
func ForFolderLocked(outFolder string) string {
	lock := filepath.Join(outFolder, fileutil.LockFileName)
	return format("wait for the other run to finish, or remove " + lock + " if no run is active")
}

// ForUnsupportedSource returns hints for inputs with an unknown extension.
func ForUnsupportedSource() string {
	return format("pass a MediaWiki XML export (.xml) or a SQL dump (.sql)")
}

// ForUnsupportedDump returns hints for SQL dumps of an unknown schema.
func ForUnsupportedDump() string {
	return format("supported SQL dumps: MediaWiki (page, revision, text, user) and WordPress (wp_posts, wp_users)")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
