// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveFoldDir resolves the .fold directory path from user input.
// It normalizes the input (accepting either a project dir or a .fold dir)
// and follows redirect files for git worktrees.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.fold"
//   - "/path/to/project/.fold" -> "/path/to/project/.fold"
//   - "" -> "./.fold"
//
// Redirect handling:
//   - If .fold/redirect exists, follows it to the actual .fold location.
//     This supports git worktrees where .fold contains a redirect to the
//     main worktree.
func ResolveFoldDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	if filepath.Base(path) == ".fold" {
		return followRedirect(path)
	}

	return followRedirect(filepath.Join(path, ".fold"))
}

// followRedirect checks for a redirect file and follows it if present.
func followRedirect(foldDir string) string {
	redirectPath := filepath.Join(foldDir, "redirect")

	content, err := os.ReadFile(redirectPath) //nolint:gosec // redirect path is within .fold dir
	if err != nil {
		return foldDir
	}

	redirectTarget := strings.TrimSpace(string(content))
	if redirectTarget == "" {
		return foldDir
	}

	return filepath.Clean(filepath.Join(foldDir, redirectTarget))
}

// ConfigDir returns the user-level configuration directory.
// FOLD_CONFIG_DIR overrides; otherwise XDG_CONFIG_HOME/fold or
// ~/.config/fold.
func ConfigDir() string {
	if dir := os.Getenv("FOLD_CONFIG_DIR"); dir != "" {
		return filepath.Clean(dir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fold")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fold")
	}
	return filepath.Join(home, ".config", "fold")
}

// DataDir returns the user-level data directory for the session database.
// XDG_DATA_HOME/fold or ~/.local/share/fold.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "fold")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fold")
	}
	return filepath.Join(home, ".local", "share", "fold")
}

// ConfigFileCandidates returns the config file search order for a file
// being edited: the project-local .fold/config.yaml (resolved through
// redirects) first, then the user-level config.
func ConfigFileCandidates(fileDir string) []string {
	return []string{
		filepath.Join(ResolveFoldDir(fileDir), "config.yaml"),
		filepath.Join(ConfigDir(), "config.yaml"),
	}
}

// SessionDBPath returns the location of the session database.
func SessionDBPath() string {
	return filepath.Join(DataDir(), "sessions.db")
}

// TracesPath returns the default trace output file.
func TracesPath() string {
	return filepath.Join(ConfigDir(), "traces", "traces.jsonl")
}
