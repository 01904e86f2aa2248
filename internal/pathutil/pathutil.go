package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// DataRelative returns the path to target relative to the provided data directory.
// The returned path always uses forward slashes to simplify downstream processing
// and ensure platform agnosticism.
func DataRelative(dataDir, target string) (string, error) {
	base := NormalizePath(dataDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}
