package top

import (
	"os"
	"strings"
)

// contractUserPath detects if a path is within the user's home directory, and
// if so, replaces the home directory component with a tilde.
func contractUserPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home || strings.HasPrefix(path, home+string(os.PathSeparator)) {
		path = "~" + strings.TrimPrefix(path, home)
	}
	return path
}
