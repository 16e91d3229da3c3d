package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Candidates are the manifest file names that are searched by Locate, in
// order of preference.
var Candidates = []string{"composer.json", "package.json"}

// ErrNotFound is returned by Locate when no manifest exists.
var ErrNotFound = errors.New("no manifest found, expected one of: " + strings.Join(Candidates, ", "))

// Locate returns the path of the preferred manifest in the dir directory.
func Locate(dir string, exists func(path string) bool) (string, error) {
	for _, name := range Candidates {
		p := filepath.Join(dir, name)
		if exists(p) {
			return p, nil
		}
	}

	return "", ErrNotFound
}

// FileExists returns true if path exists and is not a directory.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !fi.IsDir()
}
