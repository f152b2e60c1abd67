package walker

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	".treemap",
	"dist",
	"build",
	".idea",
	".vscode",
}

// skipDir reports whether a directory is one of DefaultExcludes. Names are
// compared without case so .Git and .git are both skipped.
func skipDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude reports whether relPath is selected by patterns. No
// patterns selects every document.
func MatchesInclude(relPath string, patterns []string) bool {
	return len(patterns) == 0 || match(relPath, patterns)
}

// MatchesExclude reports whether relPath is rejected by patterns. No
// patterns rejects nothing.
func MatchesExclude(relPath string, patterns []string) bool {
	return len(patterns) > 0 && match(relPath, patterns)
}

// match tries each pattern against the slash path and then against the bare
// file name, so "movies.json" selects data/movies.json as well.
func match(relPath string, patterns []string) bool {
	p := filepath.ToSlash(relPath)
	name := path.Base(p)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
