// Package scan discovers stylesheet files for the command line tool.
package scan

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultPatterns is used when no pattern is given.
var DefaultPatterns = []string{"**/*.css"}

// Stats tracks file discovery statistics
type Stats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped due to filtering
}

// Scanner expands glob patterns into stylesheet paths.
type Scanner struct {
	gitignorePath string

	once      sync.Once
	gitignore *ignore.GitIgnore
}

// New returns a scanner filtering relative paths through the .gitignore at
// gitignorePath. A missing file disables gitignore filtering.
func New(gitignorePath string) *Scanner {
	return &Scanner{gitignorePath: gitignorePath}
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func (s *Scanner) loadGitIgnore() *ignore.GitIgnore {
	s.once.Do(func() {
		if s.gitignorePath == "" {
			return
		}
		gi, err := ignore.CompileIgnoreFile(s.gitignorePath)
		if err != nil {
			return
		}
		s.gitignore = gi
	})
	return s.gitignore
}

// isGenerated reports build outputs and editor leftovers that are never
// hand-written stylesheets.
func isGenerated(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".min.css") ||
		strings.HasSuffix(base, "~") ||
		strings.HasPrefix(base, ".#")
}

// ShouldSkip determines if a file should be excluded
//
// Two-layer filtering:
// 1. Pattern check (fast): minified files and editor backups
// 2. Gitignore check: only for relative paths
func (s *Scanner) ShouldSkip(path string) bool {
	if isGenerated(path) {
		return true
	}

	// Absolute paths (like /tmp/...) are not affected by project gitignore
	if !filepath.IsAbs(path) {
		gi := s.loadGitIgnore()
		if gi != nil && gi.MatchesPath(filepath.ToSlash(path)) {
			return true
		}
	}

	return false
}

// Expand expands glob patterns to file paths, deduplicated, in pattern order.
// An empty pattern list uses DefaultPatterns.
func (s *Scanner) Expand(patterns []string) ([]string, Stats, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.ShouldSkip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// RelativePath returns a path relative to the current working directory
func RelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
