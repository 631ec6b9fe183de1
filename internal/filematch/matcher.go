// Copyright (C) 2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package filematch resolves file-glob patterns into input file lists.
package filematch

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// NoMatchError is returned when a pattern matches no regular files.
type NoMatchError struct {
	Pattern string
	BaseDir string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no files match pattern %q in %s", e.Pattern, e.BaseDir)
}

// Matcher finds regular files matching a glob pattern.
// Supported syntax is that of doublestar: `*` within a path segment,
// `**` across directories, plus `?`, `[...]` and `{a,b}`.
type Matcher struct {
	baseDir string
}

// New returns a Matcher resolving relative patterns against baseDir.
// An empty baseDir means the working directory at match time.
func New(baseDir string) *Matcher {
	return &Matcher{baseDir: baseDir}
}

// Match returns the absolute, lexically sorted paths of all regular files
// matching pattern. A rooted literal prefix of the pattern replaces the
// base directory; `..` segments in the literal prefix walk up from it.
// After the first meta character the rest of the pattern is cleaned
// lexically, so `*/../*.csv` is the same as `*.csv` and matches files in
// the base directory even when it has no subdirectories.
func (m *Matcher) Match(pattern string) ([]string, error) {
	root, glob, err := m.split(pattern)
	if err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	matches, err := doublestar.Glob(os.DirFS(root), glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, &NoMatchError{Pattern: pattern, BaseDir: root}
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(match)))
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// split separates pattern into an absolute root directory and a glob
// relative to it.
func (m *Matcher) split(pattern string) (string, string, error) {
	prefix, glob := doublestar.SplitPattern(filepath.ToSlash(pattern))

	root := filepath.FromSlash(prefix)
	if !filepath.IsAbs(root) {
		base := m.baseDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", "", fmt.Errorf("resolve working directory: %w", err)
			}
			base = wd
		}
		root = filepath.Join(base, root)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", "", fmt.Errorf("resolve %q: %w", prefix, err)
	}

	return root, path.Clean(glob), nil
}
