// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package files lists the files a job applies to.
package files

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRootNotFound is returned when the root path is missing or is not a directory.
var ErrRootNotFound = errors.Base("root directory not found")

// 🔎 Query selects files by name under a root directory
type Query struct {
	Root      string // Directory to search
	Include   string // File name glob
	Exclude   string // Optional file name glob removed from the result
	Recursive bool   // Descend into subdirectories
}

// 📋 Enumerate returns the absolute paths of regular files under q.Root whose
// names match q.Include, minus those whose names match q.Exclude. The exclusion
// set is computed with the same root and recursion as the inclusion set.
//
// Order follows the directory walk and is not guaranteed to be stable across
// platforms; callers must not depend on it.
func Enumerate(ctx context.Context, q Query) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	root, err := filepath.Abs(q.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root %q: %w", q.Root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("%w: %s: %s", ErrRootNotFound, root, err.Error())
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	fsys := os.DirFS(root)

	included, err := glob(fsys, q.Include, q.Recursive)
	if err != nil {
		return nil, errors.Errorf("matching include %q: %w", q.Include, err)
	}

	if q.Exclude != "" {
		excluded, err := glob(fsys, q.Exclude, q.Recursive)
		if err != nil {
			return nil, errors.Errorf("matching exclude %q: %w", q.Exclude, err)
		}
		included = difference(included, excluded)
	}

	paths := make([]string, 0, len(included))
	for _, rel := range included {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
	}

	logger.Debug().
		Str("root", root).
		Str("include", q.Include).
		Str("exclude", q.Exclude).
		Bool("recursive", q.Recursive).
		Int("files", len(paths)).
		Msg("enumerated files")

	return paths, nil
}

// glob matches a file name mask either in the top directory or at any depth
func glob(fsys fs.FS, mask string, recursive bool) ([]string, error) {
	pattern := singleStar(mask)
	if recursive {
		pattern = "**/" + mask
	}
	return doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
}

// singleStar folds runs of unescaped '*' into one so a mask can never cross
// directories; depth is decided by the recursive flag alone.
func singleStar(mask string) string {
	var b strings.Builder
	b.Grow(len(mask))

	escaped, star := false, false
	for _, r := range mask {
		switch {
		case escaped:
			escaped, star = false, false
		case r == '\\':
			escaped, star = true, false
		case r == '*':
			if star {
				continue
			}
			star = true
		default:
			star = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// difference keeps the order of a
func difference(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, p := range b {
		drop[p] = struct{}{}
	}

	out := make([]string, 0, len(a))
	for _, p := range a {
		if _, ok := drop[p]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
