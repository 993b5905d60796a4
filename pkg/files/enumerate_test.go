package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// writeTree creates files relative to dir
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o644))
	}
}

func abs(dir string, rel ...string) []string {
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		out = append(out, filepath.Join(dir, filepath.FromSlash(r)))
	}
	return out
}

func TestEnumerate(t *testing.T) {
	tree := []string{
		"a.txt",
		"b.log",
		"notes_test.txt",
		"sub/c.txt",
		"sub/d.log",
		"sub/deeper/e.txt",
		"sub/deeper/f_test.txt",
	}

	tests := []struct {
		name      string
		include   string
		exclude   string
		recursive bool
		want      []string
	}{
		{
			name:    "top_only",
			include: "*.txt",
			want:    []string{"a.txt", "notes_test.txt"},
		},
		{
			name:    "double_star_stays_top_only",
			include: "**",
			want:    []string{"a.txt", "b.log", "notes_test.txt"},
		},
		{
			name:    "double_star_exclude_stays_top_only",
			include: "*",
			exclude: "**.txt",
			want:    []string{"b.log"},
		},
		{
			name:      "double_star_recursive",
			include:   "**.log",
			recursive: true,
			want:      []string{"b.log", "sub/d.log"},
		},
		{
			name:      "recursive",
			include:   "*.txt",
			recursive: true,
			want:      []string{"a.txt", "notes_test.txt", "sub/c.txt", "sub/deeper/e.txt", "sub/deeper/f_test.txt"},
		},
		{
			name:    "top_only_with_exclude",
			include: "*.txt",
			exclude: "*_test.txt",
			want:    []string{"a.txt"},
		},
		{
			name:      "recursive_with_exclude",
			include:   "*.txt",
			exclude:   "*_test.txt",
			recursive: true,
			want:      []string{"a.txt", "sub/c.txt", "sub/deeper/e.txt"},
		},
		{
			name:      "exclude_everything",
			include:   "*.log",
			exclude:   "*",
			recursive: true,
			want:      []string{},
		},
		{
			name:    "no_match",
			include: "*.md",
			want:    []string{},
		},
		{
			name:      "alternatives",
			include:   "*.{txt,log}",
			exclude:   "*_test.*",
			recursive: true,
			want:      []string{"a.txt", "b.log", "sub/c.txt", "sub/d.log", "sub/deeper/e.txt"},
		},
		{
			name:    "directories_are_not_files",
			include: "sub*",
			want:    []string{},
		},
	}

	dir := t.TempDir()
	writeTree(t, dir, tree...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Enumerate(context.Background(), Query{
				Root:      dir,
				Include:   tt.include,
				Exclude:   tt.exclude,
				Recursive: tt.recursive,
			})
			require.NoError(t, err)

			// order is filesystem dependent, only membership is checked
			assert.ElementsMatch(t, abs(dir, tt.want...), got)
		})
	}
}

func TestEnumerate_PathsAreAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.txt")

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	got, err := Enumerate(context.Background(), Query{Root: rel, Include: "*.txt"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, filepath.IsAbs(got[0]), "path %q should be absolute", got[0])
}

func TestEnumerate_RootNotFound(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "file.txt")

	tests := []struct {
		name string
		root string
	}{
		{name: "missing", root: filepath.Join(dir, "missing")},
		{name: "not_a_directory", root: filepath.Join(dir, "file.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Enumerate(context.Background(), Query{Root: tt.root, Include: "*"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRootNotFound), "error should wrap ErrRootNotFound: %v", err)
		})
	}
}

func TestSingleStar(t *testing.T) {
	tests := []struct {
		mask string
		want string
	}{
		{mask: "*.txt", want: "*.txt"},
		{mask: "**", want: "*"},
		{mask: "a***b", want: "a*b"},
		{mask: "**.go", want: "*.go"},
		{mask: `\**`, want: `\**`},
		{mask: `x\*\*`, want: `x\*\*`},
		{mask: "[*]*", want: "[*]*"},
	}

	for _, tt := range tests {
		t.Run(tt.mask, func(t *testing.T) {
			assert.Equal(t, tt.want, singleStar(tt.mask))
		})
	}
}

func TestDifference(t *testing.T) {
	got := difference([]string{"c", "a", "b", "d"}, []string{"b", "x"})
	assert.Equal(t, []string{"c", "a", "d"}, got)

	assert.Equal(t, []string{"a"}, difference([]string{"a"}, nil))
	assert.Empty(t, difference(nil, []string{"a"}))
}
