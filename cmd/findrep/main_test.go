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


package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/findrep/pkg/config"
	"github.com/walteh/findrep/pkg/files"
	"github.com/walteh/findrep/pkg/status"
	"github.com/walteh/findrep/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

func setupTree(t *testing.T) string {
	return testutils.WriteTree(t, map[string]string{
		"a.txt":     "foo and foo",
		"b.txt":     "nothing here",
		"c.log":     "foo",
		"sub/d.txt": "foo",
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func readReport(t *testing.T, path string) status.Report {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var r status.Report
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestFindCommand(t *testing.T) {
	dir := setupTree(t)
	report := filepath.Join(t.TempDir(), "report.json")

	out, err := run(t, "find", "--root", dir, "--include", "*.txt", "--search", "foo", "--progress=false", "--report", report)
	require.NoError(t, err)

	assert.Contains(t, out, "[finding in "+dir+"]")
	assert.Contains(t, out, "✓ a.txt")
	assert.Contains(t, out, "1 of 2 files matched, 2 occurrences found")
	assert.Contains(t, out, "report written to "+report)

	r := readReport(t, report)
	assert.Equal(t, "completed", r.State)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 1, r.Matched)
	require.Len(t, r.Results, 1)
	assert.Equal(t, "a.txt", r.Results[0].Name)

	assert.Equal(t, "foo and foo", testutils.Content(t, dir, "a.txt"), "find never writes")
}

func TestReplaceCommand(t *testing.T) {
	dir := setupTree(t)

	out, err := run(t, "replace", "-r", dir, "-i", "*.txt", "-s", "foo", "-w", "bar", "-R", "--progress=false")
	require.NoError(t, err)
	assert.Contains(t, out, "⟳ a.txt")
	assert.Contains(t, out, "⟳ sub/d.txt")

	assert.Equal(t, "bar and bar", testutils.Content(t, dir, "a.txt"))
	assert.Equal(t, "bar", testutils.Content(t, dir, "sub/d.txt"))
	assert.Equal(t, "nothing here", testutils.Content(t, dir, "b.txt"))
	assert.Equal(t, "foo", testutils.Content(t, dir, "c.log"))
}

func TestReplaceCommand_JobFile(t *testing.T) {
	dir := setupTree(t)
	jobFile := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobFile, []byte(`
root: .
include: "*.log"
search: foo
replace: qux
mode: find
`), 0o644))

	t.Run("file_values", func(t *testing.T) {
		out, err := run(t, "replace", "--config", jobFile, "--progress=false")
		require.NoError(t, err)
		assert.Contains(t, out, "findrep • job file "+jobFile)
		assert.Equal(t, "qux", testutils.Content(t, dir, "c.log"), "command picks the mode")
		assert.Equal(t, "foo and foo", testutils.Content(t, dir, "a.txt"))
	})

	t.Run("flags_win", func(t *testing.T) {
		_, err := run(t, "replace", "-c", jobFile, "--include", "*.txt", "--with", "", "--progress=false")
		require.NoError(t, err)
		assert.Equal(t, " and ", testutils.Content(t, dir, "a.txt"))
	})
}

func TestCommand_Errors(t *testing.T) {
	dir := setupTree(t)

	t.Run("missing_search", func(t *testing.T) {
		_, err := run(t, "find", "--root", dir, "--include", "*.txt", "--progress=false")
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrInvalid))
	})

	t.Run("path_in_include", func(t *testing.T) {
		_, err := run(t, "find", "--root", dir, "--include", "sub/*.txt", "--search", "foo", "--progress=false")
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrInvalid))
	})

	t.Run("double_star_include", func(t *testing.T) {
		_, err := run(t, "find", "--root", dir, "--include", "**", "--search", "foo", "--progress=false")
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrInvalid))
	})

	t.Run("root_not_found", func(t *testing.T) {
		report := filepath.Join(t.TempDir(), "report.json")
		out, err := run(t, "find", "--root", filepath.Join(dir, "missing"), "--include", "*.txt", "--search", "foo", "--progress=false", "--report", report)
		require.Error(t, err)
		assert.True(t, errors.Is(err, files.ErrRootNotFound))
		assert.Contains(t, out, "run failed")

		r := readReport(t, report)
		assert.Equal(t, "failed", r.State)
		assert.NotEmpty(t, r.Error)
	})

	t.Run("missing_job_file", func(t *testing.T) {
		_, err := run(t, "find", "--config", filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("positional_args", func(t *testing.T) {
		_, err := run(t, "find", "extra")
		require.Error(t, err)
	})
}

func TestFindCommand_NothingToDo(t *testing.T) {
	dir := setupTree(t)

	out, err := run(t, "find", "--root", dir, "--include", "*.md", "--search", "foo", "--progress=false")
	require.NoError(t, err, "an empty file list is not a failure")
	assert.Contains(t, out, "no files matched the include pattern")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Version)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "findrep version info")
}
