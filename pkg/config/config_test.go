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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func validJob() Job {
	return Job{
		Root:    "/tmp/project",
		Include: "*.txt",
		Search:  "foo",
	}
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(j *Job)
		errContains string
	}{
		{
			name:   "minimal",
			mutate: func(j *Job) {},
		},
		{
			name: "full_replace",
			mutate: func(j *Job) {
				j.Exclude = "*_test.txt"
				j.Recursive = true
				j.Replace = "bar"
				j.Mode = ModeReplace
			},
		},
		{
			name:   "empty_replacement_allowed",
			mutate: func(j *Job) { j.Mode = ModeReplace },
		},
		{
			name:        "missing_root",
			mutate:      func(j *Job) { j.Root = "" },
			errContains: "root is required",
		},
		{
			name:        "blank_root",
			mutate:      func(j *Job) { j.Root = "   " },
			errContains: "root is required",
		},
		{
			name:        "missing_search",
			mutate:      func(j *Job) { j.Search = "" },
			errContains: "search is required",
		},
		{
			name:        "missing_include",
			mutate:      func(j *Job) { j.Include = "" },
			errContains: "include is required",
		},
		{
			name:        "include_with_directory",
			mutate:      func(j *Job) { j.Include = "sub/*.txt" },
			errContains: "include must be a file name pattern",
		},
		{
			name:        "double_star_include",
			mutate:      func(j *Job) { j.Include = "**" },
			errContains: "include must not contain **",
		},
		{
			name:        "double_star_exclude",
			mutate:      func(j *Job) { j.Exclude = "**.log" },
			errContains: "exclude must not contain **",
		},
		{
			name:        "bad_include_glob",
			mutate:      func(j *Job) { j.Include = "[a-" },
			errContains: "include is not a valid glob",
		},
		{
			name:        "bad_exclude_glob",
			mutate:      func(j *Job) { j.Exclude = "{a,b" },
			errContains: "exclude is not a valid glob",
		},
		{
			name:        "unknown_mode",
			mutate:      func(j *Job) { j.Mode = "delete" },
			errContains: `unknown mode "delete"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(&job)

			err := job.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "error should wrap ErrInvalid")
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestJob_Replacing(t *testing.T) {
	job := validJob()
	assert.False(t, job.Replacing(), "empty mode should mean find")

	job.Mode = ModeFind
	assert.False(t, job.Replacing())

	job.Mode = ModeReplace
	assert.True(t, job.Replacing())
}

func TestJob_String(t *testing.T) {
	job := validJob()
	assert.Equal(t, `find "foo" in /tmp/project/*.txt (top)`, job.String())

	job.Mode = ModeReplace
	job.Exclude = "b*"
	job.Recursive = true
	assert.Equal(t, `replace "foo" in /tmp/project/*.txt !b* (recursive)`, job.String())
}
