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
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalid is wrapped by every validation failure so callers can test with errors.Is.
var ErrInvalid = errors.Base("invalid job configuration")

// 🎚️ Mode selects whether a run only counts matches or also rewrites files
type Mode string

const (
	ModeFind    Mode = "find"
	ModeReplace Mode = "replace"
)

// 📚 Job describes one find/replace run
type Job struct {
	Root      string `json:"root" yaml:"root"`                           // Directory to search, must exist
	Include   string `json:"include" yaml:"include"`                     // File name glob, e.g. *.txt
	Exclude   string `json:"exclude,omitempty" yaml:"exclude,omitempty"` // Optional file name glob to leave out
	Recursive bool   `json:"recursive,omitempty" yaml:"recursive,omitempty"`
	Search    string `json:"search" yaml:"search"`                       // Literal text to look for
	Replace   string `json:"replace,omitempty" yaml:"replace,omitempty"` // Literal replacement, empty deletes
	Mode      Mode   `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// 🔁 Replacing reports whether matched files get rewritten
func (j Job) Replacing() bool {
	return j.Mode == ModeReplace
}

// 🔍 Validate checks the job can be started. It does not touch the filesystem;
// a missing root is reported when files are enumerated.
func (j Job) Validate() error {
	if strings.TrimSpace(j.Root) == "" {
		return errors.Errorf("%w: root is required", ErrInvalid)
	}
	if j.Search == "" {
		return errors.Errorf("%w: search is required", ErrInvalid)
	}
	if err := validateGlob("include", j.Include, true); err != nil {
		return err
	}
	if err := validateGlob("exclude", j.Exclude, false); err != nil {
		return err
	}

	switch j.Mode {
	case "", ModeFind, ModeReplace:
	default:
		return errors.Errorf("%w: unknown mode %q", ErrInvalid, j.Mode)
	}

	return nil
}

// globs are file name masks; the directory scope comes from Root and Recursive
func validateGlob(field, pattern string, required bool) error {
	if pattern == "" {
		if required {
			return errors.Errorf("%w: %s is required", ErrInvalid, field)
		}
		return nil
	}
	if strings.Contains(pattern, "/") {
		return errors.Errorf("%w: %s must be a file name pattern, got %q", ErrInvalid, field, pattern)
	}
	if strings.Contains(pattern, "**") {
		return errors.Errorf("%w: %s must not contain **, use recursive to search subdirectories, got %q", ErrInvalid, field, pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return errors.Errorf("%w: %s is not a valid glob: %q", ErrInvalid, field, pattern)
	}
	return nil
}

// 📝 String returns a short description of the job
func (j Job) String() string {
	scope := "top"
	if j.Recursive {
		scope = "recursive"
	}
	mode := j.Mode
	if mode == "" {
		mode = ModeFind
	}
	exclude := ""
	if j.Exclude != "" {
		exclude = " !" + j.Exclude
	}
	return fmt.Sprintf("%s %q in %s/%s%s (%s)", mode, j.Search, j.Root, j.Include, exclude, scope)
}
