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

// Package text counts and replaces literal substrings in file content.
package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single literal find/replace pair
type Rule struct {
	// Search is the literal text to look for, never empty
	Search string

	// Replace is the text substituted for Search, empty means delete
	Replace string
}

// 📊 Result describes what applying a rule to some content found or did
type Result struct {
	// Count is the number of non-overlapping occurrences of Search in the original content
	Count int

	// WasModified is true when Modified differs from Original
	WasModified bool

	// Original is the content as given
	Original []byte

	// Modified is the content after replacement, equal to Original in find-only mode
	Modified []byte
}

// 🔍 Validate checks the rule can be applied
func (r Rule) Validate() error {
	if r.Search == "" {
		return errors.Errorf("search text is required")
	}
	return nil
}

// 🧮 Count returns the number of non-overlapping occurrences of search in content.
//
// The count is derived from how much shorter the content gets when every
// occurrence is removed: (len(content) - len(content without search)) / len(search).
// Removal scans left to right and never revisits consumed bytes, so overlapping
// occurrences count once: "aa" in "aaa" is 1.
func Count(content, search string) int {
	if search == "" {
		return 0
	}
	removed := strings.ReplaceAll(content, search, "")
	return (len(content) - len(removed)) / len(search)
}

// 🎯 Apply counts the rule's occurrences in content and, when replace is set and
// there is at least one occurrence, substitutes every one of them.
func (r Rule) Apply(content []byte, replace bool) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	original := string(content)
	result := &Result{
		Count:    Count(original, r.Search),
		Original: content,
		Modified: content,
	}

	if !replace || result.Count == 0 {
		return result, nil
	}

	modified := strings.ReplaceAll(original, r.Search, r.Replace)
	result.Modified = []byte(modified)
	result.WasModified = modified != original

	return result, nil
}
