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

package operation

import (
	"context"

	"github.com/google/uuid"
)

// 📊 State is where a run, or the engine, is in its lifecycle
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted // every file was processed
	StateCancelled // stopped on request, or nothing matched the globs
	StateFailed    // an I/O error ended the run
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a run
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// 📄 MatchResult is a file with at least one match
type MatchResult struct {
	Path    string `json:"path" yaml:"path"`       // Absolute path
	Name    string `json:"name" yaml:"name"`       // Base name
	Matches int    `json:"matches" yaml:"matches"` // Occurrences found, before any replacement
}

// 📈 Progress is emitted once per processed file
type Progress struct {
	Percent int          // 0..100, never decreases within a run
	Index   int          // Zero based position of the file in the run
	Total   int          // Number of files in the run
	Result  *MatchResult // Nil when the file had no match
}

// 🏁 Outcome is the terminal report of a run
type Outcome struct {
	RunID        uuid.UUID
	State        State
	Err          error // Set only when State is StateFailed
	Total        int   // Files enumerated
	Processed    int   // Files read (and written, in replace mode)
	Matched      int   // Files with at least one match
	Replacements int   // Sum of matches over all matched files
}

// 📬 Sink receives a run's events. Calls are made from the run's worker
// goroutine, synchronously and in order: OnProgress once per processed file,
// then OnFinished exactly once.
type Sink interface {
	OnProgress(ctx context.Context, p Progress)
	OnFinished(ctx context.Context, o Outcome)
}

// 🔌 SinkFuncs adapts plain functions to a Sink; nil fields are skipped
type SinkFuncs struct {
	Progress func(ctx context.Context, p Progress)
	Finished func(ctx context.Context, o Outcome)
}

func (s SinkFuncs) OnProgress(ctx context.Context, p Progress) {
	if s.Progress != nil {
		s.Progress(ctx, p)
	}
}

func (s SinkFuncs) OnFinished(ctx context.Context, o Outcome) {
	if s.Finished != nil {
		s.Finished(ctx, o)
	}
}
