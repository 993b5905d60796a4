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
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/findrep/pkg/files"
	"github.com/walteh/findrep/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 execute walks the job's files and returns the terminal outcome
func (e *Engine) execute(ctx context.Context, h *Handle, sink Sink) Outcome {
	logger := zerolog.Ctx(ctx)
	job := h.job
	out := Outcome{RunID: h.id}

	logger.Info().
		Str("root", job.Root).
		Str("include", job.Include).
		Str("exclude", job.Exclude).
		Bool("recursive", job.Recursive).
		Bool("replace", job.Replacing()).
		Msg("starting run")

	paths, err := files.Enumerate(ctx, files.Query{
		Root:      job.Root,
		Include:   job.Include,
		Exclude:   job.Exclude,
		Recursive: job.Recursive,
	})
	if err != nil {
		out.State = StateFailed
		out.Err = errors.Errorf("enumerating files: %w", err)
		return out
	}

	out.Total = len(paths)
	if out.Total == 0 {
		logger.Info().Msg("no files matched")
		out.State = StateCancelled
		return out
	}

	rule := text.Rule{Search: job.Search, Replace: job.Replace}

	for i, path := range paths {
		if i > 0 {
			h.pause(ctx, e.pacing)
		}
		if h.cancelRequested(ctx) {
			return cancelled(ctx, out)
		}

		result, err := scanFile(ctx, path, rule, job.Replacing())
		if err != nil {
			out.State = StateFailed
			out.Err = err
			return out
		}

		// a file read while cancel was requested leaves no trace
		if h.cancelRequested(ctx) {
			return cancelled(ctx, out)
		}

		if job.Replacing() && result.Count > 0 {
			if err := writeFile(ctx, path, result.Modified); err != nil {
				out.State = StateFailed
				out.Err = err
				return out
			}
		}
		out.Processed++

		p := Progress{
			Percent: percent(i+1, out.Total),
			Index:   i,
			Total:   out.Total,
		}
		if result.Count > 0 {
			p.Result = &MatchResult{
				Path:    path,
				Name:    filepath.Base(path),
				Matches: result.Count,
			}
			out.Matched++
			out.Replacements += result.Count
		}
		sink.OnProgress(ctx, p)
	}

	// a request that arrived while the last file was in flight still counts
	if h.cancelRequested(ctx) {
		return cancelled(ctx, out)
	}

	out.State = StateCompleted
	return out
}

func cancelled(ctx context.Context, out Outcome) Outcome {
	zerolog.Ctx(ctx).Info().Int("processed", out.Processed).Msg("run cancelled")
	out.State = StateCancelled
	return out
}

// 📝 scanFile reads one file and applies rule to its content in memory.
// Nothing is written; the result's Count is the match count before replacement.
func scanFile(ctx context.Context, path string, rule text.Rule, replace bool) (*text.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(&ReadError{Path: path, Err: err})
	}

	result, err := rule.Apply(content, replace)
	if err != nil {
		return nil, errors.Errorf("applying rule to %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", path).
		Int("matches", result.Count).
		Msg("scanned file")

	return result, nil
}

// 💾 writeFile puts rewritten content back in place
func writeFile(ctx context.Context, path string, data []byte) error {
	// existing files keep their mode, the perm argument only applies on create
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WithStack(&WriteError{Path: path, Err: err})
	}
	zerolog.Ctx(ctx).Debug().Str("file", path).Msg("rewrote file")
	return nil
}

// percent is round(done/total*100)
func percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(done) * 100 / float64(total)))
}
