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

package status

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/findrep/pkg/operation"
)

// 📝 Logging writes run events to the zerolog logger found in the context
type Logging struct{}

var _ operation.Sink = Logging{}

func (Logging) OnProgress(ctx context.Context, p operation.Progress) {
	logger := zerolog.Ctx(ctx)

	if p.Result == nil {
		logger.Trace().
			Int("percent", p.Percent).
			Int("index", p.Index).
			Int("total", p.Total).
			Msg("progress")
		return
	}

	logger.Info().
		Int("percent", p.Percent).
		Str("file", p.Result.Path).
		Int("matches", p.Result.Matches).
		Msg("match")
}

func (Logging) OnFinished(ctx context.Context, o operation.Outcome) {
	logger := zerolog.Ctx(ctx)

	var event *zerolog.Event
	switch o.State {
	case operation.StateFailed:
		event = logger.Error().Err(o.Err)
	case operation.StateCancelled:
		event = logger.Warn()
	default:
		event = logger.Info()
	}

	event.
		Str("run_id", o.RunID.String()).
		Str("state", o.State.String()).
		Int("total", o.Total).
		Int("processed", o.Processed).
		Int("matched", o.Matched).
		Int("replacements", o.Replacements).
		Msg("finished")
}
