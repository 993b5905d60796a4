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
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/findrep/pkg/config"
	"github.com/walteh/findrep/pkg/log"
	"github.com/walteh/findrep/pkg/operation"
)

// 🖥️ Console prints a run for a person watching the terminal
type Console struct {
	logger    *log.Logger
	formatter Formatter
	job       config.Job
	root      string

	showBar bool
	bar     *pterm.ProgressbarPrinter
	last    int
}

var _ operation.Sink = (*Console)(nil)

// ConsoleOption configures a Console
type ConsoleOption func(*Console)

// WithProgressBar shows a pterm progress bar while the run is going
func WithProgressBar(show bool) ConsoleOption {
	return func(c *Console) {
		c.showBar = show
	}
}

// WithFormatter replaces the default wording
func WithFormatter(f Formatter) ConsoleOption {
	return func(c *Console) {
		c.formatter = f
	}
}

// 🏭 NewConsole creates a console sink for job
func NewConsole(logger *log.Logger, job config.Job, opts ...ConsoleOption) *Console {
	root, err := filepath.Abs(job.Root)
	if err != nil {
		root = job.Root
	}

	c := &Console{
		logger:    logger,
		formatter: NewDefaultFormatter(),
		job:       job,
		root:      root,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// 🚀 Begin prints the run header and starts the progress bar
func (c *Console) Begin(ctx context.Context) {
	c.logger.StartRun(ctx, log.RunOperation{
		Root:    c.root,
		Include: c.job.Include,
		Exclude: c.job.Exclude,
		Search:  c.job.Search,
		Replace: c.job.Replacing(),
	})

	if !c.showBar {
		return
	}

	bar, err := pterm.DefaultProgressbar.
		WithTotal(100).
		WithTitle("processing").
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("starting progress bar")
		return
	}
	c.bar = bar
}

func (c *Console) OnProgress(ctx context.Context, p operation.Progress) {
	if c.bar != nil {
		if step := p.Percent - c.last; step > 0 {
			c.bar.Add(step)
		}
	}
	c.last = p.Percent
	zerolog.Ctx(ctx).Debug().Msg(c.formatter.FormatProgress(p))

	if p.Result == nil {
		return
	}

	c.logger.LogMatch(ctx, log.FileMatch{
		Path:      c.display(p.Result.Path),
		Matches:   p.Result.Matches,
		Rewritten: c.job.Replacing(),
	})
}

func (c *Console) OnFinished(ctx context.Context, o operation.Outcome) {
	if c.bar != nil {
		if _, err := c.bar.Stop(); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("stopping progress bar")
		}
		c.bar = nil
	}

	matches := c.logger.EndRun(ctx)
	if len(matches) > 0 {
		c.logger.LogNewline()
		if table, err := RenderTable(matches); err == nil {
			c.logger.Info("matched files\n" + table)
		}
	}

	msg := c.formatter.FormatOutcome(o, c.job.Replacing())
	switch o.State {
	case operation.StateCompleted:
		c.logger.Success(msg)
	case operation.StateFailed:
		c.logger.Error(msg)
	default:
		c.logger.Warning(msg)
	}
}

// display shows paths relative to the run root where possible
func (c *Console) display(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// 📊 RenderTable lays out matched files as a table
func RenderTable(matches []log.FileMatch) (string, error) {
	data := pterm.TableData{{"File", "Matches"}}
	total := 0
	for _, m := range matches {
		data = append(data, []string{m.Path, strconv.Itoa(m.Matches)})
		total += m.Matches
	}
	data = append(data, []string{"total", strconv.Itoa(total)})

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
