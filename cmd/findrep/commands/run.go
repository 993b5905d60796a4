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

package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/findrep/cmd/findrep/opts"
	"github.com/walteh/findrep/pkg/config"
	"github.com/walteh/findrep/pkg/log"
	"github.com/walteh/findrep/pkg/operation"
	"github.com/walteh/findrep/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// jobFlags are the flags shared by find and replace
type jobFlags struct {
	root      string
	include   string
	exclude   string
	recursive bool
	search    string
	replace   string
	report    string
	progress  bool
}

func (f *jobFlags) bind(cmd *cobra.Command, withReplacement bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.root, "root", "r", "", "directory to search")
	flags.StringVarP(&f.include, "include", "i", "", "file name pattern to include, e.g. *.txt")
	flags.StringVarP(&f.exclude, "exclude", "x", "", "file name pattern to leave out")
	flags.BoolVarP(&f.recursive, "recursive", "R", false, "include subdirectories")
	flags.StringVarP(&f.search, "search", "s", "", "literal text to find")
	if withReplacement {
		flags.StringVarP(&f.replace, "with", "w", "", "literal replacement text, empty deletes matches")
	}
	flags.StringVar(&f.report, "report", "", "write the matched files to a .json or .yaml report")
	flags.BoolVar(&f.progress, "progress", true, "show a progress bar")
}

// job merges the job file, if any, with the flags that were set
func (f *jobFlags) job(cmd *cobra.Command, o *opts.RootOpts, mode config.Mode) (config.Job, error) {
	var job config.Job
	if o.JobFile != "" {
		loaded, err := config.Decode(cmd.Context(), o.JobFile)
		if err != nil {
			return config.Job{}, errors.Errorf("loading job file: %w", err)
		}
		job = *loaded
		log.FromContext(cmd.Context()).Header("job file " + o.JobFile)
	}

	flags := cmd.Flags()
	if flags.Changed("root") || job.Root == "" {
		job.Root = f.root
	}
	if flags.Changed("include") || job.Include == "" {
		job.Include = f.include
	}
	if flags.Changed("exclude") {
		job.Exclude = f.exclude
	}
	if flags.Changed("recursive") {
		job.Recursive = f.recursive
	}
	if flags.Changed("search") || job.Search == "" {
		job.Search = f.search
	}
	if flags.Changed("with") {
		job.Replace = f.replace
	}
	job.Mode = mode

	if job.Root == "" {
		job.Root = "."
	}

	return job, nil
}

// execute runs job to the end. An interrupt asks the run to stop before it
// touches another file.
func execute(ctx context.Context, o *opts.RootOpts, f *jobFlags, job config.Job) error {
	logger := zerolog.Ctx(ctx)
	userLogger := log.FromContext(ctx)

	if err := job.Validate(); err != nil {
		return err
	}

	collector := status.NewCollector()
	console := status.NewConsole(userLogger, job, status.WithProgressBar(f.progress))
	console.Begin(ctx)

	h, err := o.Engine.Start(ctx, job, status.Multi{collector, console, status.Logging{}})
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		<-h.Done()
		return nil
	})
	g.Go(func() error {
		select {
		case <-h.Done():
		case <-gctx.Done():
			if h.State() == operation.StateRunning {
				userLogger.Warningf("interrupt received, stopping run %s", h.ID())
				o.Engine.RequestCancel(h)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	outcome := h.Wait()
	logger.Debug().Int("percent", collector.Percent()).Int("results", len(collector.Results())).Msg("run collected")

	if f.report != "" {
		report := status.NewReport(job, outcome, collector.Results())
		if err := report.Write(f.report); err != nil {
			return err
		}
		userLogger.Infof("report written to %s", f.report)
	}

	if outcome.State == operation.StateFailed {
		return errors.Errorf("run %s failed: %w", outcome.RunID, outcome.Err)
	}
	return nil
}
