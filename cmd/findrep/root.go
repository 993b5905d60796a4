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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/findrep/cmd/findrep/commands"
	"github.com/walteh/findrep/cmd/findrep/opts"
	"github.com/walteh/findrep/pkg/log"
	"github.com/walteh/findrep/pkg/operation"
)

// newRootCmd wires the command tree. Console output goes to out, structured
// logs go to errOut.
func newRootCmd(out, errOut io.Writer, engineOpts ...operation.Option) *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "findrep",
		Short:         "Find and replace literal text across many files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(errOut, rootOpts.Debug)
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(log.NewContext(ctx, log.NewWithZerolog(out, logger)))

			rootOpts.Engine = operation.New(engineOpts...)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewFindCmd(rootOpts),
		commands.NewReplaceCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.JobFile, "config", "c", "", "job file (.yaml, .yml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if f, ok := w.(*os.File); ok && f == os.Stderr {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
