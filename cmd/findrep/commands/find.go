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
	"github.com/spf13/cobra"
	"github.com/walteh/findrep/cmd/findrep/opts"
	"github.com/walteh/findrep/pkg/config"
)

// NewFindCmd creates a new find command
func NewFindCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &jobFlags{}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Count occurrences of a literal text in matching files",
		Long: `Find walks the root directory, picks every file whose name matches
--include and not --exclude, and counts the occurrences of --search in each.
Nothing is written to disk.`,
		Example: `  findrep find --root . --include '*.go' --search TODO --recursive`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := flags.job(cmd, opts, config.ModeFind)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), opts, flags, job)
		},
	}

	flags.bind(cmd, false)

	return cmd
}
