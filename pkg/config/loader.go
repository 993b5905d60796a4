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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser decodes a job file of one format
type Parser interface {
	// 📝 Parse decodes the job from bytes, filename is used in diagnostics
	Parse(ctx context.Context, filename string, data []byte) (*Job, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📂 Decode reads a job file without validating it. A relative root is
// resolved against the directory holding the file.
func Decode(ctx context.Context, path string) (*Job, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading job file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading job file: %w", err)
	}

	p := GetParser(strings.ToLower(path))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	job, err := p.Parse(ctx, filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	if job.Root != "" && !filepath.IsAbs(job.Root) {
		job.Root = filepath.Join(filepath.Dir(path), job.Root)
	}

	return job, nil
}
