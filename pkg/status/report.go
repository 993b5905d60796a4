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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/findrep/pkg/config"
	"github.com/walteh/findrep/pkg/operation"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📄 Report is a finished run in a form that can be saved
type Report struct {
	RunID        string                  `json:"run_id" yaml:"run_id"`
	State        string                  `json:"state" yaml:"state"`
	Error        string                  `json:"error,omitempty" yaml:"error,omitempty"`
	Job          config.Job              `json:"job" yaml:"job"`
	Total        int                     `json:"total" yaml:"total"`
	Processed    int                     `json:"processed" yaml:"processed"`
	Matched      int                     `json:"matched" yaml:"matched"`
	Replacements int                     `json:"replacements" yaml:"replacements"`
	Results      []operation.MatchResult `json:"results" yaml:"results"`
}

// 🏭 NewReport builds a report from a run's job, outcome and collected results
func NewReport(job config.Job, o operation.Outcome, results []operation.MatchResult) *Report {
	r := &Report{
		RunID:        o.RunID.String(),
		State:        o.State.String(),
		Job:          job,
		Total:        o.Total,
		Processed:    o.Processed,
		Matched:      o.Matched,
		Replacements: o.Replacements,
		Results:      results,
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	if r.Results == nil {
		r.Results = []operation.MatchResult{}
	}
	return r
}

// 🔧 Marshal encodes the report as YAML for .yaml/.yml paths and JSON otherwise
func (r *Report) Marshal(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, errors.Errorf("encoding YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Errorf("encoding YAML report: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, errors.Errorf("encoding JSON report: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// 💾 Write saves the report to path
func (r *Report) Write(path string) error {
	data, err := r.Marshal(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}
