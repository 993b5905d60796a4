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
	"sync"

	"github.com/walteh/findrep/pkg/operation"
)

// 📋 Collector accumulates the matched files of a run
type Collector struct {
	mu       sync.RWMutex
	results  []operation.MatchResult
	percent  int
	outcome  operation.Outcome
	finished bool
}

var _ operation.Sink = (*Collector)(nil)

// 🏭 NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) OnProgress(ctx context.Context, p operation.Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.percent = p.Percent
	if p.Result != nil {
		c.results = append(c.results, *p.Result)
	}
}

func (c *Collector) OnFinished(ctx context.Context, o operation.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcome = o
	c.finished = true
}

// Results returns a copy of the matched files, in the order they were reported
func (c *Collector) Results() []operation.MatchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]operation.MatchResult, len(c.results))
	copy(out, c.results)
	return out
}

// Percent is the latest reported percentage
func (c *Collector) Percent() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.percent
}

// Outcome returns the run's outcome once OnFinished has been called
func (c *Collector) Outcome() (operation.Outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.outcome, c.finished
}
