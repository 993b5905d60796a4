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
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/findrep/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Engine runs one job at a time on a dedicated goroutine
type Engine struct {
	pacing time.Duration

	running atomic.Bool
	mu      sync.Mutex
	active  *Handle
}

// Option configures an Engine
type Option func(*Engine)

// ⏱️ WithPacing waits d between files, so progress stays visible on small
// trees. The wait ends early when the run is cancelled.
func WithPacing(d time.Duration) Option {
	return func(e *Engine) {
		e.pacing = d
	}
}

// 🏗️ New creates an idle engine
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State is StateRunning while a run is active, StateIdle otherwise
func (e *Engine) State() State {
	if e.running.Load() {
		return StateRunning
	}
	return StateIdle
}

// Active returns the handle of the running job, or nil
func (e *Engine) Active() *Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// 🚀 Start validates job and begins a run. The job is copied, so later changes
// by the caller do not affect the run. A nil sink discards all events.
//
// Cancelling ctx has the same effect as RequestCancel.
func (e *Engine) Start(ctx context.Context, job config.Job, sink Sink) (*Handle, error) {
	if err := job.Validate(); err != nil {
		return nil, errors.Errorf("starting run: %w", err)
	}

	if !e.running.CompareAndSwap(false, true) {
		return nil, errors.WithStack(ErrRunActive)
	}

	if sink == nil {
		sink = SinkFuncs{}
	}

	h := newHandle(job)

	e.mu.Lock()
	e.active = h
	e.mu.Unlock()

	logger := zerolog.Ctx(ctx).With().Str("run_id", h.id.String()).Logger()
	ctx = logger.WithContext(ctx)

	go func() {
		outcome := e.execute(ctx, h, sink)
		e.finish(ctx, h, sink, outcome)
	}()

	return h, nil
}

// 🛑 RequestCancel asks the run behind h to stop. A file that was read but not
// yet written when the request lands is dropped without effects.
// It does nothing when h is nil, finished, or not the active run.
func (e *Engine) RequestCancel(h *Handle) {
	if h == nil {
		return
	}

	e.mu.Lock()
	active := e.active
	e.mu.Unlock()

	if active != h {
		return
	}
	h.RequestCancel()
}

// finish publishes the outcome: the engine goes Idle first, then the sink
// hears about it, then waiters are released.
func (e *Engine) finish(ctx context.Context, h *Handle, sink Sink, outcome Outcome) {
	logger := zerolog.Ctx(ctx)

	h.outcome = outcome
	h.state.Store(int32(outcome.State))

	e.mu.Lock()
	if e.active == h {
		e.active = nil
	}
	e.mu.Unlock()
	e.running.Store(false)

	event := logger.Info()
	if outcome.State == StateFailed {
		event = logger.Error().Err(outcome.Err)
	}
	event.
		Str("state", outcome.State.String()).
		Int("total", outcome.Total).
		Int("processed", outcome.Processed).
		Int("matched", outcome.Matched).
		Int("replacements", outcome.Replacements).
		Msg("run finished")

	sink.OnFinished(ctx, outcome)
	close(h.done)
}

// 🎫 Handle identifies one run
type Handle struct {
	id  uuid.UUID
	job config.Job

	state      atomic.Int32
	cancelOnce sync.Once
	cancel     chan struct{}
	done       chan struct{}
	outcome    Outcome
}

func newHandle(job config.Job) *Handle {
	h := &Handle{
		id:     uuid.New(),
		job:    job,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
	h.state.Store(int32(StateRunning))
	return h
}

// ID is unique per run
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Job returns the run's copy of the job
func (h *Handle) Job() config.Job {
	return h.job
}

// State is StateRunning until the run ends, then its terminal state
func (h *Handle) State() State {
	return State(h.state.Load())
}

// RequestCancel asks the run to stop before its next effect. Safe to call
// more than once and after the run ended.
func (h *Handle) RequestCancel() {
	h.cancelOnce.Do(func() {
		close(h.cancel)
	})
}

// Done is closed after OnFinished returns
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run ends and returns its outcome
func (h *Handle) Wait() Outcome {
	<-h.done
	return h.outcome
}

// cancelRequested checks both the handle and the run context
func (h *Handle) cancelRequested(ctx context.Context) bool {
	select {
	case <-h.cancel:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// pause waits d unless the run is cancelled first
func (h *Handle) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-h.cancel:
	case <-ctx.Done():
	}
}
