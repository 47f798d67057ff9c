// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package smart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/pkg/monitor/tools"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

// maxConcurrentPolls bounds how many smartctl processes run at once, so a
// slow-to-respond device (USB bridge, spun-down HDD) can't starve the rest.
const maxConcurrentPolls = 4

// PollResult is one completed SMART poll, delivered on the scheduler's
// Results channel for the engine to drain without blocking its fast tick.
type PollResult struct {
	ExecutionID string
	Device      string
	Data        *types.SmartData
	Err         error
	PolledAt    time.Time
}

// Scheduler fires SMART polls for a set of devices without blocking the
// caller: Poll enqueues work on a bounded worker pool and returns
// immediately, and completed results land on Results for the engine to
// drain every fast tick.
type Scheduler struct {
	logger   logger.Logger
	smartctl *tools.SmartctlExecutor

	Results chan PollResult

	mu      sync.Mutex
	pending map[string]bool // device -> poll in flight
	sem     chan struct{}
}

func NewScheduler(l logger.Logger, smartctl *tools.SmartctlExecutor) *Scheduler {
	return &Scheduler{
		logger:   l,
		smartctl: smartctl,
		Results:  make(chan PollResult, 64),
		pending:  make(map[string]bool),
		sem:      make(chan struct{}, maxConcurrentPolls),
	}
}

// Poll enqueues a SMART poll for device if one is not already in flight.
// device is the bare kernel name (e.g. "sda"), used as the poll identity and
// carried on the result; path is what's actually passed to smartctl (e.g.
// "/dev/sda"). Poll returns immediately; the result (success or error)
// arrives later on Results.
func (s *Scheduler) Poll(ctx context.Context, device, path string) {
	s.mu.Lock()
	if s.pending[device] {
		s.mu.Unlock()
		return
	}
	s.pending[device] = true
	s.mu.Unlock()

	executionID := uuid.NewString()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.pending, device)
			s.mu.Unlock()
		}()

		s.sem <- struct{}{}
		defer func() { <-s.sem }()

		s.logger.Debug("polling SMART data", "device", device, "path", path, "execution_id", executionID)

		output, err := s.smartctl.GetAll(ctx, path)
		if err != nil {
			s.Results <- PollResult{ExecutionID: executionID, Device: device, Err: err, PolledAt: time.Now()}
			return
		}

		data, err := ParseSmartctlAll(output, device)
		s.Results <- PollResult{ExecutionID: executionID, Device: device, Data: data, Err: err, PolledAt: time.Now()}
	}()
}

// Drain non-blockingly collects every result currently queued on Results.
func (s *Scheduler) Drain() []PollResult {
	var out []PollResult
	for {
		select {
		case r := <-s.Results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// IsPending reports whether a poll for device is currently in flight.
func (s *Scheduler) IsPending(device string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[device]
}
