// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DISPATCHER STATE
// =============================================================================

// State is the externally observable tri-state of the dispatcher.
type State int

const (
	// Idle: no batch running, displayed curves match the inputs.
	Idle State = iota
	// Busy: a batch is running.
	Busy
	// PendingChanges: an input changed since the last completed batch;
	// the displayed curves are out of date but no batch has started.
	PendingChanges
)

// String returns the state name for status displays.
func (s State) String() string {
	switch s {
	case Busy:
		return "busy"
	case PendingChanges:
		return "pending"
	default:
		return "idle"
	}
}

// BatchResult is the single completion signal of one batch.
type BatchResult struct {
	// ID identifies the batch.
	ID string
	// Err is the first evaluation error; the batch failed as a whole and
	// previously READY slots were preserved.
	Err error
	// Coalesced reports that one or more plot requests arrived while the
	// batch ran; the controller should resync and submit a follow-up.
	Coalesced bool
	// Elapsed is the wall time of the batch.
	Elapsed time.Duration
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher runs cache batches off the interactive loop, one at a time.
// A batch claims every STALE slot it is handed, computes them on a worker
// goroutine, and delivers exactly one BatchResult per batch, in submission
// order. Submissions while Busy coalesce into at most one follow-up
// request; overlapping batches never touch the same slot list.
type Dispatcher struct {
	mu      sync.Mutex
	state   State
	pending bool // a plot request arrived while Busy

	model string
	eval  func(*Slot) error
	done  chan BatchResult
}

// NewDispatcher creates a dispatcher computing slots of the named model
// with eval.
func NewDispatcher(model string, eval func(*Slot) error) *Dispatcher {
	return &Dispatcher{
		model: model,
		eval:  eval,
		done:  make(chan BatchResult, 1),
	}
}

// State returns the current tri-state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// MarkPending records a user edit invalidating the displayed curves
// without starting a batch. While Busy the edit is folded into the
// running batch's coalescing flag, so the completion signal triggers a
// follow-up resync instead of reporting a clean finish.
func (d *Dispatcher) MarkPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Idle:
		d.state = PendingChanges
	case Busy:
		d.pending = true
	}
}

// MarkSynced records that the displayed curves match the inputs again
// without a batch having run, clearing a pending mark. A running batch
// is untouched.
func (d *Dispatcher) MarkSynced() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == PendingChanges {
		d.state = Idle
	}
}

// SetEvaluator replaces the evaluation function for subsequent batches.
// A running batch keeps the function it started with.
func (d *Dispatcher) SetEvaluator(eval func(*Slot) error) {
	d.mu.Lock()
	d.eval = eval
	d.mu.Unlock()
}

// Done returns the completion channel. Exactly one BatchResult is
// delivered per accepted Submit, in submission order.
func (d *Dispatcher) Done() <-chan BatchResult {
	return d.done
}

// Submit starts a batch over the given slots. STALE slots are claimed
// synchronously, before the worker starts; slot states and results stay
// readable from the interactive loop while the batch runs. Returns false
// when a batch is already running; the request is then coalesced into
// that batch's completion signal and no second batch starts.
func (d *Dispatcher) Submit(slots []*Slot) bool {
	d.mu.Lock()
	if d.state == Busy {
		d.pending = true
		d.mu.Unlock()
		return false
	}
	d.state = Busy
	eval := d.eval
	d.mu.Unlock()

	var claimed []*Slot
	for _, s := range slots {
		if s.claim() {
			claimed = append(claimed, s)
		}
	}

	go d.run(uuid.New().String(), eval, claimed)
	return true
}

// run computes one batch and delivers its completion signal. No step
// yields mid-batch; the batch is atomic from the dispatcher's point of
// view and is never cancelled in flight.
func (d *Dispatcher) run(id string, eval func(*Slot) error, claimed []*Slot) {
	start := time.Now()

	var batchErr error
	for i, s := range claimed {
		if err := eval(s); err != nil {
			batchErr = &EvaluationError{Model: d.model, Slot: i, Err: err}
			break
		}
	}
	if batchErr != nil {
		// Fail the batch as a whole: claimed but unfilled slots return
		// to STALE for the next attempt. READY slots keep their results.
		for _, s := range claimed {
			s.release()
		}
	}

	d.mu.Lock()
	coalesced := d.pending
	d.pending = false
	if coalesced {
		d.state = PendingChanges
	} else {
		d.state = Idle
	}
	d.mu.Unlock()

	d.done <- BatchResult{
		ID:        id,
		Err:       batchErr,
		Coalesced: coalesced,
		Elapsed:   time.Since(start),
	}
}
