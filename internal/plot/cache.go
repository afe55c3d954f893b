// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"sync"

	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// =============================================================================
// SLOT
// =============================================================================

// SlotState is the lifecycle of one cache slot.
type SlotState int

const (
	// SlotStale means the slot has no result yet.
	SlotStale SlotState = iota
	// SlotComputing means a batch has claimed the slot.
	SlotComputing
	// SlotReady is terminal: the result is filled and never changes. A
	// differing candidate replaces the slot instead of transitioning it.
	SlotReady
)

// Slot is one cached curve: the sample array, one resolved parameter
// combination, the option snapshot, and the result. The result starts
// empty and is filled exactly once by the computation dispatcher;
// everything else is fixed at construction.
//
// State and result are read from the interactive loop while a worker
// fills the slot, so both are guarded by the slot's mutex. Observing
// READY through State orders the reader after the worker's Fill.
type Slot struct {
	PlotX   string
	Samples quantity.Quantity
	Params  map[string]quantity.Quantity
	Choices model.Choices

	mu     sync.Mutex
	result quantity.Quantity
	state  SlotState
}

// State returns the slot's lifecycle state.
func (s *Slot) State() SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the computed curve, zero until the slot is READY.
func (s *Slot) Result() quantity.Quantity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Fill stores the result and marks the slot READY. Called exactly once,
// by the worker that claimed the slot.
func (s *Slot) Fill(result quantity.Quantity) {
	s.mu.Lock()
	s.result = result
	s.state = SlotReady
	s.mu.Unlock()
}

// claim moves a STALE slot to COMPUTING and reports whether it was
// claimed.
func (s *Slot) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SlotStale {
		return false
	}
	s.state = SlotComputing
	return true
}

// release returns an unfilled claim to STALE after a failed batch.
// Filled slots keep their result.
func (s *Slot) release() {
	s.mu.Lock()
	if s.state == SlotComputing {
		s.state = SlotStale
	}
	s.mu.Unlock()
}

// matches reports value-wise equality of the (samples, parameters,
// options) triple. Identity is irrelevant: two snapshots built from the
// same text match even though every object differs.
func (s *Slot) matches(plotX string, samples quantity.Quantity, params map[string]quantity.Quantity, choices model.Choices) bool {
	if s.PlotX != plotX || !s.Samples.Equal(samples) || !s.Choices.Equal(choices) {
		return false
	}
	if len(s.Params) != len(params) {
		return false
	}
	for k, v := range params {
		if !s.Params[k].Equal(v) {
			return false
		}
	}
	return true
}

// =============================================================================
// CACHE
// =============================================================================

// Cache is the per-page list of curve slots. It is owned by the page
// controller; workers never resize or replace it (see the package
// ownership contract).
type Cache struct {
	slots []*Slot
}

// NewCache creates an empty cache.
func NewCache() *Cache { return &Cache{} }

// Slots returns the live slot list in curve order.
func (c *Cache) Slots() []*Slot { return c.slots }

// Len returns the current curve count.
func (c *Cache) Len() int { return len(c.slots) }

// Stale returns the slots still awaiting computation.
func (c *Cache) Stale() []*Slot {
	var out []*Slot
	for _, s := range c.slots {
		if s.State() == SlotStale {
			out = append(out, s)
		}
	}
	return out
}

// Ready reports whether every slot holds a result.
func (c *Cache) Ready() bool {
	for _, s := range c.slots {
		if s.State() != SlotReady {
			return false
		}
	}
	return true
}

// Sync reconciles the cache against a new snapshot and returns the number
// of slots left STALE:
//
//  1. shrink: trailing slots beyond the new curve count are discarded
//  2. grow: missing positions are appended empty
//  3. per index, the candidate triple is compared value-wise against the
//     existing slot; any difference replaces the slot with a fresh STALE
//     entry, discarding its previous result
//
// Unchanged slots keep their READY results and are never recomputed.
func (c *Cache) Sync(snap *Snapshot) int {
	count := snap.CurveCount()
	if count < len(c.slots) {
		c.slots = c.slots[:count]
	}
	for len(c.slots) < count {
		c.slots = append(c.slots, nil)
	}

	samples := snap.Samples()
	stale := 0
	for n := 0; n < count; n++ {
		params := snap.ParamsFor(n)
		if c.slots[n] != nil && c.slots[n].matches(snap.PlotX, samples, params, snap.Choices) {
			if c.slots[n].State() != SlotReady {
				stale++
			}
			continue
		}
		c.slots[n] = &Slot{
			PlotX:   snap.PlotX,
			Samples: samples,
			Params:  params,
			Choices: snap.Choices.Clone(),
		}
		stale++
	}
	return stale
}
