// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/s-quirin/easyguing/internal/quantity"
)

func waitResult(t *testing.T, d *Dispatcher) BatchResult {
	t.Helper()
	select {
	case r := <-d.Done():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not complete")
		return BatchResult{}
	}
}

func staleSlot() *Slot {
	x := quantity.MustParse("0 m")
	return &Slot{
		PlotX:   "x",
		Samples: quantity.Linspace(x, quantity.MustParse("1 m"), 3),
		Params:  map[string]quantity.Quantity{"slope": quantity.MustParse("2")},
	}
}

func TestDispatcherSingleBatch(t *testing.T) {
	d := NewDispatcher("linear", func(s *Slot) error {
		s.Fill(s.Samples)
		return nil
	})
	s := staleSlot()

	if !d.Submit([]*Slot{s}) {
		t.Fatal("idle dispatcher rejected submit")
	}
	r := waitResult(t, d)
	if r.Err != nil {
		t.Fatalf("batch error: %v", r.Err)
	}
	if r.Coalesced {
		t.Error("lone batch reported coalesced requests")
	}
	if s.State() != SlotReady {
		t.Errorf("slot state = %v, want READY", s.State())
	}
	if d.State() != Idle {
		t.Errorf("dispatcher state = %v, want idle", d.State())
	}
}

func TestDispatcherCoalescesWhileBusy(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher("linear", func(s *Slot) error {
		<-release
		s.Fill(s.Samples)
		return nil
	})

	if !d.Submit([]*Slot{staleSlot()}) {
		t.Fatal("first submit rejected")
	}
	if d.State() != Busy {
		t.Fatalf("state = %v, want busy", d.State())
	}
	// Further submits while busy start no second batch.
	if d.Submit([]*Slot{staleSlot()}) {
		t.Error("second submit started an overlapping batch")
	}
	if d.Submit([]*Slot{staleSlot()}) {
		t.Error("third submit started an overlapping batch")
	}
	close(release)

	r := waitResult(t, d)
	if !r.Coalesced {
		t.Error("coalesced requests not reported on completion")
	}
	if d.State() != PendingChanges {
		t.Errorf("state after coalesced batch = %v, want pending", d.State())
	}
}

func TestDispatcherClaimsOnlyStaleSlots(t *testing.T) {
	evaluated := make(chan *Slot, 2)
	d := NewDispatcher("linear", func(s *Slot) error {
		evaluated <- s
		s.Fill(s.Samples)
		return nil
	})

	ready := staleSlot()
	ready.Fill(ready.Samples)
	fresh := staleSlot()

	d.Submit([]*Slot{ready, fresh})
	waitResult(t, d)
	close(evaluated)

	var got []*Slot
	for s := range evaluated {
		got = append(got, s)
	}
	if len(got) != 1 || got[0] != fresh {
		t.Errorf("evaluated %d slots, want only the stale one", len(got))
	}
}

func TestDispatcherFailedBatchKeepsReadyResults(t *testing.T) {
	boom := errors.New("boom")
	n := 0
	d := NewDispatcher("linear", func(s *Slot) error {
		n++
		if n == 2 {
			return boom
		}
		s.Fill(s.Samples)
		return nil
	})

	a, b, c := staleSlot(), staleSlot(), staleSlot()
	d.Submit([]*Slot{a, b, c})
	r := waitResult(t, d)

	var eerr *EvaluationError
	if !errors.As(r.Err, &eerr) || !errors.Is(r.Err, boom) {
		t.Fatalf("err = %v, want *EvaluationError wrapping boom", r.Err)
	}
	// Filled results survive the failure; unfilled claims return to stale.
	if a.State() != SlotReady {
		t.Errorf("slot a state = %v, want READY", a.State())
	}
	if b.State() != SlotStale || c.State() != SlotStale {
		t.Errorf("slots b,c = %v,%v, want STALE,STALE", b.State(), c.State())
	}
}

func TestDispatcherMarkPending(t *testing.T) {
	d := NewDispatcher("linear", func(s *Slot) error {
		s.Fill(s.Samples)
		return nil
	})
	if d.State() != Idle {
		t.Fatalf("initial state = %v, want idle", d.State())
	}
	d.MarkPending()
	if d.State() != PendingChanges {
		t.Errorf("state = %v, want pending", d.State())
	}
	// A resync that finds everything up to date clears the mark.
	d.MarkSynced()
	if d.State() != Idle {
		t.Errorf("state after sync = %v, want idle", d.State())
	}
}

func TestDispatcherMarkPendingWhileBusyCoalesces(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher("linear", func(s *Slot) error {
		<-release
		s.Fill(s.Samples)
		return nil
	})
	d.Submit([]*Slot{staleSlot()})

	// Marking pending never demotes a running batch, but the edit is not
	// dropped: the batch completes coalesced and leaves pending behind.
	d.MarkPending()
	if d.State() != Busy {
		t.Errorf("state = %v, want busy after pending mark", d.State())
	}
	d.MarkSynced()
	if d.State() != Busy {
		t.Errorf("state = %v, want busy after sync mark", d.State())
	}
	close(release)

	r := waitResult(t, d)
	if !r.Coalesced {
		t.Error("edit while busy not reported as coalesced")
	}
	if d.State() != PendingChanges {
		t.Errorf("state after batch = %v, want pending", d.State())
	}
}

// Slot states and results are read from the interactive loop while the
// worker fills slots; run with -race.
func TestDispatcherConcurrentStateReads(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher("linear", func(s *Slot) error {
		<-release
		s.Fill(s.Samples)
		return nil
	})
	c := NewCache()
	c.slots = []*Slot{staleSlot(), staleSlot()}
	d.Submit(c.Slots())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			c.Ready()
			c.Stale()
			for _, s := range c.Slots() {
				if s.State() == SlotReady {
					_ = s.Result()
				}
			}
		}
	}()

	close(release)
	waitResult(t, d)
	close(stop)
	wg.Wait()

	if !c.Ready() {
		t.Error("cache not ready after batch completion")
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{Idle: "idle", Busy: "busy", PendingChanges: "pending"} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
