// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func sampleEntry(model string) Entry {
	return Entry{
		Model:   model,
		Inputs:  map[string]string{"x": "0.5 m", "slope": "2"},
		Choices: map[string]string{"output": "y"},
		Result:  "1 m",
	}
}

func TestRecordAndGet(t *testing.T) {
	h := openTestHistory(t)

	id, err := h.Record(sampleEntry("linear"))
	if err != nil {
		t.Fatal(err)
	}

	e, err := h.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if e.Model != "linear" {
		t.Errorf("model = %q, want %q", e.Model, "linear")
	}
	if e.Inputs["x"] != "0.5 m" {
		t.Errorf("input x = %q, want %q", e.Inputs["x"], "0.5 m")
	}
	if e.Choices["output"] != "y" {
		t.Errorf("choice output = %q, want %q", e.Choices["output"], "y")
	}
	if e.Result != "1 m" {
		t.Errorf("result = %q, want %q", e.Result, "1 m")
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestGetMissing(t *testing.T) {
	h := openTestHistory(t)
	if _, err := h.Get(42); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestListMostRecentFirst(t *testing.T) {
	h := openTestHistory(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		e := sampleEntry(fmt.Sprintf("model-%d", i))
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := h.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := h.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Model != "model-2" || entries[2].Model != "model-0" {
		t.Errorf("order = %s..%s, want most recent first", entries[0].Model, entries[2].Model)
	}

	limited, err := h.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limited entries = %d, want 2", len(limited))
	}
}

func TestListByModel(t *testing.T) {
	h := openTestHistory(t)
	h.Record(sampleEntry("a"))
	h.Record(sampleEntry("b"))
	h.Record(sampleEntry("a"))

	entries, err := h.ListByModel("a", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("entries for model a = %d, want 2", len(entries))
	}
}

func TestMaxEntriesPrunesOldest(t *testing.T) {
	h := openTestHistory(t)
	h.MaxEntries = 2

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		e := sampleEntry(fmt.Sprintf("model-%d", i))
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := h.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	n, err := h.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2 after pruning", n)
	}

	entries, _ := h.List(0)
	if entries[0].Model != "model-3" || entries[1].Model != "model-2" {
		t.Errorf("kept %s, %s; want the two newest", entries[0].Model, entries[1].Model)
	}
}

func TestDeleteAndClear(t *testing.T) {
	h := openTestHistory(t)
	id, _ := h.Record(sampleEntry("linear"))

	if err := h.Delete(id); err != nil {
		t.Fatal(err)
	}
	if err := h.Delete(id); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("second delete err = %v, want ErrEntryNotFound", err)
	}

	h.Record(sampleEntry("a"))
	h.Record(sampleEntry("b"))
	if err := h.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := h.Count(); n != 0 {
		t.Errorf("count after clear = %d, want 0", n)
	}
}

func TestFormatList(t *testing.T) {
	if got := FormatList(nil); got != "No calculations recorded." {
		t.Errorf("empty list = %q", got)
	}

	e := sampleEntry("linear")
	e.ID = 7
	e.CreatedAt = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	out := FormatList([]Entry{e})
	if !strings.Contains(out, "linear") || !strings.Contains(out, "1 m") {
		t.Errorf("formatted list missing fields:\n%s", out)
	}
}

func TestFormatEntry(t *testing.T) {
	e := sampleEntry("linear")
	e.ID = 3
	e.CreatedAt = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	out := FormatEntry(&e)
	for _, want := range []string{"#3", "x = 0.5 m", "[output: y]", "= 1 m"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted entry missing %q:\n%s", want, out)
		}
	}
}
