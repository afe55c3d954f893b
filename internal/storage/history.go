// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the point-calculation history for easyguing.
//
// Every point calculation (model, input values, option choices, result) is
// recorded in a SQLite database so earlier results can be reviewed and
// repeated from the CLI.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/s-quirin/easyguing/internal/util"
)

// SchemaVersion tracks the database schema version for migrations.
const SchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Calculations table: one row per point calculation
CREATE TABLE IF NOT EXISTS calculations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    model TEXT NOT NULL,
    inputs TEXT NOT NULL,       -- JSON map of input key -> quantity text
    choices TEXT NOT NULL,      -- JSON map of option name -> choice
    result TEXT NOT NULL,       -- quantity text
    created_at INTEGER NOT NULL -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_calculations_model ON calculations(model);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
`

const initMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one recorded point calculation.
type Entry struct {
	ID        int64
	Model     string
	Inputs    map[string]string
	Choices   map[string]string
	Result    string
	CreatedAt time.Time
}

// =============================================================================
// HISTORY STORE
// =============================================================================

// History is the calculation history database.
type History struct {
	db *sql.DB

	// MaxEntries caps the stored history (0 = unlimited). Oldest entries
	// are pruned after each insert.
	MaxEntries int
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(initMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &History{db: db, MaxEntries: 1000}, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Record stores one calculation and returns its ID.
func (h *History) Record(e Entry) (int64, error) {
	inputs, err := json.Marshal(e.Inputs)
	if err != nil {
		return 0, err
	}
	choices, err := json.Marshal(e.Choices)
	if err != nil {
		return 0, err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := h.db.Exec(
		`INSERT INTO calculations (model, inputs, choices, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Model, string(inputs), string(choices), e.Result, e.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record calculation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if h.MaxEntries > 0 {
		h.enforceLimit()
	}
	return id, nil
}

// enforceLimit prunes the oldest entries beyond MaxEntries.
func (h *History) enforceLimit() {
	h.db.Exec(`
		DELETE FROM calculations WHERE id IN (
			SELECT id FROM calculations ORDER BY created_at DESC, id DESC
			LIMIT -1 OFFSET ?
		)`, h.MaxEntries)
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Get retrieves one entry by ID.
func (h *History) Get(id int64) (*Entry, error) {
	row := h.db.QueryRow(
		`SELECT id, model, inputs, choices, result, created_at FROM calculations WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	return e, err
}

// List returns up to limit entries, most recent first. limit <= 0 returns
// everything.
func (h *History) List(limit int) ([]Entry, error) {
	query := `SELECT id, model, inputs, choices, result, created_at FROM calculations
	          ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = h.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = h.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ListByModel returns the entries of one model, most recent first.
func (h *History) ListByModel(model string, limit int) ([]Entry, error) {
	all, err := h.List(0)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range all {
		if e.Model == model {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Count returns the number of stored entries.
func (h *History) Count() (int, error) {
	var n int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM calculations`).Scan(&n)
	return n, err
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes one entry by ID.
func (h *History) Delete(id int64) error {
	res, err := h.db.Exec(`DELETE FROM calculations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Clear removes all entries.
func (h *History) Clear() error {
	_, err := h.db.Exec(`DELETE FROM calculations`)
	return err
}

// =============================================================================
// SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var inputs, choices string
	var created int64
	if err := row.Scan(&e.ID, &e.Model, &inputs, &choices, &e.Result, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(inputs), &e.Inputs); err != nil {
		return nil, fmt.Errorf("corrupt inputs column: %w", err)
	}
	if err := json.Unmarshal([]byte(choices), &e.Choices); err != nil {
		return nil, fmt.Errorf("corrupt choices column: %w", err)
	}
	e.CreatedAt = time.Unix(created, 0)
	return &e, nil
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrEntryNotFound is returned when a history entry doesn't exist.
// Use errors.Is(err, ErrEntryNotFound) to check for this error.
var ErrEntryNotFound = &HistoryError{Message: "history entry not found"}

// HistoryError represents a history-related error.
type HistoryError struct {
	Message string
}

// Error implements the error interface.
func (e *HistoryError) Error() string {
	return e.Message
}

// Is implements errors.Is support.
func (e *HistoryError) Is(target error) bool {
	t, ok := target.(*HistoryError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// LIST FORMATTING
// =============================================================================

// FormatList formats history entries as a table for the CLI.
func FormatList(entries []Entry) string {
	if len(entries) == 0 {
		return "No calculations recorded."
	}

	var sb strings.Builder
	sb.WriteString(util.PadWidth("ID", 6) + " " +
		util.PadWidth("Date", 17) + " " +
		util.PadWidth("Model", 24) + " Result\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, e := range entries {
		sb.WriteString(util.PadWidth(fmt.Sprintf("%d", e.ID), 6) + " " +
			util.PadWidth(e.CreatedAt.Format("2006-01-02 15:04"), 17) + " " +
			util.PadWidth(util.TruncateWidth(e.Model, 24), 24) + " " +
			e.Result + "\n")
	}
	return sb.String()
}

// FormatEntry formats one entry in full, inputs in key order.
func FormatEntry(e *Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d  %s  %s\n", e.ID, e.CreatedAt.Format(time.RFC3339), e.Model)

	keys := make([]string, 0, len(e.Inputs))
	for k := range e.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %s = %s\n", k, e.Inputs[k])
	}

	names := make([]string, 0, len(e.Choices))
	for n := range e.Choices {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&sb, "  [%s: %s]\n", n, e.Choices[n])
	}

	fmt.Fprintf(&sb, "  = %s\n", e.Result)
	return sb.String()
}
