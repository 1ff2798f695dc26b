package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Memory is an in-process Client with the same observable semantics as the
// remote store: 1-indexed rows, appends land after the last non-blank row,
// and clearing leaves a blank row in place. It backs package tests and
// local development without network access.
type Memory struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

// NewMemory returns an empty in-memory table store.
func NewMemory() *Memory {
	return &Memory{tabs: make(map[string][][]string)}
}

// Seed writes rows into a tab starting at row 1, replacing any existing
// content. The first row is conventionally the header.
func (m *Memory) Seed(tab string, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([][]string, len(rows))
	for i, r := range rows {
		copied[i] = append([]string(nil), r...)
	}
	m.tabs[tab] = copied
}

// Read returns the rows within the range. Trailing blank rows are omitted,
// matching the remote values API.
func (m *Memory) Read(_ context.Context, rng string) ([][]string, error) {
	tab, start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tabs[tab]
	if start == 0 {
		start = 1
	}
	last := lastNonBlank(rows)
	if end == 0 || end > last {
		end = last
	}
	if start > end {
		return nil, nil
	}

	out := make([][]string, 0, end-start+1)
	for i := start - 1; i < end; i++ {
		out = append(out, append([]string(nil), rows[i]...))
	}
	return out, nil
}

// Append writes the row immediately after the last non-blank row of the
// tab and returns its 1-indexed position.
func (m *Memory) Append(_ context.Context, anchor string, row []string) (int, error) {
	tab, _, _, err := parseRange(anchor)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tabs[tab]
	target := lastNonBlank(rows) + 1
	rows = growTo(rows, target)
	rows[target-1] = append([]string(nil), row...)
	m.tabs[tab] = rows
	return target, nil
}

// Update overwrites the cells of the single-row range.
func (m *Memory) Update(_ context.Context, rng string, row []string) error {
	tab, start, _, err := parseRange(rng)
	if err != nil {
		return err
	}
	if start == 0 {
		return fmt.Errorf("update range %s: no target row", rng)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := growTo(m.tabs[tab], start)
	rows[start-1] = append([]string(nil), row...)
	m.tabs[tab] = rows
	return nil
}

// Clear blanks the rows of the range without removing them, so rows below
// keep their indexes.
func (m *Memory) Clear(_ context.Context, rng string) error {
	tab, start, end, err := parseRange(rng)
	if err != nil {
		return err
	}
	if start == 0 {
		return fmt.Errorf("clear range %s: no target row", rng)
	}
	if end == 0 {
		end = start
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tabs[tab]
	for r := start; r <= end && r <= len(rows); r++ {
		rows[r-1] = nil
	}
	m.tabs[tab] = rows
	return nil
}

// parseRange splits an A1-notation range into tab name and start/end row
// numbers; a missing row number is returned as zero.
func parseRange(rng string) (tab string, start, end int, err error) {
	bang := strings.IndexByte(rng, '!')
	if bang < 0 {
		return "", 0, 0, fmt.Errorf("malformed range %q", rng)
	}
	tab = rng[:bang]
	cells := rng[bang+1:]

	left, right, _ := strings.Cut(cells, ":")
	start = rowNumber(left)
	end = rowNumber(right)
	return tab, start, end, nil
}

// rowNumber extracts the trailing row number from a cell reference like
// "A2"; returns zero when the reference is column-only.
func rowNumber(ref string) int {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	if i == len(ref) {
		return 0
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil {
		return 0
	}
	return n
}

// lastNonBlank returns the 1-indexed position of the last row with any
// non-blank cell, or zero for an empty tab.
func lastNonBlank(rows [][]string) int {
	for i := len(rows) - 1; i >= 0; i-- {
		for _, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				return i + 1
			}
		}
	}
	return 0
}

func growTo(rows [][]string, n int) [][]string {
	for len(rows) < n {
		rows = append(rows, nil)
	}
	return rows
}
