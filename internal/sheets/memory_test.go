package sheets

import (
	"context"
	"reflect"
	"testing"
)

func TestMemory_AppendAssignsRows(t *testing.T) {
	m := NewMemory()
	m.Seed("Posts", []string{"id", "title"})
	ctx := context.Background()

	row1, err := m.Append(ctx, AppendRange("Posts"), []string{"a", "First"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	row2, err := m.Append(ctx, AppendRange("Posts"), []string{"b", "Second"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if row1 != 2 || row2 != 3 {
		t.Errorf("assigned rows = %d, %d, want 2, 3", row1, row2)
	}
}

func TestMemory_ReadSkipsHeader(t *testing.T) {
	m := NewMemory()
	m.Seed("Posts",
		[]string{"id", "title"},
		[]string{"a", "First"},
		[]string{"b", "Second"},
	)

	rows, err := m.Read(context.Background(), DataRange("Posts", 2, DataStartRow, 0))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := [][]string{{"a", "First"}, {"b", "Second"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestMemory_ClearLeavesBlankRow(t *testing.T) {
	m := NewMemory()
	m.Seed("Posts",
		[]string{"id", "title"},
		[]string{"a", "First"},
		[]string{"b", "Second"},
		[]string{"c", "Third"},
	)
	ctx := context.Background()

	if err := m.Clear(ctx, RowRange("Posts", 2, 3)); err != nil {
		t.Fatalf("clear: %v", err)
	}

	rows, err := m.Read(ctx, DataRange("Posts", 2, DataStartRow, 0))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	// Row 3 is blanked, not removed: row 4's data keeps its position.
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if len(rows[1]) != 0 {
		t.Errorf("cleared row = %v, want blank", rows[1])
	}
	if rows[2][0] != "c" {
		t.Errorf("row 4 cell = %q, want %q", rows[2][0], "c")
	}
}

func TestMemory_AppendAfterTrailingClear(t *testing.T) {
	m := NewMemory()
	m.Seed("Posts",
		[]string{"id", "title"},
		[]string{"a", "First"},
		[]string{"b", "Second"},
	)
	ctx := context.Background()

	// Clearing the last row frees its position for the next append, the
	// same way the remote service locates the table by content.
	if err := m.Clear(ctx, RowRange("Posts", 2, 3)); err != nil {
		t.Fatalf("clear: %v", err)
	}
	assigned, err := m.Append(ctx, AppendRange("Posts"), []string{"c", "Third"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if assigned != 3 {
		t.Errorf("assigned = %d, want 3", assigned)
	}
}

func TestMemory_UpdateTargetsRow(t *testing.T) {
	m := NewMemory()
	m.Seed("Posts",
		[]string{"id", "title"},
		[]string{"a", "First"},
	)
	ctx := context.Background()

	if err := m.Update(ctx, RowRange("Posts", 2, 2), []string{"a", "Renamed"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, err := m.Read(ctx, RowRange("Posts", 2, 2))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "Renamed" {
		t.Errorf("rows = %v, want single updated row", rows)
	}
}

func TestMemory_ReadPinnedRange(t *testing.T) {
	m := NewMemory()
	m.Seed("Posts",
		[]string{"id", "title"},
		[]string{"a", "First"},
		[]string{"b", "Second"},
		[]string{"c", "Third"},
	)

	rows, err := m.Read(context.Background(), DataRange("Posts", 2, 3, 3))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := [][]string{{"b", "Second"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestMemory_MalformedRange(t *testing.T) {
	m := NewMemory()
	if _, err := m.Read(context.Background(), "no-tab-separator"); err == nil {
		t.Error("expected error for malformed range")
	}
}
