package sheets

import "testing"

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{6, "F"},
		{14, "N"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		if got := ColumnLetter(tt.n); got != tt.want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDataRange(t *testing.T) {
	tests := []struct {
		name     string
		tab      string
		cols     int
		startRow int
		endRow   int
		want     string
	}{
		{
			name:     "unbounded posts scan",
			tab:      "Posts",
			cols:     14,
			startRow: 2,
			endRow:   0,
			want:     "Posts!A2:N",
		},
		{
			name:     "unbounded admins scan",
			tab:      "Admins",
			cols:     6,
			startRow: 2,
			endRow:   0,
			want:     "Admins!A2:F",
		},
		{
			name:     "pinned single row",
			tab:      "Posts",
			cols:     14,
			startRow: 7,
			endRow:   7,
			want:     "Posts!A7:N7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DataRange(tt.tab, tt.cols, tt.startRow, tt.endRow)
			if got != tt.want {
				t.Errorf("DataRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRowRange(t *testing.T) {
	if got := RowRange("Admins", 6, 3); got != "Admins!A3:F3" {
		t.Errorf("RowRange() = %q, want %q", got, "Admins!A3:F3")
	}
}

func TestAppendRange(t *testing.T) {
	if got := AppendRange("Posts"); got != "Posts!A:A" {
		t.Errorf("AppendRange() = %q, want %q", got, "Posts!A:A")
	}
}
