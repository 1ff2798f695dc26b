// Package sheets provides range-addressed access to the Google Sheets
// tables that back the application. Each logical table lives on one tab,
// with row 1 reserved for the header and data starting at row 2.
package sheets

import "fmt"

// DataStartRow is the first data row of every table; row 1 is the header.
const DataStartRow = 2

// ColumnLetter returns the spreadsheet column letter(s) for a 1-based
// column number: 1 → "A", 14 → "N", 27 → "AA".
func ColumnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}

// DataRange returns the A1-notation range covering cols columns starting
// at startRow. An endRow of zero leaves the range unbounded (full-column
// scan); otherwise the range is pinned to endRow.
func DataRange(tab string, cols, startRow, endRow int) string {
	last := ColumnLetter(cols)
	if endRow == 0 {
		return fmt.Sprintf("%s!A%d:%s", tab, startRow, last)
	}
	return fmt.Sprintf("%s!A%d:%s%d", tab, startRow, last, endRow)
}

// RowRange returns the range pinned to a single row, for targeted
// update and clear.
func RowRange(tab string, cols, row int) string {
	return DataRange(tab, cols, row, row)
}

// AppendRange returns the anchor range handed to the append operation.
// The backing service locates the table from the anchor and inserts
// after its last row.
func AppendRange(tab string) string {
	return tab + "!A:A"
}
