package sheets

import "context"

// Client is the sole I/O boundary between the application and the remote
// tabular store. Every operation addresses a computed range; calls are
// atomic individually but not coordinated with each other, so concurrent
// writers can race. Implementations do not retry: a failed call surfaces
// immediately to the caller.
type Client interface {
	// Read returns the rows within the range, in order. Cells are raw
	// strings; trailing empty cells may be omitted.
	Read(ctx context.Context, rng string) ([][]string, error)

	// Append inserts row after the last row of the table located from the
	// anchor range and returns the 1-indexed row it was written to.
	Append(ctx context.Context, anchor string, row []string) (int, error)

	// Update overwrites the cells of the single-row range.
	Update(ctx context.Context, rng string, row []string) error

	// Clear blanks every cell in the range. The row itself remains, so
	// later rows keep their indexes.
	Clear(ctx context.Context, rng string) error
}
