package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleClient implements Client against the Google Sheets v4 values API,
// authenticated as a service account. Construct it once at startup and
// share it; the underlying HTTP client handles token refresh.
type GoogleClient struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleClient authorizes a service-account JWT with the spreadsheets
// scope and returns a client bound to one spreadsheet.
func NewGoogleClient(ctx context.Context, spreadsheetID, clientEmail, privateKey string) (*GoogleClient, error) {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &GoogleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Read fetches the rows within the range.
func (c *GoogleClient) Read(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append inserts the row after the last row of the table located from the
// anchor range. The assigned row index is parsed from the updated range in
// the response.
func (c *GoogleClient) Append(ctx context.Context, anchor string, row []string) (int, error) {
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, anchor, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", anchor, err)
	}

	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return 0, fmt.Errorf("append to %s: response missing updated range", anchor)
	}
	assigned, err := firstRowOf(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", anchor, err)
	}
	return assigned, nil
}

// Update overwrites the cells of the single-row range.
func (c *GoogleClient) Update(ctx context.Context, rng string, row []string) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update range %s: %w", rng, err)
	}
	return nil
}

// Clear blanks every cell in the range.
func (c *GoogleClient) Clear(ctx context.Context, rng string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear range %s: %w", rng, err)
	}
	return nil
}

func valueRange(row []string) *sheetsapi.ValueRange {
	cells := make([]interface{}, len(row))
	for i, c := range row {
		cells[i] = c
	}
	return &sheetsapi.ValueRange{Values: [][]interface{}{cells}}
}

// firstRowOf extracts the starting row number from an A1-notation range
// such as "Posts!A5:N5".
func firstRowOf(rng string) (int, error) {
	if i := strings.IndexByte(rng, '!'); i >= 0 {
		rng = rng[i+1:]
	}
	start := -1
	for i, r := range rng {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			rng = rng[start:i]
			return strconv.Atoi(rng)
		}
	}
	if start < 0 {
		return 0, fmt.Errorf("no row number in range %q", rng)
	}
	return strconv.Atoi(rng[start:])
}
