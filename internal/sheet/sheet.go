// Package sheet is the spreadsheet collaborator: service-account auth,
// open-by-name, column reads and batch cell writes.
package sheet

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Cell addresses one staged output value.
type Cell struct {
	Row   int
	Col   int
	Value any
}

// Store is the worksheet contract the updater depends on.
type Store interface {
	ColValues(ctx context.Context, col int) ([]string, error)
	UpdateCells(ctx context.Context, cells []Cell) error
}

// Service wraps authenticated Sheets and Drive clients.
type Service struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewService authenticates with a service-account key JSON payload.
func NewService(ctx context.Context, credsJSON []byte) (*Service, error) {
	cfg, err := google.JWTConfigFromJSON(credsJSON, sheets.SpreadsheetsScope, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	client := cfg.Client(ctx)
	ss, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	ds, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Service{sheets: ss, drive: ds}, nil
}

// OpenWorksheet locates a spreadsheet by name via a Drive files query and
// returns a handle on one of its tabs. First match wins.
func (s *Service) OpenWorksheet(ctx context.Context, spreadsheetName, worksheetName string) (*Worksheet, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(spreadsheetName, "'", `\'`))
	list, err := s.drive.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("find spreadsheet %q: %w", spreadsheetName, err)
	}
	if len(list.Files) == 0 {
		return nil, fmt.Errorf("spreadsheet %q not found (is it shared with the service account?)", spreadsheetName)
	}
	return &Worksheet{
		svc:           s.sheets,
		spreadsheetID: list.Files[0].Id,
		name:          worksheetName,
	}, nil
}

// Worksheet is one tab of an opened spreadsheet.
type Worksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	name          string
}

// ColValues returns every value of one column, top to bottom.
// Trailing empty cells are not included; interior gaps come back as "".
func (w *Worksheet) ColValues(ctx context.Context, col int) ([]string, error) {
	letter := colLetter(col)
	rng := fmt.Sprintf("'%s'!%s:%s", w.name, letter, letter)
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, rng).
		MajorDimension("COLUMNS").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read column %s: %w", letter, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(resp.Values[0]))
	for _, v := range resp.Values[0] {
		out = append(out, fmt.Sprint(v))
	}
	return out, nil
}

// UpdateCells writes all staged cells in a single batch request.
func (w *Worksheet) UpdateCells(ctx context.Context, cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, 0, len(cells))
	for _, c := range cells {
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("'%s'!%s%d", w.name, colLetter(c.Col), c.Row),
			Values: [][]any{{c.Value}},
		})
	}
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := w.svc.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batch update %d cells: %w", len(cells), err)
	}
	return nil
}

// colLetter converts a 1-based column index to its A1 letter form.
func colLetter(col int) string {
	s := ""
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}
