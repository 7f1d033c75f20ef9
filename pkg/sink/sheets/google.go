package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// GoogleOpener finds spreadsheets through the Drive API and edits them
// through the Sheets API.
type GoogleOpener struct {
	drive  *drive.Service
	sheets *gsheets.Service
}

// Open implements Opener.
func (o *GoogleOpener) Open(ctx context.Context, title string) (Worksheet, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(title), spreadsheetMimeType)

	slog.DebugContext(ctx, "looking up spreadsheet", slog.String("query", query))

	files, err := o.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(files.Files) == 0 {
		return nil, errors.Wrapf(ErrSpreadsheetNotFound, "no spreadsheet named '%s' is shared with the service account", title)
	}

	spreadsheetID := files.Files[0].Id

	spreadsheet, err := o.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("spreadsheetId,sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(spreadsheet.Sheets) == 0 || spreadsheet.Sheets[0].Properties == nil {
		return nil, errors.WithStack(ErrNoWorksheet)
	}

	return &googleWorksheet{
		values:        o.sheets.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		title:         spreadsheet.Sheets[0].Properties.Title,
	}, nil
}

type googleWorksheet struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	title         string
}

// Title implements Worksheet.
func (w *googleWorksheet) Title() string {
	return w.title
}

// UpdateCell implements Worksheet.
func (w *googleWorksheet) UpdateCell(ctx context.Context, row int, col int, value string) error {
	cell := CellRange(w.title, row, col)

	// RAW keeps banners starting with '=' or '+' from being evaluated as formulas.
	_, err := w.values.Update(w.spreadsheetID, cell, &gsheets.ValueRange{
		Range:  cell,
		Values: [][]interface{}{{value}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func NewGoogleOpener(driveService *drive.Service, sheetsService *gsheets.Service) *GoogleOpener {
	return &GoogleOpener{
		drive:  driveService,
		sheets: sheetsService,
	}
}

// NewServiceAccountOpener authenticates both APIs with the given service
// account key.
func NewServiceAccountOpener(ctx context.Context, credentialsJSON []byte, opts ...option.ClientOption) (*GoogleOpener, error) {
	opts = append([]option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope),
	}, opts...)

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create drive client")
	}

	sheetsService, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create sheets client")
	}

	return NewGoogleOpener(driveService, sheetsService), nil
}

var (
	_ Opener    = &GoogleOpener{}
	_ Worksheet = &googleWorksheet{}
)
