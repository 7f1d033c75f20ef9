package sheets

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrNoWorksheet         = errors.New("spreadsheet has no worksheet")
)

// Opener locates a spreadsheet by its title and returns its first worksheet.
type Opener interface {
	Open(ctx context.Context, title string) (Worksheet, error)
}

// Worksheet is a grid of cells addressed by 1-based row and column.
type Worksheet interface {
	Title() string
	UpdateCell(ctx context.Context, row int, col int, value string) error
}
