package sheets

import (
	"strconv"
	"strings"
)

// CellRange returns the A1 notation of a single cell, e.g. 'Sheet1'!B3.
func CellRange(worksheet string, row int, col int) string {
	var sb strings.Builder

	sb.WriteString("'")
	sb.WriteString(strings.ReplaceAll(worksheet, "'", "''"))
	sb.WriteString("'!")
	sb.WriteString(ColumnName(col))
	sb.WriteString(strconv.Itoa(row))

	return sb.String()
}

// ColumnName converts a 1-based column index into its letters (1 => A, 27 => AA).
func ColumnName(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}

	return string(letters)
}
