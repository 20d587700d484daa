// Package parser reads the uploaded sales workbook. The source layout has two
// header rows: row 1 carries the week range labels, row 2 the real field
// headers, and data starts at row 3.
package parser

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Parser holds one loaded workbook.
type Parser struct {
	file   *excelize.File
	fileID string
}

// NewParser creates a parser with a fresh upload ID.
func NewParser() *Parser {
	return &Parser{
		fileID: uuid.New().String(),
	}
}

// LoadFile loads a workbook from the reader.
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// FileID returns the upload ID assigned to this workbook.
func (p *Parser) FileID() string {
	return p.fileID
}

// Sheet is the first worksheet split into its two header rows and data rows.
type Sheet struct {
	Name         string
	WeekHeaders  []string
	FieldHeaders []string
	Rows         []SourceRow
}

// ParseFirstSheet reads the first worksheet of the loaded workbook.
func (p *Parser) ParseFirstSheet() (*Sheet, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	name := sheets[0]

	rows, err := p.file.GetRows(name)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q: expected week header and field header rows", name)
	}

	weekHeaders := rows[0]
	fieldHeaders := rows[1]

	// GetRows trims trailing empty cells per row; pad the week header row so
	// column indexes line up with the field headers.
	if len(weekHeaders) < len(fieldHeaders) {
		padded := make([]string, len(fieldHeaders))
		copy(padded, weekHeaders)
		weekHeaders = padded
	}

	cols := make(map[string]int, len(fieldHeaders))
	for i, h := range fieldHeaders {
		key := NormalizeFieldName(h)
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}

	sheet := &Sheet{
		Name:         name,
		WeekHeaders:  weekHeaders,
		FieldHeaders: fieldHeaders,
		Rows:         make([]SourceRow, 0, len(rows)-2),
	}
	for _, cells := range rows[2:] {
		sheet.Rows = append(sheet.Rows, SourceRow{cells: cells, cols: cols})
	}

	return sheet, nil
}

// SourceRow is one data row with named field lookup. Lookups are case- and
// whitespace-tolerant and default to the empty string when the column is
// absent.
type SourceRow struct {
	cells []string
	cols  map[string]int
}

// Get returns the trimmed cell under the named field header, or "".
func (r SourceRow) Get(field string) string {
	idx, ok := r.cols[NormalizeFieldName(field)]
	if !ok || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

// Cell returns the trimmed cell at the given column index, or "".
func (r SourceRow) Cell(col int) string {
	if col < 0 || col >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[col])
}

// Empty reports whether the row has no non-blank cells.
func (r SourceRow) Empty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeFieldName lower-cases a column header and strips all whitespace so
// that lookups tolerate casing and spacing differences between files.
func NormalizeFieldName(name string) string {
	name = strings.TrimSpace(name)
	name = whitespaceRe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// ParseQuantity converts a raw cell into a weekly quantity. Thousands
// separators are stripped and fractional values truncate toward zero, as the
// source files record whole units. ok is false for blank or non-numeric
// cells; negative numeric cells still parse so callers can report them.
func ParseQuantity(cell string) (qty int, ok bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	cell = strings.ReplaceAll(cell, ",", "")
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
