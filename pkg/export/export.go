// Package export renders tabular reports as CSV or XLSX.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format, use csv or xlsx")

// Table is a header row plus data rows, all cells already formatted.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// File is a rendered export ready to send.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Render writes t in the requested format; an empty format means csv.
func Render(t Table, baseName, format string) (*File, error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		body, err := CSV(t)
		if err != nil {
			return nil, err
		}
		return &File{Name: baseName + ".csv", ContentType: "text/csv", Body: body}, nil
	case FormatXLSX:
		body, err := XLSX(t)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func CSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func XLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, sheet, 1, t.Headers); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return nil, err
		}
	}
	for i, width := range columnWidths(t) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

const (
	minColWidth = 8
	maxColWidth = 50
)

// columnWidths sizes each column to its longest cell, clamped to [minColWidth, maxColWidth].
func columnWidths(t Table) []float64 {
	widths := make([]float64, len(t.Headers))
	fit := func(i int, v string) {
		if i >= len(widths) {
			return
		}
		w := float64(utf8.RuneCountInString(v) + 2)
		if w > widths[i] {
			widths[i] = w
		}
	}
	for i, h := range t.Headers {
		fit(i, h)
	}
	for _, row := range t.Rows {
		for i, v := range row {
			fit(i, v)
		}
	}
	for i, w := range widths {
		widths[i] = min(max(w, minColWidth), maxColWidth)
	}
	return widths
}
