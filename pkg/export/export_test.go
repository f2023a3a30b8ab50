package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var sample = Table{
	Sheet:   "Expenses",
	Headers: []string{"Date", "Category", "Amount"},
	Rows: [][]string{
		{"2024-03-01", "Rent", "1200.00"},
		{"2024-03-02", "Supplies, misc", "45.10"},
	},
}

func TestRenderCSV(t *testing.T) {
	f, err := Render(sample, "expenses", "csv")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if f.Name != "expenses.csv" || f.ContentType != "text/csv" {
		t.Fatalf("unexpected file: %s %s", f.Name, f.ContentType)
	}
	lines := strings.Split(strings.TrimSpace(string(f.Body)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[2] != `2024-03-02,"Supplies, misc",45.10` {
		t.Fatalf("quoted row = %q", lines[2])
	}
}

func TestRenderXLSX(t *testing.T) {
	f, err := Render(sample, "expenses", "XLSX")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	book, err := excelize.OpenReader(bytes.NewReader(f.Body))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows("Expenses")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 || rows[1][1] != "Rent" || rows[2][2] != "45.10" {
		t.Fatalf("rows = %v", rows)
	}

	tests := []struct {
		col  string
		want float64
	}{
		{"A", 12},
		{"B", 16},
		{"C", 9},
	}
	for _, tt := range tests {
		got, err := book.GetColWidth("Expenses", tt.col)
		if err != nil {
			t.Fatalf("width %s: %v", tt.col, err)
		}
		if got != tt.want {
			t.Errorf("width %s = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestColumnWidthsClamp(t *testing.T) {
	table := Table{
		Headers: []string{"A", "Notes"},
		Rows:    [][]string{{"x", strings.Repeat("n", 80)}, {"y", "z", "extra"}},
	}
	got := columnWidths(table)
	if len(got) != 2 || got[0] != minColWidth || got[1] != maxColWidth {
		t.Fatalf("widths = %v", got)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sample, "x", "pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v", err)
	}
}
