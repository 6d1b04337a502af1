package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a fixture workbook: a grid of rows written
// from A1.
type Sheet struct {
	Name string
	Rows [][]string
}

// WriteWorkbook creates an xlsx file at path with the given sheets in
// order. Sheet order matters to readers that fall back to positional
// sheet selection.
func WriteWorkbook(t *testing.T, path string, sheets ...Sheet) {
	t.Helper()
	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatal(err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatal(err)
			}
		}
		for r, row := range sheet.Rows {
			for c, val := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := f.SetCellValue(sheet.Name, cell, val); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

// WorkbookFile writes the sheets to a workbook in a fresh test temp
// directory and returns its path.
func WorkbookFile(t *testing.T, name string, sheets ...Sheet) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	WriteWorkbook(t, path, sheets...)
	return path
}
