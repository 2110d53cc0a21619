package testsupport

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetData describes one worksheet of a fixture workbook.
type SheetData struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// WriteWorkbook builds an .xlsx file with the given sheets at path.
func WriteWorkbook(t testing.TB, path string, sheets ...SheetData) {
	t.Helper()

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	for i, sheet := range sheets {
		if i == 0 {
			// Rename the default sheet rather than leaving an empty Sheet1.
			if err := file.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := file.NewSheet(sheet.Name); err != nil {
				t.Fatalf("new sheet %s: %v", sheet.Name, err)
			}
		}

		header := make([]any, len(sheet.Columns))
		for c, name := range sheet.Columns {
			header[c] = name
		}
		if err := file.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			t.Fatalf("write header of %s: %v", sheet.Name, err)
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			rowValues := append([]any{}, row...)
			if err := file.SetSheetRow(sheet.Name, cell, &rowValues); err != nil {
				t.Fatalf("write row %d of %s: %v", r, sheet.Name, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
