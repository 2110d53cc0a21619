package workbook

import (
	"fmt"
	"os"
)

// Validation is the structured result of a workbook structure check.
// Validation problems are data, not errors: the caller decides whether to
// print them or refuse a load.
type Validation struct {
	Valid     bool
	Errors    []string
	Warnings  []string
	SheetRows map[string]int
}

func (v *Validation) fail(format string, args ...any) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) warn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the workbook structure before ingestion: the file exists,
// the five required sheets are present, and the members sheet carries its
// required columns. Read failures become validation errors instead of
// propagating.
//
// Cross-sheet referential checks (a role naming an unknown performance ref)
// are not implemented; readers tolerate dangling references at query time.
func Validate(path string) Validation {
	validation := Validation{Valid: true, SheetRows: make(map[string]int)}

	if _, err := os.Stat(path); err != nil {
		validation.fail("file not found: %s", path)
		return validation
	}

	wb, err := Open(path)
	if err != nil {
		validation.fail("error reading workbook: %v", err)
		return validation
	}
	defer wb.Close()

	for _, name := range RequiredSheets {
		if !wb.HasSheet(name) {
			validation.fail("missing required sheet: %s", name)
			continue
		}
		sheet, err := wb.Sheet(name)
		if err != nil {
			validation.fail("error reading sheet %s: %v", name, err)
			continue
		}
		validation.SheetRows[name] = sheet.Len()
		if sheet.Len() == 0 {
			validation.warn("sheet %s has no data rows", name)
		}
	}

	if wb.HasSheet(SheetMembers) {
		sheet, err := wb.Sheet(SheetMembers)
		if err == nil {
			for _, column := range []string{ColMemberID, ColFirstName, ColLastName} {
				if !sheet.HasColumn(column) {
					validation.fail("%s sheet missing column: %s", SheetMembers, column)
				}
			}
		}
	}

	return validation
}
