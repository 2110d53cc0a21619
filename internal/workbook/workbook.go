package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names as they appear in the source workbook.
const (
	SheetMembers      = "Leden"
	SheetPerformances = "Uitvoering"
	SheetRoles        = "Rollen"
	SheetFiles        = "Bestand"
	SheetMediaTypes   = "Type_Media"
)

// Column headers as they appear in the source workbook.
const (
	ColMemberID      = "id_lid"
	ColFirstName     = "Voornaam"
	ColLastName      = "Achternaam"
	ColBirthDate     = "Geboortedatum"
	ColStartYear     = "Startjaar"
	ColConsent       = "gdpr_permission"
	ColPerformance   = "uitvoering"
	ColRef           = "ref_uitvoering"
	ColTitle         = "titel"
	ColAuthor        = "auteur"
	ColYear          = "jaar"
	ColKind          = "type"
	ColDateFrom      = "datum_van"
	ColDateTo        = "datum_tot"
	ColFolder        = "folder"
	ColRole          = "rol"
	ColRoleNickname  = "rol_bijnaam"
	ColFilename      = "bestand"
	ColMediaType     = "type_media"
	ColMediaTypeDesc = "omschrijving"
)

// RequiredSheets lists the sheets a workbook must carry to be loadable.
var RequiredSheets = []string{SheetMembers, SheetPerformances, SheetRoles, SheetFiles, SheetMediaTypes}

// Workbook is an open Excel file.
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: file, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(name string) bool {
	index, err := w.file.GetSheetIndex(name)
	return err == nil && index >= 0
}

// Sheet reads the named sheet: first row becomes the column headers, the
// remaining non-empty rows become records.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	if !w.HasSheet(name) {
		return nil, fmt.Errorf("workbook %s: missing sheet %q", w.path, name)
	}
	raw, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(raw) == 0 {
		return &Sheet{Name: name, index: map[string]int{}}, nil
	}

	columns := make([]string, len(raw[0]))
	index := make(map[string]int, len(raw[0]))
	for i, header := range raw[0] {
		header = strings.TrimSpace(header)
		columns[i] = header
		if header != "" {
			index[header] = i
		}
	}

	sheet := &Sheet{Name: name, Columns: columns, index: index}
	for _, cells := range raw[1:] {
		if rowEmpty(cells) {
			continue
		}
		sheet.rows = append(sheet.rows, Row{sheet: sheet, cells: cells})
	}
	return sheet, nil
}

func rowEmpty(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Sheet holds the parsed rows of one worksheet.
type Sheet struct {
	Name    string
	Columns []string
	index   map[string]int
	rows    []Row
}

// Len returns the number of data rows.
func (s *Sheet) Len() int {
	return len(s.rows)
}

// HasColumn reports whether the header row contains the named column.
func (s *Sheet) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Rows returns the data rows in sheet order.
func (s *Sheet) Rows() []Row {
	return s.rows
}

// Row is one data row addressed by column header.
type Row struct {
	sheet *Sheet
	cells []string
}

// Value returns the trimmed cell under the named column, or "" when the
// column is absent or the row is shorter than the header.
func (r Row) Value(column string) string {
	i, ok := r.sheet.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Ptr returns the cell as a pointer, nil when empty. Used for columns where
// absence is meaningful (missing surname, unknown year).
func (r Row) Ptr(column string) *string {
	v := r.Value(column)
	if v == "" {
		return nil
	}
	return &v
}
