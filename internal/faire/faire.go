// Package faire reads FAIRe metadata workbooks. A FAIRe workbook
// carries three sheets of interest: sampleMetadata and
// experimentRunMetadata with their header on the third row, and
// projectMetadata with a term_name column describing project-level
// and per-assay values.
package faire

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/oceanomics/faire2ncbi/internal/errors"
)

const (
	sampleSheet        = "sampleMetadata"
	experimentSheet    = "experimentRunMetadata"
	projectSheet       = "projectMetadata"
	metadataHeaderRow  = 3
	projectHeaderRow   = 1
	termNameColumn     = 2 // zero-based index within projectMetadata
	projectValueColumn = 3
)

// Workbook is an open FAIRe metadata spreadsheet.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	const op errors.Op = "faire.Open"
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "cannot open FAIRe metadata file "+path)
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SampleMetadata reads the sampleMetadata sheet.
func (w *Workbook) SampleMetadata() (*Table, error) {
	return w.readTable(sampleSheet, metadataHeaderRow)
}

// ExperimentRunMetadata reads the experimentRunMetadata sheet.
func (w *Workbook) ExperimentRunMetadata() (*Table, error) {
	return w.readTable(experimentSheet, metadataHeaderRow)
}

// ProjectMetadata reads the projectMetadata sheet.
func (w *Workbook) ProjectMetadata() (*Project, error) {
	t, err := w.readTable(projectSheet, projectHeaderRow)
	if err != nil {
		return nil, err
	}
	return &Project{table: t}, nil
}

func (w *Workbook) readTable(sheet string, headerRow int) (*Table, error) {
	const op errors.Op = "faire.readTable"
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, errors.E(op, errors.KindParse, err, "cannot read sheet "+sheet)
	}
	t, err := tableFromRows(rows, headerRow)
	if err != nil {
		return nil, errors.E(op, errors.KindParse, err, "sheet "+sheet)
	}
	return t, nil
}

// tableFromRows builds a Table from raw sheet rows. headerRow is
// one-based. Rows above the header are discarded and fully empty data
// rows are skipped.
func tableFromRows(rows [][]string, headerRow int) (*Table, error) {
	const op errors.Op = "faire.tableFromRows"
	if len(rows) < headerRow {
		return nil, errors.E(op, errors.KindParse, "sheet has no header row")
	}

	header := rows[headerRow-1]
	// Trailing unnamed cells are not columns.
	last := -1
	for i, h := range header {
		if strings.TrimSpace(h) != "" {
			last = i
		}
	}
	if last < 0 {
		return nil, errors.E(op, errors.KindParse, "header row is empty")
	}
	columns := make([]string, last+1)
	for i := 0; i <= last; i++ {
		columns[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Columns: columns}
	for _, raw := range rows[headerRow:] {
		row := make([]string, len(columns))
		empty := true
		for i := range columns {
			if i < len(raw) {
				row[i] = Clean(raw[i])
			}
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}

// Clean normalizes a cell value. Spreadsheet exports frequently carry
// literal "nan" or "None" where a cell was blank; those read as empty.
func Clean(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "none", "null":
		return ""
	}
	return v
}

// Table is one sheet's data keyed by its header row.
type Table struct {
	Columns []string
	rows    [][]string
}

// NewTable builds a table from in-memory data. Rows are padded or
// truncated to the column count and cells are cleaned the same way
// sheet reads are.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	for _, raw := range rows {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(raw) {
				row[i] = Clean(raw[i])
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the data rows. Every row has len(t.Columns) cells.
func (t *Table) Rows() [][]string {
	return t.rows
}

// ColumnIndex returns the index of the named column, or -1. Matching
// trims surrounding whitespace on both sides.
func (t *Table) ColumnIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at the given row for the named column, empty
// when either does not exist.
func (t *Table) Cell(row int, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || row < 0 || row >= len(t.rows) {
		return ""
	}
	return t.rows[row][i]
}

// Column returns every value of the named column in row order,
// including empty cells. Unknown columns yield nil.
func (t *Table) Column(name string) []string {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// UniqueValues returns the distinct non-empty values of a column in
// first-seen order.
func (t *Table) UniqueValues(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range t.Column(name) {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// NonEmptyCount returns how many rows carry a value in the column.
func (t *Table) NonEmptyCount(name string) int {
	n := 0
	for _, v := range t.Column(name) {
		if v != "" {
			n++
		}
	}
	return n
}

var unitAffixes = regexp.MustCompile(`^[a-zA-Z\s]*|[a-zA-Z\s]*$`)

// IsNumeric reports whether a column holds numerical measurements.
// A single parseable value qualifies the column; unit text attached
// to a value ("12 m") is stripped before parsing.
func (t *Table) IsNumeric(name string) bool {
	for _, v := range t.Column(name) {
		if v == "" {
			continue
		}
		clean := strings.TrimSpace(unitAffixes.ReplaceAllString(v, ""))
		if clean == "" {
			continue
		}
		if _, err := strconv.ParseFloat(clean, 64); err == nil {
			return true
		}
	}
	return false
}

// unitSuffixes lists the column-name suffixes a unit column may carry,
// in lookup order.
var unitSuffixes = []string{"_unit", "_units", "_unit_of_measure", "_measurement_unit"}

// UnitColumn finds the unit column paired with a numerical column and
// the most common non-empty unit recorded in it.
func (t *Table) UnitColumn(name string) (column, unit string, ok bool) {
	for _, suffix := range unitSuffixes {
		candidate := name + suffix
		if !t.HasColumn(candidate) {
			continue
		}
		if u := mostCommon(t.Column(candidate)); u != "" {
			return candidate, u, true
		}
	}
	return "", "", false
}

// mostCommon returns the most frequent non-empty value, breaking ties
// by first appearance.
func mostCommon(values []string) string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := ""
	for _, v := range order {
		if best == "" || counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

// Project wraps the projectMetadata sheet, which is term-oriented
// rather than sample-oriented.
type Project struct {
	table *Table
}

// NewProject wraps an in-memory table as projectMetadata.
func NewProject(t *Table) *Project {
	return &Project{table: t}
}

// Table exposes the underlying sheet.
func (p *Project) Table() *Table {
	return p.table
}

// Term looks up a row by its term_name, case-insensitively.
func (p *Project) Term(name string) (*Term, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, row := range p.table.rows {
		if termNameColumn < len(row) && strings.ToLower(row[termNameColumn]) == name {
			return &Term{table: p.table, row: row}, true
		}
	}
	return nil, false
}

// Term is one projectMetadata row.
type Term struct {
	table *Table
	row   []string
}

// ProjectValue returns the project-level value of the term, empty when
// the project column is blank.
func (t *Term) ProjectValue() string {
	if projectValueColumn >= len(t.row) {
		return ""
	}
	return t.row[projectValueColumn]
}

// AssayValue returns the term's value for a named assay column, empty
// when the workbook has no such column or the cell is blank.
func (t *Term) AssayValue(assay string) string {
	i := t.table.ColumnIndex(assay)
	if i < 0 || i >= len(t.row) {
		return ""
	}
	return t.row[i]
}
