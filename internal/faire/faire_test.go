package faire

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oceanomics/faire2ncbi/internal/testutil"
)

func sampleWorkbook(t *testing.T) *Workbook {
	t.Helper()
	path := testutil.WorkbookFile(t, "faire.xlsx",
		testutil.Sheet{Name: "sampleMetadata", Rows: [][]string{
			{"FAIRe sample metadata"},
			{"section header"},
			{"samp_name", "geo_loc_name", "depth", "depth_unit", "expedition_id"},
			{"S1", "Australia: Perth", "10", "m", "EX2107"},
			{"S2", "Australia: Perth", "25", "m", "EX2107"},
			{"S3", "nan", "", "", "EX2201"},
			{"", "", "", "", ""},
		}},
		testutil.Sheet{Name: "experimentRunMetadata", Rows: [][]string{
			{"FAIRe experiment metadata"},
			{"section header"},
			{"samp_name", "assay_name", "lib_id"},
			{"S1", "16S", "L1"},
			{"S2", "16S", "L2"},
		}},
		testutil.Sheet{Name: "projectMetadata", Rows: [][]string{
			{"req", "section", "term_name", "project_level", "16S", "18S"},
			{"R", "seq", "platform", "ILLUMINA", "", "OXFORD_NANOPORE"},
			{"R", "seq", "seq_kit", "", "NextSeq 2000", ""},
			{"O", "seq", "other_term", "nan", "", ""},
		}},
	)

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestSampleMetadata(t *testing.T) {
	wb := sampleWorkbook(t)
	tbl, err := wb.SampleMetadata()
	if err != nil {
		t.Fatalf("SampleMetadata: %v", err)
	}

	wantCols := []string{"samp_name", "geo_loc_name", "depth", "depth_unit", "expedition_id"}
	if diff := cmp.Diff(wantCols, tbl.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	// The empty trailing row is dropped, the row with values kept.
	if tbl.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tbl.Len())
	}
	// "nan" cells read as empty.
	if got := tbl.Cell(2, "geo_loc_name"); got != "" {
		t.Errorf("nan cell = %q, want empty", got)
	}
	if got := tbl.Cell(0, "samp_name"); got != "S1" {
		t.Errorf("Cell(0, samp_name) = %q", got)
	}
}

func TestTableColumnHelpers(t *testing.T) {
	wb := sampleWorkbook(t)
	tbl, err := wb.SampleMetadata()
	if err != nil {
		t.Fatal(err)
	}

	if got := tbl.UniqueValues("expedition_id"); !cmp.Equal(got, []string{"EX2107", "EX2201"}) {
		t.Errorf("UniqueValues = %v", got)
	}
	if got := tbl.NonEmptyCount("depth"); got != 2 {
		t.Errorf("NonEmptyCount(depth) = %d, want 2", got)
	}
	if !tbl.IsNumeric("depth") {
		t.Error("depth should be numeric")
	}
	if tbl.IsNumeric("geo_loc_name") {
		t.Error("geo_loc_name should not be numeric")
	}
	if tbl.IsNumeric("no_such_column") {
		t.Error("unknown column should not be numeric")
	}

	col, unit, ok := tbl.UnitColumn("depth")
	if !ok || col != "depth_unit" || unit != "m" {
		t.Errorf("UnitColumn(depth) = %q, %q, %v", col, unit, ok)
	}
	if _, _, ok := tbl.UnitColumn("geo_loc_name"); ok {
		t.Error("geo_loc_name should have no unit column")
	}
}

func TestIsNumericWithAttachedUnit(t *testing.T) {
	tbl := &Table{
		Columns: []string{"temp"},
		rows:    [][]string{{"12.5 C"}, {"ambient"}},
	}
	if !tbl.IsNumeric("temp") {
		t.Error("value with unit text should still parse as numeric")
	}
}

func TestProjectMetadata(t *testing.T) {
	wb := sampleWorkbook(t)
	proj, err := wb.ProjectMetadata()
	if err != nil {
		t.Fatalf("ProjectMetadata: %v", err)
	}

	term, ok := proj.Term("Platform") // case-insensitive
	if !ok {
		t.Fatal("platform term not found")
	}
	if got := term.ProjectValue(); got != "ILLUMINA" {
		t.Errorf("ProjectValue = %q", got)
	}
	if got := term.AssayValue("18S"); got != "OXFORD_NANOPORE" {
		t.Errorf("AssayValue(18S) = %q", got)
	}
	if got := term.AssayValue("16S"); got != "" {
		t.Errorf("AssayValue(16S) = %q, want empty", got)
	}

	kit, ok := proj.Term("seq_kit")
	if !ok {
		t.Fatal("seq_kit term not found")
	}
	if got := kit.ProjectValue(); got != "" {
		t.Errorf("seq_kit project value = %q, want empty", got)
	}
	if got := kit.AssayValue("16S"); got != "NextSeq 2000" {
		t.Errorf("seq_kit AssayValue(16S) = %q", got)
	}

	// A "nan" project value reads as missing.
	other, ok := proj.Term("other_term")
	if !ok {
		t.Fatal("other_term not found")
	}
	if got := other.ProjectValue(); got != "" {
		t.Errorf("nan project value = %q, want empty", got)
	}

	if _, ok := proj.Term("no_such_term"); ok {
		t.Error("unknown term should not be found")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadMissingSheet(t *testing.T) {
	path := testutil.WorkbookFile(t, "partial.xlsx",
		testutil.Sheet{Name: "sampleMetadata", Rows: [][]string{{"a"}, {"b"}, {"samp_name"}, {"S1"}}},
	)
	wb, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	if _, err := wb.ExperimentRunMetadata(); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  value  ", "value"},
		{"nan", ""},
		{"NaN", ""},
		{"None", ""},
		{"null", ""},
		{"nancy", "nancy"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
