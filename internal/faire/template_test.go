package faire

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oceanomics/faire2ncbi/internal/testutil"
)

func TestSRATemplateColumns(t *testing.T) {
	path := testutil.WorkbookFile(t, "sra_template.xlsx",
		testutil.Sheet{Name: "Instructions", Rows: [][]string{{"how to fill this in"}}},
		testutil.Sheet{Name: "SRA_data", Rows: [][]string{
			{"SRA submission"},
			{""},
			{"sample_name", "library_ID", "title", "library_strategy"},
		}},
	)

	cols, err := SRATemplateColumns(path)
	if err != nil {
		t.Fatalf("SRATemplateColumns: %v", err)
	}
	want := []string{"sample_name", "library_ID", "title", "library_strategy"}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestSRATemplateHeaderFallback(t *testing.T) {
	// Header on the first row, no row three: probing falls through.
	path := testutil.WorkbookFile(t, "flat_template.xlsx",
		testutil.Sheet{Name: "sra metadata", Rows: [][]string{
			{"sample_name", "library_ID"},
		}},
	)

	cols, err := SRATemplateColumns(path)
	if err != nil {
		t.Fatalf("SRATemplateColumns: %v", err)
	}
	if len(cols) != 2 || cols[0] != "sample_name" {
		t.Errorf("columns = %v", cols)
	}
}

func TestFindSRASheet(t *testing.T) {
	tests := []struct {
		name    string
		sheets  []string
		want    string
		wantErr bool
	}{
		{"named sheet", []string{"Instructions", "SRA_data"}, "SRA_data", false},
		{"case insensitive", []string{"Intro", "My SRA Sheet"}, "My SRA Sheet", false},
		{"second sheet fallback", []string{"Intro", "Data"}, "Data", false},
		{"single unnamed sheet", []string{"Sheet1"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findSRASheet(tt.sheets)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("findSRASheet = %q, want %q", got, tt.want)
			}
		})
	}
}
