package biosample

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oceanomics/faire2ncbi/internal/faire"
)

func TestFindGroupingFields(t *testing.T) {
	table := faire.NewTable(
		[]string{"samp_name", "expedition_id", "site", "constant", "sparse"},
		[][]string{
			{"S1", "EX2107", "A", "x", "v1"},
			{"S2", "EX2107", "B", "x", ""},
			{"S3", "EX2201", "A", "x", ""},
			{"S4", "EX2201", "B", "x", ""},
		},
	)

	fields := findGroupingFields(table)

	// samp_name has 4 unique values, expedition_id and site have 2.
	// constant has one value and sparse has 25% coverage; both drop.
	want := []GroupingField{
		{Column: "expedition_id", UniqueCount: 2},
		{Column: "site", UniqueCount: 2},
		{Column: "samp_name", UniqueCount: 4},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("grouping fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFindUniqueFields(t *testing.T) {
	table := faire.NewTable(
		[]string{"samp_name", "replicate", "empty_col", "sparse_unique"},
		[][]string{
			{"S1", "rep1", "", "a"},
			{"S2", "rep1", "", ""},
			{"S3", "rep2", "", "b"},
		},
	)

	got := findUniqueFields(table)
	// sparse_unique counts: gaps are ignored, only filled values must
	// be distinct. empty_col has no values at all and drops.
	want := []string{"samp_name", "sparse_unique"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unique fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckDuplicates(t *testing.T) {
	ws := newWorksheet([]string{"*sample_name", "sample_title", "site", "depth"}, 4)
	ws.rows = [][]string{
		{"S1", "title one", "A", "10"},
		{"S2", "title two", "A", "10"},
		{"S3", "", "B", "20"},
		{"S4", "", "A", "10"},
	}

	rep := checkDuplicates(ws)
	if rep == nil {
		t.Fatal("expected duplicates")
	}
	if rep.Total != 3 {
		t.Errorf("Total = %d, want 3", rep.Total)
	}
	if len(rep.Groups) != 1 {
		t.Fatalf("Groups = %v", rep.Groups)
	}
	if diff := cmp.Diff([]string{"S1", "S2", "S4"}, rep.Groups[0]); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"*sample_name", "sample_title"}, rep.Excluded); diff != "" {
		t.Errorf("excluded mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckDuplicatesNone(t *testing.T) {
	ws := newWorksheet([]string{"*sample_name", "site"}, 2)
	ws.rows = [][]string{{"S1", "A"}, {"S2", "B"}}
	if rep := checkDuplicates(ws); rep != nil {
		t.Errorf("unexpected duplicates: %+v", rep)
	}
}
