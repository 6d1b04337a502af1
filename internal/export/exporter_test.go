package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "BioSampleMetadata.tsv")

	table := &Table{
		Comments: []string{"# MIMARKS.survey.water.6.0", "# comment line two"},
		Columns:  []string{"*sample_name", "*organism", "depth"},
		Rows: [][]string{
			{"S1", "seawater metagenome", "10"},
			{"S2", "seawater metagenome"},
		},
	}

	e := NewExporter()
	stats, err := e.WriteTSV(table, path)
	if err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}
	if stats.Rows != 2 || stats.Columns != 3 {
		t.Errorf("stats = %+v, want 2 rows 3 columns", stats)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{
		"# MIMARKS.survey.water.6.0",
		"# comment line two",
		"*sample_name\t*organism\tdepth",
		"S1\tseawater metagenome\t10",
		"S2\tseawater metagenome\t",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d:\n%s", len(lines), len(want), data)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file not cleaned up")
	}
}

func TestWriteTSVNoComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SRAMetadata.tsv")
	table := &Table{
		Columns: []string{"sample_name", "library_ID"},
		Rows:    [][]string{{"S1", "L1"}},
	}
	if _, err := NewExporter().WriteTSV(table, path); err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "sample_name\tlibrary_ID\n") {
		t.Errorf("unexpected content:\n%s", data)
	}
}
