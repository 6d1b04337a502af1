package sra

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oceanomics/faire2ncbi/internal/faire"
	"github.com/oceanomics/faire2ncbi/internal/prompt"
	"github.com/oceanomics/faire2ncbi/internal/replay"
)

var testColumns = []string{
	"library_ID", "title", "library_strategy", "library_source", "library_selection",
	"library_layout", "platform", "instrument_model", "design_description",
	"filetype", "filename", "filename2", "description",
}

func testRuns() *faire.Table {
	return faire.NewTable(
		[]string{"lib_id", "samp_name", "assay_name", "filename", "filename2"},
		[][]string{
			{"L1", "alpha", "COI", "L1_R1.fastq", "L1_R2.fastq"},
			{"L2", "beta", "COI", "L2.fastq", ""},
			{"L3", "gamma", "16S", "L3_R1.fastq", "L3_R2.fastq"},
		},
	)
}

func testSamples() *faire.Table {
	return faire.NewTable(
		[]string{"samp_name", "organism", "geo_loc_name"},
		[][]string{
			{"alpha", "seawater metagenome", "Australia: Perth"},
			{"beta", "seawater metagenome", "Australia: Perth"},
			{"gamma", "seawater metagenome", "Australia: Sydney"},
		},
	)
}

// testProject gives COI a full primer set and an assay-level
// instrument model, and 16S an assay-level platform that conflicts
// with the project level.
func testProject() *faire.Project {
	return faire.NewProject(faire.NewTable(
		[]string{"section", "requirement", "term_name", "project_level", "COI", "16S"},
		[][]string{
			{"sequencing", "M", "platform", "ILLUMINA", "", "OXFORD_NANOPORE"},
			{"sequencing", "M", "seq_kit", "", "Illumina MiSeq", ""},
			{"assay", "M", "target_gene", "", "COI", "16S rRNA"},
			{"assay", "M", "target_subfragment", "", "Folmer", "V4"},
			{"assay", "M", "pcr_primer_name_forward", "", "mlCOIintF", ""},
			{"assay", "M", "pcr_primer_forward", "", "GGWACWGGWTGAACWGTWTAYCCYCC", ""},
			{"assay", "M", "pcr_primer_name_reverse", "", "jgHCO2198", ""},
			{"assay", "M", "pcr_primer_reverse", "", "TAIACYTCIGGRTGICCRAARAAYCA", ""},
			{"assay", "M", "nucl_acid_amp", "", "https://protocols.io/coi", ""},
		},
	))
}

func newConverter(t *testing.T, runs *faire.Table, project *faire.Project, store *replay.Store, replayOn bool, input string) *Converter {
	t.Helper()
	res := replay.NewResolver(store, replay.NewLog(), replayOn)
	res.Echo = func(q, a string) {}
	p := prompt.NewWithIO(strings.NewReader(input), io.Discard)
	return New(runs, testSamples(), project, testColumns, res, p, io.Discard)
}

func TestConvertInteractive(t *testing.T) {
	store := replay.NewStore(replay.ModeSRA)
	input := strings.Join([]string{
		"",      // use all assays
		"Other", // pick library_strategy from the allowed list
		"9",     // AMPLICON by number
		"",      // default library_source
		"",      // default library_selection
		"",      // 16S platform conflict, keep the assay value
		"y",     // add 16S instrument model manually
		"2",     // MinION from the Nanopore suggestions
	}, "\n") + "\n"

	table, err := newConverter(t, testRuns(), testProject(), store, false, input).Convert()
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if diff := cmp.Diff(testColumns, table.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(table.Rows))
	}

	coiDesc := "Metabarcoding of COI gene Folmer region using PCR primers " +
		"mlCOIintF (GGWACWGGWTGAACWGTWTAYCCYCC) and jgHCO2198 (TAIACYTCIGGRTGICCRAARAAYCA) " +
		"using protocol at https://protocols.io/coi"
	wantFirst := []string{
		"L1",
		"alpha: COI metabarcoding of seawater metagenome in Australia: Perth",
		"AMPLICON", "METAGENOMIC", "PCR",
		"paired",
		"ILLUMINA",
		"Illumina MiSeq",
		coiDesc,
		"fastq",
		"L1_R1.fastq", "L1_R2.fastq",
		coiDesc,
	}
	if diff := cmp.Diff(wantFirst, table.Rows[0]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}

	// Single-file library.
	if got := table.Rows[1][5]; got != "single" {
		t.Errorf("L2 library_layout = %q, want single", got)
	}

	// 16S kept its assay platform, was given MinION manually, and its
	// missing primer terms read NA.
	sixteenS := table.Rows[2]
	if got := sixteenS[6]; got != "OXFORD_NANOPORE" {
		t.Errorf("16S platform = %q, want OXFORD_NANOPORE", got)
	}
	if got := sixteenS[7]; got != "MinION" {
		t.Errorf("16S instrument_model = %q, want MinION", got)
	}
	want16S := "Metabarcoding of 16S rRNA gene V4 region using PCR primers NA (NA) and NA (NA) using protocol at NA"
	if got := sixteenS[12]; got != want16S {
		t.Errorf("16S description = %q, want %q", got, want16S)
	}
	wantTitle := "gamma: 16S metabarcoding of seawater metagenome in Australia: Sydney"
	if got := sixteenS[1]; got != wantTitle {
		t.Errorf("16S title = %q, want %q", got, wantTitle)
	}
}

func TestConvertReplaysRecordedRun(t *testing.T) {
	store := replay.NewStore(replay.ModeSRA)
	input := strings.Join([]string{
		"", "Other", "9", "", "", "", "y", "2",
	}, "\n") + "\n"

	first, err := newConverter(t, testRuns(), testProject(), store, false, input).Convert()
	if err != nil {
		t.Fatalf("first Convert: %v", err)
	}

	// Replaying from the store with an empty input stream proves no
	// question was asked twice.
	second, err := newConverter(t, testRuns(), testProject(), store, true, "").Convert()
	if err != nil {
		t.Fatalf("replayed Convert: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replayed output differs (-first +second):\n%s", diff)
	}
}

func TestConvertSpecificAssays(t *testing.T) {
	store := replay.NewStore(replay.ModeSRA)
	input := strings.Join([]string{
		"specific", // not all assays
		"1",        // COI only
		"", "", "", // library field defaults
	}, "\n") + "\n"

	table, err := newConverter(t, testRuns(), testProject(), store, false, input).Convert()
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want the 2 COI libraries", len(table.Rows))
	}
	for r, row := range table.Rows {
		if row[6] != "ILLUMINA" {
			t.Errorf("row %d platform = %q, want the project-level ILLUMINA", r, row[6])
		}
		if row[7] != "Illumina MiSeq" {
			t.Errorf("row %d instrument_model = %q, want the assay-level value", r, row[7])
		}
	}
}

func TestConvertSingleAssayAutoSelected(t *testing.T) {
	runs := faire.NewTable(
		[]string{"lib_id", "samp_name", "assay_name", "filename", "filename2"},
		[][]string{
			{"L1", "alpha", "COI", "L1_R1.fastq", "L1_R2.fastq"},
			{"L2", "beta", "COI", "L2.fastq", ""},
		},
	)
	// Only the three library field defaults are asked.
	input := "\n\n\n"

	table, err := newConverter(t, runs, testProject(), replay.NewStore(replay.ModeSRA), false, input).Convert()
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
}

func TestConvertWithoutProjectMetadata(t *testing.T) {
	runs := faire.NewTable(
		[]string{"lib_id", "samp_name", "assay_name", "filename", "filename2"},
		[][]string{{"L1", "alpha", "COI", "L1_R1.fastq", "L1_R2.fastq"}},
	)
	input := strings.Join([]string{
		"", "", "", // library field defaults
		"11", // platform entered manually, ILLUMINA by number
		"n",  // no manual instrument model
	}, "\n") + "\n"

	res := replay.NewResolver(replay.NewStore(replay.ModeSRA), replay.NewLog(), false)
	res.Echo = func(q, a string) {}
	p := prompt.NewWithIO(strings.NewReader(input), io.Discard)
	c := New(runs, nil, nil, testColumns, res, p, io.Discard)

	table, err := c.Convert()
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	row := table.Rows[0]
	if row[6] != "ILLUMINA" {
		t.Errorf("platform = %q, want ILLUMINA", row[6])
	}
	if row[7] != "" {
		t.Errorf("instrument_model = %q, want empty", row[7])
	}
	if row[12] != "NA" {
		t.Errorf("description = %q, want NA", row[12])
	}
	wantTitle := "alpha: COI metabarcoding of NA in NA"
	if row[1] != wantTitle {
		t.Errorf("title = %q, want %q", row[1], wantTitle)
	}
}

func TestConvertRequiresAssayColumn(t *testing.T) {
	runs := faire.NewTable([]string{"lib_id", "filename"}, [][]string{{"L1", "a.fastq"}})
	c := newConverter(t, runs, testProject(), replay.NewStore(replay.ModeSRA), false, "")
	if _, err := c.Convert(); err == nil {
		t.Fatal("missing assay_name column should be an error")
	}
}
