package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oceanomics/faire2ncbi/internal/errors"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/runinfo"
)

const divider = "# =============================================================================\n"

type sectionNote struct {
	category    replay.Category
	title       string
	description string
}

var biosampleNotes = []sectionNote{
	{replay.CatConfigFile, "CONFIGURATION FILE HANDLING", "File overwrite prompts"},
	{replay.CatOutputOverwrite, "OUTPUT FILE OVERWRITE", "Output file overwrite prompts"},
	{replay.CatBioproject, "BIOPROJECT ACCESSION HANDLING", "Bioproject accession configuration for grouping samples by expedition"},
	{replay.CatMandatoryFields, "MANDATORY FIELDS HANDLING", "Configuration for handling empty mandatory fields (marked with *)"},
	{replay.CatNumericalUnits, "NUMERICAL COLUMNS WITH UNITS", "Unit configuration for numerical columns in BioSample metadata"},
	{replay.CatDuplicateRows, "DUPLICATE ROW CHECKING", "Configuration for handling duplicate rows in the output"},
	{replay.CatSampleTitle, "SAMPLE TITLE GENERATION", "Configuration for generating sample_title column values"},
	{replay.CatAdditionalColumns, "ADDITIONAL COLUMNS FROM SAMPLE METADATA", "Configuration for adding additional columns from FAIReMetadata to BioSampleMetadata"},
}

var sraNotes = []sectionNote{
	{replay.CatConfigFile, "CONFIGURATION FILE HANDLING", "File overwrite prompts"},
	{replay.CatOutputOverwrite, "OUTPUT FILE OVERWRITE", "Output file overwrite prompts"},
	{replay.CatAssaySelection, "ASSAY SELECTION", "Assay selection and filtering"},
	{replay.CatLibraryFields, "LIBRARY FIELD CONFIGURATION", "Library strategy, source, and selection settings"},
	{replay.CatPlatformValues, "PLATFORM VALUES CONFIGURATION", "Platform value choices per assay"},
	{replay.CatInstrumentModel, "INSTRUMENT MODEL VALUES CONFIGURATION", "Instrument model choices per assay"},
}

func notesFor(mode replay.Mode) []sectionNote {
	if mode == replay.ModeSRA {
		return sraNotes
	}
	return biosampleNotes
}

// Save writes the full configuration document: store sections in
// skeleton order, run metadata, and the generated-files list, all in
// the commented human-readable layout. Grouped answers are written in
// chronological-log order, which keeps grouped accession maps in
// expedition order on disk; a nil log falls back to insertion order.
// If the decorated write fails, a raw YAML dump is attempted at the
// same path so no answers are lost.
func Save(store *replay.Store, log *replay.Log, run *runinfo.Run, dateTime, path string) error {
	const op errors.Op = "configfile.Save"
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.E(op, errors.KindIO, err)
		}
	}
	pos := logPositions(log)
	body := decorate(store, pos, run, dateTime)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		if rawErr := rawDump(store, pos, run, dateTime, path); rawErr != nil {
			return errors.E(op, errors.KindIO, err)
		}
		return nil
	}
	return nil
}

// logPositions indexes the chronological log by normalized question.
func logPositions(log *replay.Log) map[string]int {
	if log == nil {
		return nil
	}
	pos := make(map[string]int, log.Len())
	for i, rec := range log.Records() {
		pos[rec.Question] = i
	}
	return pos
}

// orderedKeys returns a grouped entry's keys in chronological-log
// order. Keys the log does not carry (loaded from a prior file but not
// resolved this run) keep their insertion order after the logged ones.
func orderedKeys(e *replay.Entry, pos map[string]int) []string {
	keys := e.Keys()
	if pos == nil {
		return keys
	}
	var logged, rest []string
	for _, k := range keys {
		if _, ok := pos[k]; ok {
			logged = append(logged, k)
		} else {
			rest = append(rest, k)
		}
	}
	sort.SliceStable(logged, func(i, j int) bool { return pos[logged[i]] < pos[logged[j]] })
	return append(logged, rest...)
}

func decorate(store *replay.Store, pos map[string]int, run *runinfo.Run, dateTime string) string {
	var b strings.Builder
	name := store.Mode().String()
	fmt.Fprintf(&b, "# %s Configuration File\n", name)
	fmt.Fprintf(&b, "# This file contains all user responses from the %s workflow\n", name)
	b.WriteString("# Generated automatically - do not edit manually unless you understand the structure\n\n")

	fmt.Fprintf(&b, "command: %s\n", run.Command)
	fmt.Fprintf(&b, "date_time: '%s'\n\n", dateTime)

	noted := make(map[replay.Category]bool)
	for _, n := range notesFor(store.Mode()) {
		noted[n.category] = true
		writeSection(&b, store.Section(n.category), n, pos)
	}
	// Categories from older files that the skeleton does not know are
	// carried through with a generic banner.
	for _, cat := range store.Categories() {
		if !noted[cat] {
			writeSection(&b, store.Section(cat), sectionNote{cat, string(cat), ""}, pos)
		}
	}

	if len(run.GeneratedFiles) > 0 {
		b.WriteString(divider)
		b.WriteString("# GENERATED FILES TRACKING\n")
		b.WriteString(divider)
		b.WriteString("# List of files created by the script\n")
		b.WriteString("generated_files:\n")
		for _, gf := range run.GeneratedFiles {
			fmt.Fprintf(&b, "- file_path: %s\n", gf.FilePath)
			fmt.Fprintf(&b, "  description: %s\n", gf.Description)
			fmt.Fprintf(&b, "  timestamp: '%s'\n", gf.Timestamp)
		}
		b.WriteString("\n")
	}

	writeUsageNotes(&b, store.Mode())
	return b.String()
}

func writeSection(b *strings.Builder, sec *replay.Section, n sectionNote, pos map[string]int) {
	b.WriteString(divider)
	fmt.Fprintf(b, "# %s\n", n.title)
	b.WriteString(divider)
	if n.description != "" {
		fmt.Fprintf(b, "# %s\n", n.description)
	}
	fmt.Fprintf(b, "%s:\n", n.category)
	for _, text := range sec.Templates() {
		e := sec.Entry(text)
		if e.Grouped {
			fmt.Fprintf(b, "  %s:\n", quoteKey(text))
			for _, q := range orderedKeys(e, pos) {
				answer, _ := e.Get(q)
				fmt.Fprintf(b, "    %s: %s\n", quoteKey(q), quoteKey(answer))
			}
		} else {
			fmt.Fprintf(b, "  %s: %s\n", quoteKey(text), quoteKey(e.Scalar))
		}
	}
	b.WriteString("\n")
}

// quoteKey picks the YAML quoting style: double quotes when the text
// embeds a single quote or a line break (multi-line questions are
// flattened to one line first), single quotes otherwise.
func quoteKey(s string) string {
	if strings.Contains(s, "'") || strings.Contains(s, "\n") {
		clean := strings.ReplaceAll(s, "\n", " ")
		for strings.Contains(clean, "  ") {
			clean = strings.ReplaceAll(clean, "  ", " ")
		}
		clean = strings.TrimSpace(clean)
		clean = strings.ReplaceAll(clean, `\`, `\\`)
		clean = strings.ReplaceAll(clean, `"`, `\"`)
		return `"` + clean + `"`
	}
	return "'" + s + "'"
}

func writeUsageNotes(b *strings.Builder, mode replay.Mode) {
	b.WriteString(divider)
	b.WriteString("# NOTES ON USAGE\n")
	b.WriteString(divider)
	fmt.Fprintf(b, "# This configuration file contains all user responses from the %s workflow.\n", mode.String())
	b.WriteString("# \n")
	b.WriteString("# Key sections:\n")
	for _, n := range notesFor(mode) {
		fmt.Fprintf(b, "# - %s: %s\n", n.category, n.description)
	}
	b.WriteString("# - generated_files: List of files created by the script\n")
	b.WriteString("# \n")
	b.WriteString("# To reuse this configuration:\n")
	b.WriteString("# 1. Run the workflow with --config-file path/to/this/file.yaml\n")
	b.WriteString("# 2. Saved answers are replayed and their prompts skipped\n")
	b.WriteString("# 3. Only missing answers will prompt for user input\n")
}

// rawDump is the fallback writer: an undecorated yaml.v3 dump of the
// same tree, used when the decorated write fails.
func rawDump(store *replay.Store, pos map[string]int, run *runinfo.Run, dateTime, path string) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	addScalar := func(key, value string) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value})
	}
	addScalar("command", run.Command)
	addScalar("date_time", dateTime)
	for _, cat := range store.Categories() {
		sec := store.Section(cat)
		secNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, text := range sec.Templates() {
			e := sec.Entry(text)
			if e.Grouped {
				m := &yaml.Node{Kind: yaml.MappingNode}
				for _, q := range orderedKeys(e, pos) {
					answer, _ := e.Get(q)
					m.Content = append(m.Content,
						&yaml.Node{Kind: yaml.ScalarNode, Value: q},
						&yaml.Node{Kind: yaml.ScalarNode, Value: answer})
				}
				secNode.Content = append(secNode.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: text}, m)
			} else {
				secNode.Content = append(secNode.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: text},
					&yaml.Node{Kind: yaml.ScalarNode, Value: e.Scalar})
			}
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(cat)}, secNode)
	}
	if len(run.GeneratedFiles) > 0 {
		var files yaml.Node
		if err := files.Encode(run.GeneratedFiles); err != nil {
			return err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "generated_files"}, &files)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
