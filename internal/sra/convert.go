// Package sra converts FAIRe experiment run metadata into the NCBI
// SRA submission format. Platform and instrument model values come
// from the projectMetadata sheet, with assay-level values taking
// precedence over project-level ones and conflicts settled
// interactively through the replay resolver.
package sra

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/errors"
	"github.com/oceanomics/faire2ncbi/internal/export"
	"github.com/oceanomics/faire2ncbi/internal/faire"
	"github.com/oceanomics/faire2ncbi/internal/prompt"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/validator"
)

// descriptionFields are the projectMetadata terms composed into the
// library description, in sentence order.
var descriptionFields = []string{
	"target_gene", "target_subfragment",
	"pcr_primer_name_forward", "pcr_primer_forward",
	"pcr_primer_name_reverse", "pcr_primer_reverse",
	"nucl_acid_amp",
}

// Converter drives the SRA conversion.
type Converter struct {
	runs     *faire.Table
	samples  *faire.Table   // sampleMetadata for titles, may be nil
	project  *faire.Project // projectMetadata, may be nil
	columns  []string       // SRA template column layout
	resolver *replay.Resolver
	prompter *prompt.Prompter
	out      io.Writer

	descriptions map[string]string
}

// New builds a converter. runs is the experimentRunMetadata table and
// columns the SRA submission template layout.
func New(runs, samples *faire.Table, project *faire.Project, columns []string, resolver *replay.Resolver, prompter *prompt.Prompter, out io.Writer) *Converter {
	if out == nil {
		out = os.Stdout
	}
	return &Converter{
		runs:         runs,
		samples:      samples,
		project:      project,
		columns:      append([]string(nil), columns...),
		resolver:     resolver,
		prompter:     prompter,
		out:          out,
		descriptions: make(map[string]string),
	}
}

// Convert runs the conversion and returns the submission table.
func (c *Converter) Convert() (*export.Table, error) {
	const op errors.Op = "sra.Convert"

	assays, err := c.selectAssays()
	if err != nil {
		return nil, err
	}
	filtered := filterByAssay(c.runs, assays)
	fmt.Fprintf(c.out, "Processing %d samples with selected assays.\n", filtered.Len())

	for _, col := range []string{"lib_id", "filename", "filename2"} {
		if !filtered.HasColumn(col) {
			return nil, errors.E(op, errors.KindValidation,
				"required column "+col+" missing from experimentRunMetadata")
		}
	}

	fields, err := c.configureLibraryFields()
	if err != nil {
		return nil, err
	}
	platforms, err := c.resolvePlatforms(assays)
	if err != nil {
		return nil, err
	}
	instruments, err := c.resolveInstruments(assays, platforms)
	if err != nil {
		return nil, err
	}

	colIdx := make(map[string]int, len(c.columns))
	for i, name := range c.columns {
		colIdx[name] = i
	}

	rows := make([][]string, 0, filtered.Len())
	for r := 0; r < filtered.Len(); r++ {
		row := make([]string, len(c.columns))
		set := func(col, val string) {
			if i, ok := colIdx[col]; ok {
				row[i] = val
			}
		}

		assay := filtered.Cell(r, "assay_name")
		filename := filtered.Cell(r, "filename")
		filename2 := filtered.Cell(r, "filename2")

		set("library_ID", filtered.Cell(r, "lib_id"))
		set("filename", filename)
		set("filename2", filename2)

		switch {
		case filename != "" && filename2 != "":
			set("library_layout", "paired")
		case filename != "":
			set("library_layout", "single")
		}

		set("library_strategy", fields["library_strategy"])
		set("library_source", fields["library_source"])
		set("library_selection", fields["library_selection"])
		set("platform", platforms[assay])
		set("instrument_model", instruments[assay])

		source := filename
		if source == "" {
			source = filename2
		}
		set("filetype", FiletypeFromFilename(source))

		description := c.assayDescription(assay)
		set("description", description)
		set("design_description", description)
		set("title", c.libraryTitle(filtered, r, assay))

		rows = append(rows, row)
	}

	return &export.Table{Columns: c.columns, Rows: rows}, nil
}

// selectAssays determines which assays the run covers. A single assay
// is selected automatically.
func (c *Converter) selectAssays() ([]string, error) {
	const op errors.Op = "sra.selectAssays"

	if !c.runs.HasColumn("assay_name") {
		return nil, errors.E(op, errors.KindValidation,
			"assay_name column not found in experimentRunMetadata")
	}
	assays := c.runs.UniqueValues("assay_name")
	if len(assays) == 0 {
		return nil, errors.E(op, errors.KindValidation,
			"no assay names found in assay_name column")
	}

	c.section("ASSAY SELECTION")
	if len(assays) == 1 {
		fmt.Fprintf(c.out, "Single assay found: %q\n", assays[0])
		return assays, nil
	}

	fmt.Fprintln(c.out, "Multiple assays found in 'assay_name' column:")
	for i, a := range assays {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, a)
	}

	q := "Do you want to use all assays or only specific ones? [all/specific]:"
	answer, err := c.resolver.Resolve(q, func() (string, error) {
		return c.prompter.AskChoiceDefault(q, "all", "all", "specific")
	})
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(answer, "specific") {
		fmt.Fprintf(c.out, "Using all %d assays.\n", len(assays))
		return assays, nil
	}

	fmt.Fprintln(c.out, "\nEnter assay numbers separated by commas (e.g., 1,3,5):")
	sq := "Selected assays:"
	input, err := c.resolver.Resolve(sq, c.askIndices(sq, len(assays)))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		fmt.Fprintln(c.out, "No assays selected. Using all assays.")
		return assays, nil
	}
	indices, err := validator.ParseIndexSelection(input, len(assays))
	if err != nil {
		return nil, errors.Wrap(op, err)
	}
	selected := make([]string, len(indices))
	for i, idx := range indices {
		selected[i] = assays[idx]
	}
	fmt.Fprintf(c.out, "Selected assays: %s\n", strings.Join(selected, ", "))
	return selected, nil
}

func filterByAssay(runs *faire.Table, assays []string) *faire.Table {
	want := make(map[string]bool, len(assays))
	for _, a := range assays {
		want[a] = true
	}
	var rows [][]string
	idx := runs.ColumnIndex("assay_name")
	for _, row := range runs.Rows() {
		if idx >= 0 && want[row[idx]] {
			rows = append(rows, row)
		}
	}
	return faire.NewTable(runs.Columns, rows)
}

// configureLibraryFields settles library_strategy, library_source and
// library_selection, defaulting to the AMPLICON/METAGENOMIC/PCR
// combination used for metabarcoding.
func (c *Converter) configureLibraryFields() (map[string]string, error) {
	c.section("LIBRARY FIELD CONFIGURATION")

	fields := make(map[string]string, len(libraryFieldDefaults))
	for k, v := range libraryFieldDefaults {
		fields[k] = v
	}

	for _, field := range libraryFieldOrder {
		fmt.Fprintf(c.out, "\n%s:\n  Default value: %s\n", field, fields[field])

		q := fmt.Sprintf("Use default value or choose from allowed values for %s? [default/Other]:", field)
		answer, err := c.resolver.Resolve(q, func() (string, error) {
			return c.prompter.AskChoiceDefault(q, "default", "default", "Other")
		})
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(answer, "other") {
			fmt.Fprintf(c.out, "  Using default value: %s\n", fields[field])
			continue
		}

		allowed := allowedLibraryValues[field]
		fmt.Fprintf(c.out, "  Allowed values for %s:\n", field)
		for i, v := range allowed {
			fmt.Fprintf(c.out, "    %2d. %s\n", i+1, v)
		}

		vq := fmt.Sprintf("Enter %s value (number or term):", field)
		input, err := c.resolver.Resolve(vq, c.askTermOrNumber(vq, allowed))
		if err != nil {
			return nil, err
		}
		value, err := termFromInput(input, allowed)
		if err != nil {
			return nil, err
		}
		fields[field] = value
		fmt.Fprintf(c.out, "  Selected: %s\n", value)
	}
	return fields, nil
}

// resolvePlatforms settles the platform value per assay. Assay-level
// values win unless they conflict with the project level, in which
// case the user chooses; with neither present the value is entered
// manually.
func (c *Converter) resolvePlatforms(assays []string) (map[string]string, error) {
	c.section("PLATFORM VALUES CONFIGURATION")

	projectValue := c.projectValue("platform")
	if projectValue != "" {
		fmt.Fprintf(c.out, "Project-level platform: %s\n", projectValue)
	} else {
		fmt.Fprintln(c.out, "Project-level platform: Not found")
	}

	final := make(map[string]string, len(assays))
	for _, assay := range assays {
		assayValue := c.assayValue("platform", assay)
		switch {
		case assayValue != "" && projectValue != "" && assayValue != projectValue:
			q := fmt.Sprintf("Assay '%s' has different platform values:\n    Assay-specific: %s\n    Project-level: %s\n  Which one do you want to use? [Assay/Project]:",
				assay, assayValue, projectValue)
			answer, err := c.resolver.Resolve(q, func() (string, error) {
				return c.prompter.AskChoiceDefault(q, "assay", "assay", "project")
			})
			if err != nil {
				return nil, err
			}
			if strings.EqualFold(answer, "project") {
				final[assay] = projectValue
			} else {
				final[assay] = assayValue
			}
		case assayValue != "":
			fmt.Fprintf(c.out, "  Platform value '%s' used for assay '%s'\n", assayValue, assay)
			final[assay] = assayValue
		case projectValue != "":
			fmt.Fprintf(c.out, "  Platform value '%s' used for assay '%s' (project-level)\n", projectValue, assay)
			final[assay] = projectValue
		default:
			fmt.Fprintf(c.out, "  No platform value found for assay '%s'.\n", assay)
			value, err := c.askPlatform()
			if err != nil {
				return nil, err
			}
			final[assay] = value
		}
	}
	return final, nil
}

func (c *Converter) askPlatform() (string, error) {
	fmt.Fprintln(c.out, "Suggested platforms:")
	for i, p := range allowedPlatforms {
		fmt.Fprintf(c.out, "  %2d. %s\n", i+1, p)
	}
	q := "Enter platform value (number or name):"
	input, err := c.resolver.Resolve(q, func() (string, error) {
		for {
			answer, err := c.prompter.Ask(q)
			if err != nil {
				return "", err
			}
			if _, err := platformFromInput(answer); err == nil {
				return answer, nil
			}
			fmt.Fprintf(c.out, "Error: %q is not a valid platform. Enter a number (1-%d) or a platform name.\n",
				answer, len(allowedPlatforms))
		}
	})
	if err != nil {
		return "", err
	}
	return platformFromInput(input)
}

func platformFromInput(input string) (string, error) {
	const op errors.Op = "sra.platformFromInput"
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(allowedPlatforms) {
			return "", errors.E(op, errors.KindValidation,
				fmt.Sprintf("platform number %d out of range 1-%d", n, len(allowedPlatforms)))
		}
		return allowedPlatforms[n-1], nil
	}
	for _, p := range allowedPlatforms {
		if strings.EqualFold(p, input) {
			return p, nil
		}
	}
	return "", errors.E(op, errors.KindValidation, "unknown platform "+input)
}

// resolveInstruments settles the instrument model per assay from the
// seq_kit term, with the same precedence as platforms. Assays with no
// value anywhere may be filled manually, guided by the platform's
// accepted models.
func (c *Converter) resolveInstruments(assays []string, platforms map[string]string) (map[string]string, error) {
	c.section("INSTRUMENT MODEL VALUES CONFIGURATION")

	projectValue := c.projectValue("seq_kit")
	if projectValue != "" {
		fmt.Fprintf(c.out, "Project-level instrument model: %s\n", projectValue)
	} else {
		fmt.Fprintln(c.out, "Project-level instrument model: Not found")
	}

	final := make(map[string]string, len(assays))
	for _, assay := range assays {
		assayValue := c.assayValue("seq_kit", assay)
		switch {
		case assayValue != "" && projectValue != "" && assayValue != projectValue:
			q := fmt.Sprintf("Assay '%s' has different instrument model values:\n    Assay-specific: %s\n    Project-level: %s\n  Which one do you want to use? [Assay/Project]:",
				assay, assayValue, projectValue)
			answer, err := c.resolver.Resolve(q, func() (string, error) {
				return c.prompter.AskChoiceDefault(q, "assay", "assay", "project")
			})
			if err != nil {
				return nil, err
			}
			if strings.EqualFold(answer, "project") {
				final[assay] = projectValue
			} else {
				final[assay] = assayValue
			}
		case assayValue != "":
			fmt.Fprintf(c.out, "  Instrument model '%s' used for assay '%s'\n", assayValue, assay)
			final[assay] = assayValue
		case projectValue != "":
			fmt.Fprintf(c.out, "  Instrument model '%s' used for assay '%s' (project-level)\n", projectValue, assay)
			final[assay] = projectValue
		default:
			platform := platforms[assay]
			if platform == "" {
				final[assay] = ""
				continue
			}
			q := fmt.Sprintf("No instrument model value found for assay '%s'. Do you want to add a value manually? [y/N]:", assay)
			answer, err := c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "n"))
			if err != nil {
				return nil, err
			}
			if !prompt.IsYes(answer) {
				final[assay] = ""
				continue
			}
			fmt.Fprintf(c.out, "  Platform for assay '%s': %s\n", assay, platform)
			value, err := c.askInstrumentModel(platform)
			if err != nil {
				return nil, err
			}
			final[assay] = value
		}
	}
	return final, nil
}

func (c *Converter) askInstrumentModel(platform string) (string, error) {
	models, ok := platformInstruments[platform]
	if !ok {
		q := "Enter instrument model:"
		return c.resolver.Resolve(q, c.askNonEmpty(q))
	}

	fmt.Fprintf(c.out, "\nSuggested instrument models for platform '%s':\n", platform)
	for i, m := range models {
		fmt.Fprintf(c.out, "  %2d. %s\n", i+1, m)
	}

	q := fmt.Sprintf("Enter instrument model number (1-%d) or type Other value:", len(models))
	input, err := c.resolver.Resolve(q, c.askNonEmpty(q))
	if err != nil {
		return "", err
	}
	return instrumentFromInput(input, models)
}

// instrumentFromInput maps a numbered selection to its model; any
// non-numeric input passes through as a free-form model name.
func instrumentFromInput(input string, models []string) (string, error) {
	const op errors.Op = "sra.instrumentFromInput"
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(models) {
			return "", errors.E(op, errors.KindValidation,
				fmt.Sprintf("instrument number %d out of range 1-%d", n, len(models)))
		}
		return models[n-1], nil
	}
	return input, nil
}

// assayDescription composes the library description from the PCR
// primer terms of the projectMetadata sheet. Missing terms read NA.
func (c *Converter) assayDescription(assay string) string {
	if d, ok := c.descriptions[assay]; ok {
		return d
	}
	if c.project == nil {
		c.descriptions[assay] = "NA"
		return "NA"
	}

	values := make(map[string]string, len(descriptionFields))
	for _, field := range descriptionFields {
		values[field] = "NA"
		if term, ok := c.project.Term(field); ok {
			if v := term.AssayValue(assay); v != "" {
				values[field] = v
			}
		}
	}

	d := fmt.Sprintf("Metabarcoding of %s gene %s region using PCR primers %s (%s) and %s (%s) using protocol at %s",
		values["target_gene"], values["target_subfragment"],
		values["pcr_primer_name_forward"], values["pcr_primer_forward"],
		values["pcr_primer_name_reverse"], values["pcr_primer_reverse"],
		values["nucl_acid_amp"])
	c.descriptions[assay] = d
	return d
}

// libraryTitle names a library from the sample's organism and
// location in the sampleMetadata sheet.
func (c *Converter) libraryTitle(runs *faire.Table, row int, assay string) string {
	sampName := runs.Cell(row, "samp_name")
	if sampName == "" {
		return fmt.Sprintf("%s: %s metabarcoding", runs.Cell(row, "lib_id"), assay)
	}

	organism, geoLoc := "NA", "NA"
	if c.samples != nil {
		for r, name := range c.samples.Column("samp_name") {
			if name == sampName {
				if v := c.samples.Cell(r, "organism"); v != "" {
					organism = v
				}
				if v := c.samples.Cell(r, "geo_loc_name"); v != "" {
					geoLoc = v
				}
				break
			}
		}
	}
	return fmt.Sprintf("%s: %s metabarcoding of %s in %s", sampName, assay, organism, geoLoc)
}

func (c *Converter) projectValue(term string) string {
	if c.project == nil {
		return ""
	}
	t, ok := c.project.Term(term)
	if !ok {
		return ""
	}
	return t.ProjectValue()
}

func (c *Converter) assayValue(term, assay string) string {
	if c.project == nil {
		return ""
	}
	t, ok := c.project.Term(term)
	if !ok {
		return ""
	}
	return t.AssayValue(assay)
}

// askIndices returns a prompt callback accepting a comma-separated
// index list or a bare Enter.
func (c *Converter) askIndices(question string, n int) replay.PromptFunc {
	return func() (string, error) {
		for {
			answer, err := c.prompter.Ask(question)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(answer) == "" {
				return "", nil
			}
			if _, err := validator.ParseIndexSelection(answer, n); err == nil {
				return answer, nil
			}
			fmt.Fprintf(c.out, "Invalid input. Please enter valid numbers between 1 and %d separated by commas.\n", n)
		}
	}
}

// askTermOrNumber returns a prompt callback accepting a 1-based number
// or an exact term from the allowed list.
func (c *Converter) askTermOrNumber(question string, allowed []string) replay.PromptFunc {
	return func() (string, error) {
		for {
			answer, err := c.prompter.Ask(question)
			if err != nil {
				return "", err
			}
			if _, err := termFromInput(answer, allowed); err == nil {
				return answer, nil
			}
			fmt.Fprintf(c.out, "  Error: %q is not a valid number or term.\n", answer)
		}
	}
}

func termFromInput(input string, allowed []string) (string, error) {
	const op errors.Op = "sra.termFromInput"
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(allowed) {
			return "", errors.E(op, errors.KindValidation,
				fmt.Sprintf("number %d out of range 1-%d", n, len(allowed)))
		}
		return allowed[n-1], nil
	}
	for _, v := range allowed {
		if v == input {
			return v, nil
		}
	}
	return "", errors.E(op, errors.KindValidation, "not an allowed term: "+input)
}

func (c *Converter) askNonEmpty(question string) replay.PromptFunc {
	return func() (string, error) {
		for {
			answer, err := c.prompter.Ask(question)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(answer) != "" {
				return answer, nil
			}
			fmt.Fprintln(c.out, "Value cannot be empty. Please enter a value.")
		}
	}
}

func (c *Converter) section(title string) {
	bar := strings.Repeat("=", 50)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", bar, title, bar)
}
