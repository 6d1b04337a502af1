package biosample

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/export"
	"github.com/oceanomics/faire2ncbi/internal/faire"
	"github.com/oceanomics/faire2ncbi/internal/prompt"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/validator"
)

// ErrAborted reports that the user declined to continue the run.
var ErrAborted = goerrors.New("aborted by user")

// defaultTitleColumns feed sample_title when the user accepts the
// suggested composition.
var defaultTitleColumns = []string{"*geo_loc_name", "*organism", "*sample_name"}

// Converter drives the BioSample conversion. Interactive decisions go
// through the resolver; free-form sub-prompts that are never replayed
// use the prompter directly.
type Converter struct {
	sample   *faire.Table
	template *Template
	mapping  *Mapping
	resolver *replay.Resolver
	prompter *prompt.Prompter
	out      io.Writer
}

// New builds a converter over a sample table and a MIMARKS template.
func New(sample *faire.Table, tmpl *Template, resolver *replay.Resolver, prompter *prompt.Prompter, out io.Writer) *Converter {
	if out == nil {
		out = os.Stdout
	}
	return &Converter{
		sample:   sample,
		template: tmpl,
		mapping:  BuildMapping(tmpl.Columns, sample),
		resolver: resolver,
		prompter: prompter,
		out:      out,
	}
}

// Mapping exposes the resolved column pairing.
func (c *Converter) Mapping() *Mapping {
	return c.mapping
}

// Convert runs the full conversion and returns the table to write.
// bioprojectAccession, when non-empty, fills the accession column for
// every sample and skips the interactive accession flow.
func (c *Converter) Convert(bioprojectAccession string) (*export.Table, error) {
	ws := c.initialTable()

	if err := c.fillBioproject(ws, bioprojectAccession); err != nil {
		return nil, err
	}
	if err := c.fillMandatory(ws); err != nil {
		return nil, err
	}
	if err := c.applyUnits(ws); err != nil {
		return nil, err
	}
	if err := c.resolveDuplicates(ws); err != nil {
		return nil, err
	}
	if err := c.generateTitles(ws); err != nil {
		return nil, err
	}
	if err := c.addAdditionalColumns(ws); err != nil {
		return nil, err
	}

	return &export.Table{
		Comments: c.template.Comments,
		Columns:  ws.columns,
		Rows:     ws.rows,
	}, nil
}

// initialTable copies the mapped FAIRe columns into the template
// layout, combining coordinates into *lat_lon.
func (c *Converter) initialTable() *worksheet {
	ws := newWorksheet(c.mapping.Columns, c.sample.Len())
	for _, col := range c.mapping.Columns {
		src := c.mapping.Source[col]
		switch {
		case src == latLonColumn:
			lat := c.sample.Column(latSource)
			lon := c.sample.Column(lonSource)
			combined := make([]string, c.sample.Len())
			for r := range combined {
				combined[r] = combineLatLon(lat[r], lon[r])
			}
			ws.setColumn(col, combined)
		case src != "":
			ws.setColumn(col, c.sample.Column(src))
		}
	}
	return ws
}

func (c *Converter) fillBioproject(ws *worksheet, accession string) error {
	col := ""
	for _, name := range ws.columns {
		if IsBioprojectColumn(name) {
			col = name
			break
		}
	}
	if col == "" {
		return nil
	}
	if accession != "" {
		ws.fillColumn(col, accession)
		return nil
	}

	c.section("BIOPROJECT ACCESSION HANDLING")

	q := "No bioproject_accession provided. Do you want to enter values manually? [y/N]:"
	answer, err := c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "n"))
	if err != nil {
		return err
	}
	if !prompt.IsYes(answer) {
		fmt.Fprintln(c.out, "bioproject_accession will remain blank.")
		return nil
	}

	q = "Do you want to enter the same value for all samples? [y/N]:"
	answer, err = c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "n"))
	if err != nil {
		return err
	}
	if prompt.IsYes(answer) {
		q = "Enter the value to use for all samples:"
		value, err := c.resolver.Resolve(q, c.prompter.Func(q))
		if err != nil {
			return err
		}
		ws.fillColumn(col, strings.TrimSpace(value))
		return nil
	}

	return c.fillBioprojectByGroup(ws, col)
}

// fillBioprojectByGroup assigns accessions per group of samples, keyed
// by a field the user selects from the sample metadata.
func (c *Converter) fillBioprojectByGroup(ws *worksheet, col string) error {
	c.section("FINDING SUITABLE GROUPING FIELDS")

	fields := findGroupingFields(c.sample)
	if len(fields) == 0 {
		fmt.Fprintln(c.out, "No suitable grouping fields found. bioproject_accession will remain blank.")
		return nil
	}

	fmt.Fprintf(c.out, "\nFound %d fields suitable for grouping samples:\n", len(fields))
	for i, f := range fields {
		fmt.Fprintf(c.out, "  %2d. %s (%d unique values)\n", i+1, f.Column, f.UniqueCount)
	}

	q := fmt.Sprintf("Enter field number (1-%d) or field name to group samples:", len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Column
	}
	field, err := c.resolver.Resolve(q, c.pickField(q, names))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Selected grouping field: %s\n", field)

	values := c.sample.UniqueValues(field)
	sort.Strings(values)
	fmt.Fprintf(c.out, "\nUnique values in '%s':\n", field)
	for i, v := range values {
		fmt.Fprintf(c.out, "  %2d. %s\n", i+1, v)
	}

	valueToAccession := make(map[string]string)
	for _, value := range values {
		q := fmt.Sprintf("Enter bioproject_accession for '%s' = '%s':", field, value)
		answer, err := c.resolver.Resolve(q, c.askNonEmpty(q, "Bioproject accession cannot be empty. Please enter a value."))
		if err != nil {
			return err
		}
		valueToAccession[value] = strings.TrimSpace(answer)
	}

	fieldValues := c.sample.Column(field)
	accessions := make([]string, len(fieldValues))
	for r, v := range fieldValues {
		accessions[r] = valueToAccession[v]
	}
	c.setMapped(ws, col, accessions)
	fmt.Fprintf(c.out, "Assigned bioproject_accession values based on '%s' grouping.\n", field)
	return nil
}

func (c *Converter) fillMandatory(ws *worksheet) error {
	var empty []string
	for _, col := range ws.columns {
		if strings.HasPrefix(col, "*") && ws.columnEmpty(col) {
			empty = append(empty, col)
		}
	}
	if len(empty) > 0 {
		fmt.Fprintln(c.out, "\nFields with an asterisk (*) are mandatory. Your submission will fail if any mandatory fields are not completed.")
		fmt.Fprintln(c.out, "The following mandatory columns are empty in your output:")
		for _, col := range empty {
			fmt.Fprintf(c.out, "  %s\n", col)
		}
		for _, col := range empty {
			q := fmt.Sprintf("Column '%s' is empty. Do you want to fill it with 'not collected', 'not applicable', or 'missing'? (Or enter any other value, or leave blank to skip):", col)
			answer, err := c.resolver.Resolve(q, c.prompter.Func(q))
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(answer); v != "" {
				ws.fillColumn(col, v)
			}
		}
	}

	// Whatever is still blank in a mandatory column defaults.
	for i, col := range ws.columns {
		if !strings.HasPrefix(col, "*") {
			continue
		}
		for r := range ws.rows {
			if ws.rows[r][i] == "" {
				ws.rows[r][i] = "not collected"
			}
		}
	}
	return nil
}

func (c *Converter) applyUnits(ws *worksheet) error {
	c.section("HANDLING NUMERICAL COLUMNS WITH UNITS")

	for _, outCol := range c.mapping.Columns {
		src := c.mapping.Source[outCol]
		if src == "" || src == latLonColumn || !c.sample.IsNumeric(src) {
			continue
		}

		if unitCol, unit, ok := c.sample.UnitColumn(src); ok {
			fmt.Fprintf(c.out, "  %s: unit column %s = %s\n", outCol, unitCol, unit)
			appendUnit(ws, outCol, unit)
			continue
		}

		q := fmt.Sprintf("Enter unit for %s (or press Enter to skip):", src)
		answer, err := c.resolver.Resolve(q, c.prompter.Func(q))
		if err != nil {
			return err
		}
		unit := strings.TrimSpace(answer)
		if unit == "" {
			fmt.Fprintf(c.out, "  Skipping unit addition for %s\n", src)
			continue
		}
		if !validator.ValidUnit(unit) {
			fmt.Fprintln(c.out, "  Invalid unit format. Use only letters, numbers, /, %, °, spaces, parentheses, superscripts and Greek letters (e.g. mg/L, °C, µm).")
			continue
		}
		appendUnit(ws, outCol, unit)
	}
	return nil
}

// appendUnit suffixes the unit onto every cell of the column that
// parses as a plain number.
func appendUnit(ws *worksheet, col, unit string) {
	i := ws.index(col)
	if i < 0 {
		return
	}
	for r := range ws.rows {
		v := ws.rows[r][i]
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			ws.rows[r][i] = v + " " + unit
		}
	}
}

func (c *Converter) resolveDuplicates(ws *worksheet) error {
	c.section("DUPLICATE ROW CHECKING")

	rep := checkDuplicates(ws)
	if rep == nil {
		fmt.Fprintln(c.out, "No duplicates found. Continuing with file generation.")
		return nil
	}
	c.printDuplicates(rep)

	unique := findUniqueFields(c.sample)
	if len(unique) > 0 {
		fmt.Fprintf(c.out, "\nFound %d fields with 100%% unique values:\n", len(unique))
		for i, col := range unique {
			fmt.Fprintf(c.out, "  %2d. %s\n", i+1, col)
		}

		q := fmt.Sprintf("Enter field number (1-%d) or field name to resolve duplicates:", len(unique))
		field, err := c.resolver.Resolve(q, c.pickField(q, unique))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Selected field: %s\n", field)

		rq := fmt.Sprintf("Do you want to rename the column from '%s'? [y/N]:", field)
		rename, err := c.resolver.Resolve(rq, c.prompter.YesNoFunc(rq, "n"))
		if err != nil {
			return err
		}
		newName := field
		if prompt.IsYes(rename) {
			n, err := c.prompter.Ask(fmt.Sprintf("Enter new column name (or press Enter to keep '%s'):", field))
			if err != nil {
				return err
			}
			if n = strings.TrimSpace(n); n != "" {
				newName = n
			}
		}
		c.addMapped(ws, field, newName)
		fmt.Fprintf(c.out, "Added column '%s' with values from '%s'\n", newName, field)
	} else {
		fmt.Fprintln(c.out, "\nNo fields with 100% unique values found. Showing all available columns:")
		for i, col := range c.sample.Columns {
			fmt.Fprintf(c.out, "  %2d. %s\n", i+1, col)
		}
		field, err := c.pickField(fmt.Sprintf("Enter column number (1-%d) or column name:", len(c.sample.Columns)), c.sample.Columns)()
		if err != nil {
			return err
		}
		newName := field
		rename, err := c.prompter.AskChoice(fmt.Sprintf("Do you want to rename the column from '%s'? [y/N]:", field), "y", "yes", "n", "no", "")
		if err != nil {
			return err
		}
		if prompt.IsYes(rename) {
			n, err := c.prompter.Ask(fmt.Sprintf("Enter new column name (or press Enter to keep '%s'):", field))
			if err != nil {
				return err
			}
			if n = strings.TrimSpace(n); n != "" {
				newName = n
			}
		}
		c.addMapped(ws, field, newName)
		fmt.Fprintf(c.out, "Added column '%s' with values from '%s'\n", newName, field)
	}

	fmt.Fprintln(c.out, "\nRe-checking for duplicates after adding new column...")
	rep = checkDuplicates(ws)
	if rep == nil {
		fmt.Fprintln(c.out, "No duplicates found after adding the new column!")
		return nil
	}
	c.printDuplicates(rep)

	q := "Do you want to add a column from FAIReMetadata to help resolve duplicates? [y/N]:"
	answer, err := c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "n"))
	if err != nil {
		return err
	}
	if !prompt.IsYes(answer) {
		q = "Do you want to continue writing the file despite duplicates? [y/N]:"
		cont, err := c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "n"))
		if err != nil {
			return err
		}
		if !prompt.IsYes(cont) {
			fmt.Fprintln(c.out, "Aborted by user. No file written.")
			return ErrAborted
		}
	}
	return nil
}

func (c *Converter) printDuplicates(rep *DuplicateReport) {
	fmt.Fprintf(c.out, "\nDuplicate rows detected (excluding columns: %s).\n", strings.Join(rep.Excluded, ", "))
	fmt.Fprintf(c.out, "Total duplicate rows: %d\n", rep.Total)
	for i, group := range rep.Groups {
		fmt.Fprintf(c.out, "  Group %d: [%s]\n", i+1, strings.Join(group, ", "))
	}
	fmt.Fprintln(c.out, "Please review and resolve these duplicates before submitting your file.")
}

func (c *Converter) generateTitles(ws *worksheet) error {
	c.section("SAMPLE TITLE GENERATION")

	q := "Do you want to add values in the sample_title column? [y/N]:"
	answer, err := c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "n"))
	if err != nil {
		return err
	}
	if !prompt.IsYes(answer) {
		fmt.Fprintln(c.out, "Sample title column left blank.")
		return nil
	}

	q = "Do you want to use the default parameters from the script: *geo_loc_name, *organism, *sample_name? [Y/n]:"
	answer, err = c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "y"))
	if err != nil {
		return err
	}

	columns := defaultTitleColumns
	if strings.EqualFold(answer, "n") || strings.EqualFold(answer, "no") {
		fmt.Fprintln(c.out, "\nAvailable columns in BioSampleMetadata:")
		for i, col := range ws.columns {
			fmt.Fprintf(c.out, "  %2d. %s\n", i+1, col)
		}
		fmt.Fprintln(c.out, "\nEnter column numbers separated by commas (e.g., 1,3,5) or column names separated by commas:")

		q = "Columns to concatenate:"
		input, err := c.resolver.Resolve(q, c.prompter.Func(q))
		if err != nil {
			return err
		}
		selected, err := validator.ParseColumnSelection(input, ws.columns)
		if err != nil {
			fmt.Fprintf(c.out, "No valid columns selected (%v). Using default columns.\n", err)
		} else {
			columns = selected
		}
	} else {
		fmt.Fprintln(c.out, "Using default columns for sample_title generation.")
	}

	fmt.Fprintf(c.out, "\nColumns selected for sample_title: %s\n", strings.Join(columns, ", "))

	titles := make([]string, len(ws.rows))
	for r := range ws.rows {
		var parts []string
		for _, col := range columns {
			if i := ws.index(col); i >= 0 && ws.rows[r][i] != "" {
				parts = append(parts, ws.rows[r][i])
			}
		}
		if len(parts) == 0 {
			titles[r] = "missing"
		} else {
			titles[r] = strings.Join(parts, " ")
		}
	}
	ws.setColumn("sample_title", titles)
	return nil
}

func (c *Converter) addAdditionalColumns(ws *worksheet) error {
	c.section("ADDITIONAL COLUMNS FROM SAMPLE METADATA")

	used := c.mapping.UsedSourceColumns()
	var unused []string
	for _, col := range c.sample.Columns {
		if !used[col] && c.sample.NonEmptyCount(col) > 0 {
			unused = append(unused, col)
		}
	}
	if len(unused) == 0 {
		fmt.Fprintln(c.out, "No additional columns found to add.")
		return nil
	}

	fmt.Fprintf(c.out, "Found %d additional columns from FAIReMetadata:\n", len(unused))
	for i, col := range unused {
		fmt.Fprintf(c.out, "  %2d. %s%s\n", i+1, col, exampleValues(c.sample, col))
	}

	q := "Do you want to add ALL of these columns to BioSampleMetadata? [Y/n]:"
	answer, err := c.resolver.Resolve(q, c.prompter.YesNoFunc(q, "y"))
	if err != nil {
		return err
	}

	selected := unused
	if strings.EqualFold(answer, "n") || strings.EqualFold(answer, "no") {
		fmt.Fprintln(c.out, "\nEnter column numbers separated by commas (e.g., 1,3,5) to EXCLUDE:")
		fmt.Fprintln(c.out, "Or enter 'none' to exclude none (add all):")

		q = "Columns to exclude:"
		input, err := c.resolver.Resolve(q, c.prompter.Func(q))
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(input), "none") {
			excluded := make(map[string]bool)
			for _, part := range strings.Split(input, ",") {
				token := strings.TrimSpace(part)
				if token == "" {
					continue
				}
				n, err := strconv.Atoi(token)
				if err != nil || n < 1 || n > len(unused) {
					fmt.Fprintf(c.out, "Warning: invalid column number %q\n", token)
					continue
				}
				excluded[unused[n-1]] = true
			}
			selected = nil
			for _, col := range unused {
				if !excluded[col] {
					selected = append(selected, col)
				}
			}
			if len(selected) == 0 {
				fmt.Fprintln(c.out, "All columns excluded. No additional columns added.")
				return nil
			}
		}
	}

	for _, col := range selected {
		c.addMapped(ws, col, col)
	}
	return nil
}

// exampleValues renders up to two sample values for a column listing.
func exampleValues(t *faire.Table, col string) string {
	var values []string
	for _, v := range t.Column(col) {
		if v != "" {
			values = append(values, v)
		}
		if len(values) == 3 {
			break
		}
	}
	if len(values) == 0 {
		return ""
	}
	s := strings.Join(values[:min(2, len(values))], ", ")
	if len(values) > 2 {
		s += fmt.Sprintf(" (+%d more)", len(values)-2)
	}
	return " (e.g., " + s + ")"
}

// pickField returns a prompt callback that resolves a numbered or
// named selection from a field list, re-asking on invalid input. The
// resolved field name, not the raw input, is what gets recorded.
func (c *Converter) pickField(question string, fields []string) replay.PromptFunc {
	return func() (string, error) {
		for {
			answer, err := c.prompter.Ask(question)
			if err != nil {
				return "", err
			}
			if n, err := strconv.Atoi(answer); err == nil {
				if n >= 1 && n <= len(fields) {
					return fields[n-1], nil
				}
				fmt.Fprintf(c.out, "Invalid field number. Please enter a number between 1 and %d\n", len(fields))
				continue
			}
			for _, f := range fields {
				if f == answer {
					return f, nil
				}
			}
			fmt.Fprintf(c.out, "Field %q not found. Please enter a valid field name or number.\n", answer)
		}
	}
}

// askNonEmpty returns a prompt callback that re-asks until the answer
// is non-blank.
func (c *Converter) askNonEmpty(question, complaint string) replay.PromptFunc {
	return func() (string, error) {
		for {
			answer, err := c.prompter.Ask(question)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(answer) != "" {
				return answer, nil
			}
			fmt.Fprintln(c.out, complaint)
		}
	}
}

// setMapped writes values into an existing column aligned by sample
// name, falling back to positional order when names cannot be matched.
func (c *Converter) setMapped(ws *worksheet, col string, values []string) {
	ws.setColumn(col, c.alignBySampleName(ws, values))
}

// addMapped copies a FAIRe column into the worksheet under newName,
// aligned by sample name.
func (c *Converter) addMapped(ws *worksheet, sourceCol, newName string) {
	ws.addColumn(newName, c.alignBySampleName(ws, c.sample.Column(sourceCol)))
}

// alignBySampleName reorders per-sample values from sample table order
// into worksheet row order, matching samp_name against *sample_name.
func (c *Converter) alignBySampleName(ws *worksheet, values []string) []string {
	nameIdx := ws.index("*sample_name")
	if nameIdx < 0 {
		nameIdx = ws.index("sample_name")
	}
	sampleNames := c.sample.Column("samp_name")
	if nameIdx < 0 || sampleNames == nil {
		// Positional fallback.
		return values
	}

	byName := make(map[string]string)
	for r, name := range sampleNames {
		if name != "" && r < len(values) {
			byName[name] = values[r]
		}
	}
	out := make([]string, len(ws.rows))
	for r := range ws.rows {
		out[r] = byName[ws.rows[r][nameIdx]]
	}
	return out
}

func (c *Converter) section(title string) {
	bar := strings.Repeat("=", 50)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", bar, title, bar)
}
