// Package replay implements the interactive configuration-replay engine:
// classification of free-text prompts into canonical question templates,
// the structured answer store, the chronological answer log, and the
// get-or-ask resolver that ties them together.
package replay

import "strings"

// Mode selects which conversion workflow owns the question set.
type Mode int

const (
	ModeBioSample Mode = iota
	ModeSRA
)

// String returns the workflow name used in file headers.
func (m Mode) String() string {
	switch m {
	case ModeBioSample:
		return "FAIRe2BioSample"
	case ModeSRA:
		return "FAIRe2SRA"
	default:
		return "unknown"
	}
}

// Category groups canonical templates into the named sections of the
// persisted configuration file.
type Category string

// BioSample workflow categories.
const (
	CatConfigFile        Category = "CONFIGURATION_FILE_HANDLING"
	CatOutputOverwrite   Category = "OUTPUT_FILE_OVERWRITE"
	CatBioproject        Category = "BIOPROJECT_ACCESSION_HANDLING"
	CatMandatoryFields   Category = "MANDATORY_FIELDS_HANDLING"
	CatNumericalUnits    Category = "NUMERICAL_COLUMNS_WITH_UNITS"
	CatDuplicateRows     Category = "DUPLICATE_ROW_CHECKING"
	CatSampleTitle       Category = "SAMPLE_TITLE_GENERATION"
	CatAdditionalColumns Category = "ADDITIONAL_COLUMNS_FROM_SAMPLE_METADATA"
)

// SRA workflow categories.
const (
	CatAssaySelection  Category = "ASSAY_SELECTION"
	CatLibraryFields   Category = "LIBRARY_FIELD_CONFIGURATION"
	CatPlatformValues  Category = "PLATFORM_VALUES_CONFIGURATION"
	CatInstrumentModel Category = "INSTRUMENT_MODEL_VALUES_CONFIGURATION"
)

// Template is the canonical, fixed-text shape of a question. Grouped
// templates collect one answer per verbatim question (per column, per
// assay, per group value); the rest hold a single scalar answer.
type Template struct {
	Category Category
	Text     string
	Grouped  bool
}

// Canonical template texts shared by both workflows.
const (
	TmplConfigOverwrite = "Configuration file PATH already exists. Do you want to overwrite it? [y/N]:"
	TmplFileOverwrite   = "File PATH already exists. Overwrite? [y/N]:"
)

// BioSample canonical template texts.
const (
	TmplBioprojectManual   = "No bioproject_accession provided. Do you want to enter values manually? [y/N]:"
	TmplBioprojectSame     = "Do you want to enter the same value for all samples? [y/N]:"
	TmplBioprojectValue    = "Enter the value to use for all samples:"
	TmplBioprojectGroupBy  = "Enter field number (1-X) or field name to group samples:"
	TmplBioprojectPerGroup = "Enter bioproject_accession for FIELD = VALUE:"

	TmplMandatoryFill = "Column FIELD_NAME is empty. Do you want to fill it with not collected, not applicable, or missing? (Or enter any other value, or leave blank to skip):"

	TmplUnitForColumn = "Enter unit for COLUMN_NAME (or press Enter to skip):"

	TmplTitleWanted     = "Do you want to add values in the sample_title column? [y/N]:"
	TmplTitleDefaults   = "Do you want to use the default parameters from the script: *geo_loc_name, *organism, *sample_name? [Y/n]:"
	TmplTitleColumns    = "Enter column numbers separated by commas (e.g., 1,3,5) or column names separated by commas:"
	TmplTitleConcat     = "Columns to concatenate:"

	TmplAddAllColumns   = "Do you want to add ALL of these columns to BioSampleMetadata? [Y/n]:"
	TmplExcludeColumns  = "Enter column numbers separated by commas (e.g., 1,3,5) to EXCLUDE:"
	TmplExcludeNone     = "Or enter none to exclude none (add all):"
	TmplColumnsExcluded = "Columns to exclude:"

	TmplDupAddColumn  = "Do you want to add a column from FAIReMetadata to help resolve duplicates? [y/N]:"
	TmplDupResolveBy  = "Enter field number (1-X) or field name to resolve duplicates:"
	TmplDupRename     = "Do you want to rename the column from FIELD_NAME? [y/N]:"
	TmplDupNewName    = "Enter new column name (or press Enter to keep FIELD_NAME):"
	TmplDupColumnPick = "Enter column number (1-X) or column name:"
	TmplDupContinue   = "Do you want to continue writing the file despite duplicates? [y/N]:"
)

// SRA canonical template texts.
const (
	TmplAssayScope    = "Do you want to use all assays or only specific ones? [all/specific]:"
	TmplAssaySelected = "Selected assays:"

	TmplLibraryDefault = "Use default value or choose from allowed values? [default/Other]:"
	TmplLibraryValue   = "Enter FIELD_NAME value (number or term):"

	TmplAssayOrProject  = "Which one do you want to use? [Assay/Project]:"
	TmplPlatformValue   = "Enter platform value (number or name):"
	TmplInstrumentAdd   = "No instrument model value found for assay. Do you want to add a value manually? [y/N]:"
	TmplInstrumentValue = "Enter instrument model number or type Other value:"
	TmplInstrumentFree  = "Enter instrument model:"
)

// rule matches a verbatim question by required and forbidden substrings.
// Rules are evaluated in order and the first match wins; several
// predicates are supersets of later ones, so the order is load-bearing.
type rule struct {
	all  []string
	none []string
	tmpl Template
}

var biosampleRules = []rule{
	{all: []string{"Configuration file", "overwrite"},
		tmpl: Template{CatConfigFile, TmplConfigOverwrite, false}},
	{all: []string{"File", "already exists", "Overwrite"},
		tmpl: Template{CatOutputOverwrite, TmplFileOverwrite, false}},
	{all: []string{"bioproject_accession provided", "manually"},
		tmpl: Template{CatBioproject, TmplBioprojectManual, false}},
	{all: []string{"same value for all samples"},
		tmpl: Template{CatBioproject, TmplBioprojectSame, false}},
	{all: []string{"value to use for all samples"},
		tmpl: Template{CatBioproject, TmplBioprojectValue, false}},
	{all: []string{"field number", "group samples"},
		tmpl: Template{CatBioproject, TmplBioprojectGroupBy, false}},
	{all: []string{"Enter bioproject_accession for"},
		tmpl: Template{CatBioproject, TmplBioprojectPerGroup, true}},
	{all: []string{"Column", "empty", "fill it with"},
		tmpl: Template{CatMandatoryFields, TmplMandatoryFill, true}},
	{all: []string{"Enter unit for", "skip"},
		tmpl: Template{CatNumericalUnits, TmplUnitForColumn, true}},
	{all: []string{"add values in the sample_title column"},
		tmpl: Template{CatSampleTitle, TmplTitleWanted, false}},
	{all: []string{"use the default parameters", "*sample_name"},
		tmpl: Template{CatSampleTitle, TmplTitleDefaults, false}},
	// Guarded by both negatives: the EXCLUDE variant belongs to the
	// additional-columns template below, not to title generation.
	{all: []string{"Enter column numbers separated by commas"}, none: []string{"concatenate", "EXCLUDE"},
		tmpl: Template{CatSampleTitle, TmplTitleColumns, false}},
	{all: []string{"Columns to concatenate"},
		tmpl: Template{CatSampleTitle, TmplTitleConcat, false}},
	{all: []string{"add ALL of these columns"},
		tmpl: Template{CatAdditionalColumns, TmplAddAllColumns, false}},
	{all: []string{"Enter column numbers separated by commas", "EXCLUDE"},
		tmpl: Template{CatAdditionalColumns, TmplExcludeColumns, false}},
	{all: []string{"none to exclude none"},
		tmpl: Template{CatAdditionalColumns, TmplExcludeNone, false}},
	{all: []string{"Columns to exclude"},
		tmpl: Template{CatAdditionalColumns, TmplColumnsExcluded, false}},
	{all: []string{"add a column from FAIReMetadata to help resolve duplicates"},
		tmpl: Template{CatDuplicateRows, TmplDupAddColumn, false}},
	{all: []string{"field number", "resolve duplicates"},
		tmpl: Template{CatDuplicateRows, TmplDupResolveBy, false}},
	{all: []string{"rename the column from"},
		tmpl: Template{CatDuplicateRows, TmplDupRename, false}},
	{all: []string{"Enter new column name"},
		tmpl: Template{CatDuplicateRows, TmplDupNewName, false}},
	{all: []string{"Enter column number", "column name"},
		tmpl: Template{CatDuplicateRows, TmplDupColumnPick, false}},
	{all: []string{"continue writing the file despite duplicates"},
		tmpl: Template{CatDuplicateRows, TmplDupContinue, false}},
}

var sraRules = []rule{
	{all: []string{"Configuration file", "overwrite"},
		tmpl: Template{CatConfigFile, TmplConfigOverwrite, false}},
	{all: []string{"File", "already exists", "Overwrite"},
		tmpl: Template{CatOutputOverwrite, TmplFileOverwrite, false}},
	{all: []string{"use all assays or only specific ones"},
		tmpl: Template{CatAssaySelection, TmplAssayScope, false}},
	{all: []string{"Selected assays:"},
		tmpl: Template{CatAssaySelection, TmplAssaySelected, false}},
	{all: []string{"Use default value or choose from allowed values"},
		tmpl: Template{CatLibraryFields, TmplLibraryDefault, true}},
	{all: []string{"Enter", "value (number or term)"},
		tmpl: Template{CatLibraryFields, TmplLibraryValue, true}},
	{all: []string{"Which one do you want to use", "Assay/Project", "platform values"},
		tmpl: Template{CatPlatformValues, TmplAssayOrProject, true}},
	{all: []string{"Which one do you want to use", "Assay/Project", "instrument model values"},
		tmpl: Template{CatInstrumentModel, TmplAssayOrProject, true}},
	{all: []string{"Enter platform value"},
		tmpl: Template{CatPlatformValues, TmplPlatformValue, true}},
	{all: []string{"No instrument model value found"},
		tmpl: Template{CatInstrumentModel, TmplInstrumentAdd, true}},
	{all: []string{"Enter instrument model", "number"},
		tmpl: Template{CatInstrumentModel, TmplInstrumentValue, true}},
	{all: []string{"Enter instrument model:"},
		tmpl: Template{CatInstrumentModel, TmplInstrumentFree, true}},
}

// Normalize trims the leading and trailing whitespace that the prompt
// and persistence layers introduce around question text. All
// classification, lookup, and log identity goes through this.
func Normalize(question string) string {
	return strings.TrimSpace(question)
}

// Classify maps a verbatim question to its canonical template. The
// second return is false when no rule matches; such questions are
// logged chronologically but cannot be replayed.
func Classify(mode Mode, question string) (Template, bool) {
	q := Normalize(question)
	rules := biosampleRules
	if mode == ModeSRA {
		rules = sraRules
	}
	for _, r := range rules {
		if r.matches(q) {
			return r.tmpl, true
		}
	}
	return Template{}, false
}

func (r rule) matches(q string) bool {
	for _, s := range r.all {
		if !strings.Contains(q, s) {
			return false
		}
	}
	for _, s := range r.none {
		if strings.Contains(q, s) {
			return false
		}
	}
	return true
}
