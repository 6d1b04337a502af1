// Package biosample converts FAIRe sample metadata into the NCBI
// BioSample MIMARKS survey water submission format. The conversion is
// interactive; every decision point goes through the replay resolver
// so a recorded run can be repeated without retyping answers.
package biosample

import (
	"os"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/errors"
)

// templateHeaderLine is the 1-based line carrying the column names in
// an NCBI BioSample TSV template. Everything above it is commentary
// that must be reproduced verbatim in the output.
const templateHeaderLine = 12

// Template is a parsed MIMARKS submission template.
type Template struct {
	// Comments are the lines preceding the header, without trailing
	// newlines.
	Comments []string
	Columns  []string
}

// ReadTemplate parses a BioSample TSV template file.
func ReadTemplate(path string) (*Template, error) {
	const op errors.Op = "biosample.ReadTemplate"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "cannot read BioSample template "+path)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < templateHeaderLine {
		return nil, errors.E(op, errors.KindParse,
			"BioSample template must have at least 12 lines")
	}

	t := &Template{
		Comments: lines[:templateHeaderLine-1],
		Columns:  strings.Split(strings.TrimRight(lines[templateHeaderLine-1], "\r\n"), "\t"),
	}
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
	return t, nil
}

// IsBioprojectColumn reports whether a column name refers to the
// bioproject accession, tolerating asterisks and underscores.
func IsBioprojectColumn(name string) bool {
	cleaned := strings.ToLower(strings.NewReplacer("_", "", "*", "").Replace(name))
	return cleaned == "bioprojectaccession"
}
