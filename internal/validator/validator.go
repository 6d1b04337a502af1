// Package validator checks interactive answers before they reach the
// output tables: measurement unit syntax and column selections given
// as numbers or names.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/errors"
)

// unitPattern accepts the unit syntax NCBI tolerates in numeric
// cells: alphanumerics, slashes, percent, degree and the common
// scientific superscripts and Greek letters.
var unitPattern = regexp.MustCompile(`^[a-zA-Z0-9/%°\s()²³⁻¹⁻²⁻³µαβγδεθλπσφω]+$`)

// ValidUnit reports whether a unit string is acceptable. The empty
// string is valid and means "no unit".
func ValidUnit(unit string) bool {
	if strings.TrimSpace(unit) == "" {
		return true
	}
	return unitPattern.MatchString(unit)
}

// ParseColumnSelection resolves a comma-separated selection, given as
// 1-based numbers or literal column names, against the available
// columns. Order follows the selection, duplicates collapse.
func ParseColumnSelection(input string, columns []string) ([]string, error) {
	const op errors.Op = "validator.ParseColumnSelection"
	var selected []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			selected = append(selected, name)
		}
	}
	for _, part := range strings.Split(input, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		if n, err := strconv.Atoi(token); err == nil {
			if n < 1 || n > len(columns) {
				return nil, errors.E(op, errors.KindValidation,
					fmt.Sprintf("column number %d out of range 1-%d", n, len(columns)))
			}
			add(columns[n-1])
			continue
		}
		found := false
		for _, col := range columns {
			if col == token {
				add(col)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.E(op, errors.KindValidation,
				fmt.Sprintf("unknown column %q", token))
		}
	}
	if len(selected) == 0 {
		return nil, errors.E(op, errors.KindValidation, "empty selection")
	}
	return selected, nil
}

// ParseIndexSelection resolves a comma-separated list of 1-based
// indices against a list length, for numbered menus such as assay
// selection.
func ParseIndexSelection(input string, n int) ([]int, error) {
	const op errors.Op = "validator.ParseIndexSelection"
	var out []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.E(op, errors.KindValidation,
				fmt.Sprintf("not a number: %q", token))
		}
		if idx < 1 || idx > n {
			return nil, errors.E(op, errors.KindValidation,
				fmt.Sprintf("selection %d out of range 1-%d", idx, n))
		}
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx-1)
		}
	}
	if len(out) == 0 {
		return nil, errors.E(op, errors.KindValidation, "empty selection")
	}
	return out, nil
}
