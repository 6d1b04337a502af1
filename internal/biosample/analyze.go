package biosample

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/faire"
)

// GroupingField is a sample metadata column usable for batching
// samples, e.g. one bioproject accession per expedition.
type GroupingField struct {
	Column      string
	UniqueCount int
}

// findGroupingFields returns the columns suitable for grouping:
// between 2 and 20 distinct values with at least half the rows
// populated. Simpler groupings (fewer distinct values) sort first.
func findGroupingFields(t *faire.Table) []GroupingField {
	total := t.Len()
	var fields []GroupingField
	for _, col := range t.Columns {
		filled := t.NonEmptyCount(col)
		if total == 0 || float64(filled)/float64(total) < 0.5 {
			continue
		}
		n := len(t.UniqueValues(col))
		if n >= 2 && n <= 20 {
			fields = append(fields, GroupingField{Column: col, UniqueCount: n})
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].UniqueCount < fields[j].UniqueCount
	})
	return fields
}

// findUniqueFields returns the columns whose non-empty values are all
// distinct. Such a column can disambiguate otherwise identical rows.
func findUniqueFields(t *faire.Table) []string {
	var fields []string
	for _, col := range t.Columns {
		values := t.Column(col)
		seen := make(map[string]bool)
		unique := true
		n := 0
		for _, v := range values {
			if v == "" {
				continue
			}
			n++
			if seen[v] {
				unique = false
				break
			}
			seen[v] = true
		}
		if unique && n > 0 {
			fields = append(fields, col)
		}
	}
	return fields
}

// duplicateExcluded lists the columns ignored when comparing rows:
// identifiers and free text that are unique by construction.
var duplicateExcluded = []string{"*sample_name", "sample_title", "description"}

// DuplicateReport describes groups of identical output rows.
type DuplicateReport struct {
	// Groups holds the sample names of each duplicate set, sorted.
	Groups   [][]string
	Total    int
	Excluded []string
}

// checkDuplicates finds sets of rows that are identical outside the
// excluded columns. Returns nil when every row is distinct.
func checkDuplicates(ws *worksheet) *DuplicateReport {
	var excluded []string
	skip := make(map[int]bool)
	for _, name := range duplicateExcluded {
		if i := ws.index(name); i >= 0 {
			skip[i] = true
			excluded = append(excluded, name)
		}
	}

	nameIdx := ws.index("*sample_name")
	if nameIdx < 0 {
		nameIdx = ws.index("sample_name")
	}

	byContent := make(map[string][]int)
	var order []string
	for r, row := range ws.rows {
		var parts []string
		for i, v := range row {
			if !skip[i] {
				parts = append(parts, v)
			}
		}
		key := strings.Join(parts, "\x1f")
		if _, ok := byContent[key]; !ok {
			order = append(order, key)
		}
		byContent[key] = append(byContent[key], r)
	}

	rep := &DuplicateReport{Excluded: excluded}
	for _, key := range order {
		rows := byContent[key]
		if len(rows) < 2 {
			continue
		}
		var names []string
		for _, r := range rows {
			if nameIdx >= 0 && ws.rows[r][nameIdx] != "" {
				names = append(names, ws.rows[r][nameIdx])
			} else {
				names = append(names, "Row_"+strconv.Itoa(r+1))
			}
		}
		sort.Strings(names)
		rep.Groups = append(rep.Groups, names)
		rep.Total += len(rows)
	}
	if len(rep.Groups) == 0 {
		return nil
	}
	return rep
}
