package faire

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/oceanomics/faire2ncbi/internal/errors"
)

// SRATemplateColumns reads the column layout of an NCBI SRA submission
// template workbook. The data sheet is the first one whose name
// mentions SRA, falling back to the second sheet. Template revisions
// move the header around, so rows three, two and one are probed in
// that order.
func SRATemplateColumns(path string) ([]string, error) {
	const op errors.Op = "faire.SRATemplateColumns"

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "cannot open SRA template "+path)
	}
	defer f.Close()

	sheet, err := findSRASheet(f.GetSheetList())
	if err != nil {
		return nil, errors.E(op, err)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.E(op, errors.KindParse, err, "cannot read sheet "+sheet)
	}

	for _, headerRow := range []int{3, 2, 1} {
		t, err := tableFromRows(rows, headerRow)
		if err != nil {
			continue
		}
		return t.Columns, nil
	}
	return nil, errors.E(op, errors.KindParse, "no header row found in sheet "+sheet)
}

func findSRASheet(sheets []string) (string, error) {
	const op errors.Op = "faire.findSRASheet"
	for _, s := range sheets {
		if strings.Contains(strings.ToLower(s), "sra") {
			return s, nil
		}
	}
	if len(sheets) >= 2 {
		return sheets[1], nil
	}
	return "", errors.E(op, errors.KindParse, "no SRA data sheet in template")
}
