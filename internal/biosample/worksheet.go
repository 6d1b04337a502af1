package biosample

// worksheet is the mutable output table the conversion steps work on.
// Rows always carry one cell per column.
type worksheet struct {
	columns []string
	rows    [][]string
}

func newWorksheet(columns []string, rowCount int) *worksheet {
	ws := &worksheet{columns: append([]string(nil), columns...)}
	for i := 0; i < rowCount; i++ {
		ws.rows = append(ws.rows, make([]string, len(columns)))
	}
	return ws
}

func (ws *worksheet) index(name string) int {
	for i, c := range ws.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// setColumn overwrites a whole column with per-row values.
func (ws *worksheet) setColumn(name string, values []string) {
	i := ws.index(name)
	if i < 0 {
		return
	}
	for r := range ws.rows {
		if r < len(values) {
			ws.rows[r][i] = values[r]
		}
	}
}

// fillColumn writes the same value into every row of a column.
func (ws *worksheet) fillColumn(name, value string) {
	i := ws.index(name)
	if i < 0 {
		return
	}
	for r := range ws.rows {
		ws.rows[r][i] = value
	}
}

// addColumn appends a new column. An existing column of the same name
// is overwritten instead.
func (ws *worksheet) addColumn(name string, values []string) {
	if ws.index(name) >= 0 {
		ws.setColumn(name, values)
		return
	}
	ws.columns = append(ws.columns, name)
	for r := range ws.rows {
		v := ""
		if r < len(values) {
			v = values[r]
		}
		ws.rows[r] = append(ws.rows[r], v)
	}
}

// column returns the values of a column, nil when absent.
func (ws *worksheet) column(name string) []string {
	i := ws.index(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(ws.rows))
	for r, row := range ws.rows {
		out[r] = row[i]
	}
	return out
}

// columnEmpty reports whether every cell of a column is blank.
func (ws *worksheet) columnEmpty(name string) bool {
	for _, v := range ws.column(name) {
		if v != "" {
			return false
		}
	}
	return true
}
