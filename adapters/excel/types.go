package excel

// Table is a sheet read as text: a header row and the data rows beneath it
type Table struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, cells trimmed
}

// ColumnIndex returns the position of a header, matched case-insensitively
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if equalFold(h, name) {
			return i, true
		}
	}
	return -1, false
}
