package parser

// findDataBounds returns the last row and last column (both 1-based)
// holding a non-blank value. Both are 0 for an empty sheet.
func findDataBounds(rows [][]string) (lastRow, maxCol int) {
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if isBlank(cell) {
				continue
			}
			if rowIdx+1 > lastRow {
				lastRow = rowIdx + 1
			}
			if colIdx+1 > maxCol {
				maxCol = colIdx + 1
			}
		}
	}
	return
}
