package models

// TableColumn represents a header cell that names a table.
type TableColumn struct {
	// Col is the column index (1-based).
	Col int `json:"col"`
	// Label is the trimmed header text, e.g. "Mesa 1".
	Label string `json:"label"`
	// Key is unique within a roster. It equals Label unless the label
	// appears more than once in the header row.
	Key string `json:"key"`
}

// Item represents one non-blank name cell below the header.
type Item struct {
	// Coord is the source cell.
	Coord Coord `json:"coord"`
	// Raw is the trimmed cell text as the sheet shows it. Numbers, dates
	// and booleans carry their number format.
	Raw string `json:"raw"`
	// Text is the display form of Raw after name casing.
	Text string `json:"text"`
}

// TableGroup holds the items of one table column in row order.
type TableGroup struct {
	Column TableColumn `json:"column"`
	Items  []Item      `json:"items"`
}

// Roster is the parsed content of a seating sheet.
type Roster struct {
	// Sheet is the name of the sheet that was read.
	Sheet string `json:"sheet"`
	// HeaderRow is the row index (1-based) holding the table labels.
	HeaderRow int `json:"header_row"`
	// Groups contains one entry per table column, left to right.
	Groups []TableGroup `json:"groups"`
}

// Len returns the total number of items.
func (r *Roster) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Items)
	}
	return n
}

// Item returns the item at c, if any.
func (r *Roster) Item(c Coord) (Item, bool) {
	for _, g := range r.Groups {
		for _, it := range g.Items {
			if it.Coord == c {
				return it, true
			}
		}
	}
	return Item{}, false
}
