// Package output renders rosters and session state for people and programs.
package output

import "github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"

// ItemView is an item with its confirmation state.
type ItemView struct {
	models.Item
	Confirmed bool `json:"confirmed"`
}

// GroupView is a table with the confirmation state of its items.
type GroupView struct {
	Column models.TableColumn `json:"column"`
	Items  []ItemView         `json:"items"`
}

// RosterView is the roster as shown to a user.
type RosterView struct {
	UploadID  string      `json:"upload_id,omitempty"`
	FileName  string      `json:"file_name,omitempty"`
	Sheet     string      `json:"sheet"`
	HeaderRow int         `json:"header_row"`
	Groups    []GroupView `json:"groups"`
	Total     int         `json:"total"`
	Confirmed int         `json:"confirmed"`
}

// NewRosterView combines roster with the confirmation state reported by
// isConfirmed. A nil isConfirmed marks nothing as confirmed.
func NewRosterView(roster *models.Roster, isConfirmed func(models.Coord) bool) RosterView {
	view := RosterView{
		Sheet:     roster.Sheet,
		HeaderRow: roster.HeaderRow,
		Groups:    make([]GroupView, 0, len(roster.Groups)),
	}

	for _, g := range roster.Groups {
		gv := GroupView{Column: g.Column, Items: make([]ItemView, 0, len(g.Items))}
		for _, it := range g.Items {
			confirmed := isConfirmed != nil && isConfirmed(it.Coord)
			if confirmed {
				view.Confirmed++
			}
			gv.Items = append(gv.Items, ItemView{Item: it, Confirmed: confirmed})
		}
		view.Total += len(g.Items)
		view.Groups = append(view.Groups, gv)
	}

	return view
}
