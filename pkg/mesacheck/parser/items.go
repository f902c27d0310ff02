package parser

import (
	"strings"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
)

// ExtractItems lists, per table column, every non-blank cell below
// headerRow in row order. Cells of any type are included. Non-text cells
// are listed by their formatted value, and the display text goes through
// FormatName.
func ExtractItems(s *Sheet, headerRow int, cols []models.TableColumn) []models.TableGroup {
	groups := make([]models.TableGroup, 0, len(cols))

	for _, col := range cols {
		group := models.TableGroup{Column: col, Items: []models.Item{}}
		for r := headerRow + 1; r <= s.LastRow(); r++ {
			raw := strings.TrimSpace(s.Value(r, col.Col))
			if raw == "" {
				continue
			}
			if !s.IsText(r, col.Col) {
				if shown := strings.TrimSpace(s.Display(r, col.Col)); shown != "" {
					raw = shown
				}
			}
			group.Items = append(group.Items, models.Item{
				Coord: models.Coord{Row: r, Col: col.Col},
				Raw:   raw,
				Text:  FormatName(raw),
			})
		}
		groups = append(groups, group)
	}

	return groups
}
