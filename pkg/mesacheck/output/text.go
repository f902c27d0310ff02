package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	markConfirmed   = "✅"
	markUnconfirmed = "⬜"
)

// Mark returns the checkbox shown before a name.
func Mark(confirmed bool) string {
	if confirmed {
		return markConfirmed
	}
	return markUnconfirmed
}

// WriteText prints the view grouped by table:
//
//	Mesa 1 (2)
//	  ✅ Maria de Souza  R2C2
//	  ⬜ João            R3C2
//
//	Confirmados: 1/2
func WriteText(w io.Writer, view RosterView) error {
	var sb strings.Builder

	for i, g := range view.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%d)\n", g.Column.Key, len(g.Items))
		if len(g.Items) == 0 {
			sb.WriteString("  —\n")
			continue
		}

		width := 0
		for _, it := range g.Items {
			width = max(width, len([]rune(it.Text)))
		}
		for _, it := range g.Items {
			pad := strings.Repeat(" ", width-len([]rune(it.Text)))
			fmt.Fprintf(&sb, "  %s %s%s  %s\n", Mark(it.Confirmed), it.Text, pad, it.Coord)
		}
	}

	fmt.Fprintf(&sb, "\nConfirmados: %d/%d\n", view.Confirmed, view.Total)

	_, err := io.WriteString(w, sb.String())
	return err
}
