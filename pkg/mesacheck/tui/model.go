// Package tui is the terminal interface for confirming names in a
// seating sheet.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"go.uber.org/zap"
)

// Options configures a Model.
type Options struct {
	// Input is the workbook path, used for reloads.
	Input string
	// Output is where the rendered workbook is saved.
	Output string
	// Confirmations, when set, also receives the confirmed cells as YAML
	// on every save.
	Confirmations string
	// Changes, when set, triggers a reload of Input on every value.
	Changes <-chan struct{}
	// Logger may be nil.
	Logger *zap.Logger
}

type rowKind int

const (
	groupRow rowKind = iota
	itemRow
	emptyRow
)

// row is one visible line of the list.
type row struct {
	kind  rowKind
	group int
	item  int
}

// fileChangedMsg is sent when the input file changed on disk.
type fileChangedMsg struct{}

// reloadedMsg is sent after the input file was parsed again.
type reloadedMsg struct {
	err error
}

// savedMsg is sent after the rendered workbook was written.
type savedMsg struct {
	path  string
	count int
	err   error
}

// chromeHeight is the number of lines the view uses outside the list:
// title, subtitle, two blank lines, footer, status and help.
const chromeHeight = 7

// Model is the bubbletea model of the confirmation list. Tables start
// collapsed.
type Model struct {
	session *mesacheck.Session
	roster  *models.Roster
	opts    Options
	logger  *zap.Logger

	keys   KeyMap
	help   help.Model
	styles Styles

	expanded map[string]bool
	rows     []row
	cursor   int
	height   int

	status string
	err    error
}

// New returns a model over a loaded session.
func New(session *mesacheck.Session, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Output == "" {
		opts.Output = mesacheck.OutputFileName
	}
	m := Model{
		session:  session,
		roster:   session.Roster(),
		opts:     opts,
		logger:   logger,
		keys:     DefaultKeyMap,
		help:     help.New(),
		styles:   DefaultStyles(),
		expanded: make(map[string]bool),
	}
	m.rebuild()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.opts.Changes)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileChangedMsg:
		m.status = "Planilha alterada, recarregando..."
		return m, tea.Batch(reloadCmd(m.session, m.opts.Input), waitForChange(m.opts.Changes))

	case reloadedMsg:
		m.roster = m.session.Roster()
		m.rebuild()
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			m.logger.Warn("reload failed", zap.Error(msg.err))
			return m, nil
		}
		m.err = nil
		m.status = "Planilha recarregada; confirmações zeradas."
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			m.logger.Error("save failed", zap.String("path", msg.path), zap.Error(msg.err))
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Salvo em %s (%d confirmados).", msg.path, msg.count)
		m.logger.Info("workbook saved", zap.String("path", msg.path), zap.Int("confirmed", msg.count))
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Right):
		if r, ok := m.current(); ok && r.kind == groupRow {
			m.setExpanded(r.group, true)
		}

	case key.Matches(msg, m.keys.Left):
		if r, ok := m.current(); ok {
			m.setExpanded(r.group, false)
		}

	case key.Matches(msg, m.keys.Toggle):
		r, ok := m.current()
		if !ok {
			break
		}
		switch r.kind {
		case groupRow:
			k := m.roster.Groups[r.group].Column.Key
			m.setExpanded(r.group, !m.expanded[k])
		case itemRow:
			item := m.roster.Groups[r.group].Items[r.item]
			if _, err := m.session.Toggle(item.Coord); err != nil {
				m.err = err
			} else {
				m.err = nil
			}
		}

	case key.Matches(msg, m.keys.Save):
		if m.roster == nil {
			break
		}
		m.status = "Salvando..."
		return m, saveCmd(m.session, m.opts.Output, m.opts.Confirmations)
	}
	return m, nil
}

// current returns the row under the cursor.
func (m Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// setExpanded opens or closes a table and parks the cursor on its header.
func (m *Model) setExpanded(group int, open bool) {
	m.expanded[m.roster.Groups[group].Column.Key] = open
	m.rebuild()
	for i, r := range m.rows {
		if r.kind == groupRow && r.group == group {
			m.cursor = i
			return
		}
	}
}

// rebuild recomputes the visible rows from the roster and expansion state.
func (m *Model) rebuild() {
	m.rows = nil
	if m.roster != nil {
		for g, group := range m.roster.Groups {
			m.rows = append(m.rows, row{kind: groupRow, group: g})
			if !m.expanded[group.Column.Key] {
				continue
			}
			if len(group.Items) == 0 {
				m.rows = append(m.rows, row{kind: emptyRow, group: g})
				continue
			}
			for i := range group.Items {
				m.rows = append(m.rows, row{kind: itemRow, group: g, item: i})
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("mesacheck · " + filepath.Base(m.opts.Input)))
	b.WriteByte('\n')
	if m.roster != nil {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Aba %q, cabeçalho na linha %d", m.roster.Sheet, m.roster.HeaderRow)))
	}
	b.WriteString("\n\n")

	if m.roster == nil {
		b.WriteString(m.styles.Empty.Render("Nenhuma planilha carregada."))
		b.WriteByte('\n')
	} else {
		start, end := m.window()
		for i := start; i < end; i++ {
			line := m.renderRow(m.rows[i])
			if i == m.cursor {
				line = m.styles.Cursor.Render(line)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(m.styles.Footer.Render(fmt.Sprintf("Confirmados: %d", m.session.Count())))
	b.WriteByte('\n')
	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Erro: " + m.err.Error()))
	case m.status != "":
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// window returns the slice of rows that fits the terminal and contains
// the cursor.
func (m Model) window() (int, int) {
	visible := m.height - chromeHeight
	if m.height == 0 || visible >= len(m.rows) {
		return 0, len(m.rows)
	}
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	return start, start + visible
}

func (m Model) renderRow(r row) string {
	group := m.roster.Groups[r.group]
	switch r.kind {
	case groupRow:
		marker := "▸"
		if m.expanded[group.Column.Key] {
			marker = "▾"
		}
		done := 0
		for _, it := range group.Items {
			if m.session.IsConfirmed(it.Coord) {
				done++
			}
		}
		return m.styles.Group.Render(fmt.Sprintf("%s %s (%d/%d)", marker, group.Column.Key, done, len(group.Items)))
	case emptyRow:
		return "    " + m.styles.Empty.Render("—")
	default:
		item := group.Items[r.item]
		if m.session.IsConfirmed(item.Coord) {
			return "    " + m.styles.Confirmed.Render("[x] "+item.Text)
		}
		return "    " + m.styles.Item.Render("[ ] "+item.Text)
	}
}

// waitForChange returns a command that blocks until the watcher reports a
// change. A nil channel yields no command.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// reloadCmd reads and parses the input file again. Loading always clears
// the confirmations.
func reloadCmd(session *mesacheck.Session, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := mesacheck.ReadFile(path)
		if err != nil {
			session.Reset()
			return reloadedMsg{err: err}
		}
		_, err = session.Load(filepath.Base(path), data)
		return reloadedMsg{err: err}
	}
}

// saveCmd renders the session and writes the result to path, plus the
// confirmed cells to confirmationsPath when it is set.
func saveCmd(session *mesacheck.Session, path, confirmationsPath string) tea.Cmd {
	return func() tea.Msg {
		coords := session.Confirmed()
		out, err := session.Render()
		if err != nil {
			return savedMsg{path: path, err: err}
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return savedMsg{path: path, err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		if confirmationsPath != "" {
			if err := writeConfirmations(confirmationsPath, coords); err != nil {
				return savedMsg{path: path, err: err}
			}
		}
		return savedMsg{path: path, count: len(coords)}
	}
}

func writeConfirmations(path string, coords []models.Coord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := mesacheck.EncodeConfirmations(f, coords); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
