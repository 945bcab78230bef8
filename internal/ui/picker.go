package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adocdev/caldoc/internal/parser"
)

// docItem wraps a Document with display metadata and selection state
type docItem struct {
	doc      *parser.Document
	date     string
	selected bool
}

func newDocItem(doc *parser.Document) docItem {
	date := "undated"
	if doc.Revdate != nil {
		date = doc.Revdate.String()
	}
	return docItem{doc: doc, date: date, selected: true}
}

// matchesQuery checks if the item matches all search words, using
// case-insensitive substring matching on path and date
func (item *docItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(strings.ToLower(item.doc.Path), word) &&
			!strings.Contains(item.date, word) {
			return false
		}
	}
	return true
}

// pickerModel is the bubbletea model for the document picker
type pickerModel struct {
	items   []docItem
	visible []int // indexes into items matching the current filter
	cursor  int   // index into visible
	offset  int   // first visible row, for scrolling
	filter  textinput.Model

	width  int
	height int

	confirmed bool
}

func newPickerModel(docs []*parser.Document) pickerModel {
	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "filter"
	ti.Focus()

	m := pickerModel{
		items:  make([]docItem, 0, len(docs)),
		filter: ti,
		height: 24,
	}
	for _, doc := range docs {
		m.items = append(m.items, newDocItem(doc))
	}
	m.refilter()
	return m
}

// refilter rebuilds the visible list from the current filter query
func (m *pickerModel) refilter() {
	words := strings.Fields(strings.ToLower(m.filter.Value()))
	m.visible = m.visible[:0]
	for i := range m.items {
		if m.items[i].matchesQuery(words) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.offset = 0
	m.scrollToCursor()
}

// toggleCursor flips the selection of the item under the cursor
func (m *pickerModel) toggleCursor() {
	if m.cursor < len(m.visible) {
		item := &m.items[m.visible[m.cursor]]
		item.selected = !item.selected
	}
}

// toggleAll selects every visible item, or deselects all of them if every
// visible item is already selected
func (m *pickerModel) toggleAll() {
	all := true
	for _, i := range m.visible {
		if !m.items[i].selected {
			all = false
			break
		}
	}
	for _, i := range m.visible {
		m.items[i].selected = !all
	}
}

// selectedDocs returns the documents left selected, in input order
func (m *pickerModel) selectedDocs() []*parser.Document {
	var out []*parser.Document
	for i := range m.items {
		if m.items[i].selected {
			out = append(out, m.items[i].doc)
		}
	}
	return out
}

// Init implements tea.Model
func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			m.scrollToCursor()
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			m.scrollToCursor()
			return m, nil
		case "tab":
			m.toggleCursor()
			return m, nil
		case "ctrl+a":
			m.toggleAll()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// listHeight is the number of document rows that fit on screen
func (m *pickerModel) listHeight() int {
	h := m.height - 4 // title, filter, blank, help
	if h < 1 {
		h = 1
	}
	return h
}

func (m *pickerModel) scrollToCursor() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// View implements tea.Model
func (m pickerModel) View() string {
	var sb strings.Builder

	selected := 0
	for i := range m.items {
		if m.items[i].selected {
			selected++
		}
	}

	sb.WriteString(styles.Title.Render(
		fmt.Sprintf("Select documents (%d/%d included)", selected, len(m.items))))
	sb.WriteString("\n")
	sb.WriteString(m.filter.View())
	sb.WriteString("\n\n")

	h := m.listHeight()
	end := min(m.offset+h, len(m.visible))
	for row := m.offset; row < end; row++ {
		item := &m.items[m.visible[row]]

		cursor := "  "
		if row == m.cursor {
			cursor = styles.Cursor.Render("▶ ")
		}

		mark := styles.Dim.Render("○")
		if item.selected {
			mark = styles.Included.Render("✓")
		}

		date := styles.Undated.Render(item.date)
		if item.doc.Revdate != nil {
			date = styles.Date.Render(item.date)
		}

		fmt.Fprintf(&sb, "%s%s %s  %s\n", cursor, mark, date, styles.Path.Render(item.doc.Path))
	}
	if len(m.visible) == 0 {
		sb.WriteString(styles.Dim.Render("  no documents match"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Dim.Render("tab toggle • ctrl+a all • enter merge • esc cancel"))
	return sb.String()
}

// Run shows the picker for docs and returns the documents the user left
// selected. ok is false when the user aborted without confirming.
func Run(docs []*parser.Document) (selected []*parser.Document, ok bool, err error) {
	m := newPickerModel(docs)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	fm := final.(pickerModel)
	if !fm.confirmed {
		return nil, false, nil
	}
	return fm.selectedDocs(), true, nil
}
