package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const visibleRows = 10

// suggestModel is a list picker. chosen stays -1 until a label is confirmed.
type suggestModel struct {
	labels []string
	cursor int
	offset int
	chosen int
	done   bool
}

func newSuggestModel(labels []string, cursor int) suggestModel {
	if cursor < 0 || cursor >= len(labels) {
		cursor = 0
	}
	m := suggestModel{labels: labels, cursor: cursor, chosen: -1}
	m.scroll()
	return m
}

func (m suggestModel) Init() tea.Cmd {
	return nil
}

// scroll keeps the cursor inside the visible window.
func (m *suggestModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visibleRows {
		m.offset = m.cursor - visibleRows + 1
	}
}

func (m suggestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.labels)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.labels) - 1
	case "enter":
		m.chosen = m.cursor
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c", "q":
		m.done = true
		return m, tea.Quit
	}
	m.scroll()
	return m, nil
}

func (m suggestModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Select a game"))
	b.WriteString("\n")

	end := min(m.offset+visibleRows, len(m.labels))
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + m.labels[i]))
		} else {
			b.WriteString(itemStyle.Render("  " + m.labels[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓: move • enter: select • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
