package prompt

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInputModelTypingAndSubmit(t *testing.T) {
	var m tea.Model = newInputModel("Enter a game title", "Quake", "")

	for _, r := range "doom" {
		m, _ = m.Update(runes(string(r)))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	im := m.(inputModel)
	assert.True(t, im.submitted)
	assert.False(t, im.cancelled)
	assert.Equal(t, "doom", im.input.Value())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, im.View())
}

func TestInputModelPrefilled(t *testing.T) {
	var m tea.Model = newInputModel("Enter a game title", "", "Shenmue")
	m, _ = m.Update(runes("!"))

	assert.Equal(t, "Shenmue!", m.(inputModel).input.Value())
}

func TestInputModelCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		var m tea.Model = newInputModel("h", "p", "Quake")
		m, _ = m.Update(tea.KeyMsg{Type: key})
		assert.True(t, m.(inputModel).cancelled)
	}
}

func TestInputModelView(t *testing.T) {
	view := newInputModel("Enter a game title", "Daikatana", "").View()
	assert.Contains(t, view, "Enter a game title")
	assert.Contains(t, view, "esc: cancel")
}

func TestSuggestModelNavigation(t *testing.T) {
	labels := []string{"Quake (1996)", "Quake II (1997)", "Quake III Arena (1999)"}
	var m tea.Model = newSuggestModel(labels, 0)

	m, _ = m.Update(runes("j"))
	assert.Equal(t, 1, m.(suggestModel).cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.(suggestModel).cursor, "cursor should stop at end")

	m, _ = m.Update(runes("k"))
	assert.Equal(t, 1, m.(suggestModel).cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.(suggestModel).cursor)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.(suggestModel).cursor, "cursor should stop at start")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.(suggestModel).chosen)
	require.NotNil(t, cmd)
}

func TestSuggestModelPreselectedCursor(t *testing.T) {
	m := newSuggestModel([]string{"a", "b", "c"}, 2)
	assert.Equal(t, 2, m.cursor)

	out := newSuggestModel([]string{"a"}, 5)
	assert.Equal(t, 0, out.cursor, "out of range cursor resets")
}

func TestSuggestModelCancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}, runes("q")} {
		var m tea.Model = newSuggestModel([]string{"a", "b"}, 1)
		m, _ = m.Update(key)
		assert.Equal(t, -1, m.(suggestModel).chosen)
		assert.True(t, m.(suggestModel).done)
	}
}

func TestSuggestModelScrolls(t *testing.T) {
	labels := make([]string, 15)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}

	m := newSuggestModel(labels, 12)
	assert.Equal(t, 3, m.offset)
	assert.Contains(t, m.View(), "> m")
	assert.NotContains(t, m.View(), "  a\n")
}

func TestTerminalSuggestWithoutLabels(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, &bytes.Buffer{})
	_, err := term.Suggest(context.Background(), nil, 0)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestLineNotifier(t *testing.T) {
	var buf bytes.Buffer
	NewLineNotifier(&buf).Notify("No results found.")

	assert.Contains(t, buf.String(), "No results found.")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}
