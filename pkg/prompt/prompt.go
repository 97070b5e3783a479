// Package prompt implements the interactive terminal collaborators of a session:
// a text prompt, a result suggester, a notifier and clipboard access.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled indicates that the user dismissed a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the user for input.
type Prompter interface {
	// Input asks for a line of text. value pre-fills the field.
	Input(ctx context.Context, header, placeholder, value string) (string, error)
	// Suggest asks the user to pick one of labels, starting at cursor, and returns its index.
	Suggest(ctx context.Context, labels []string, cursor int) (int, error)
}

// styles shared by the prompt models.
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Terminal runs prompts as bubbletea programs.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a Terminal reading keys from in and drawing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// Input implements Prompter.
func (t *Terminal) Input(ctx context.Context, header, placeholder, value string) (string, error) {
	final, err := t.run(ctx, newInputModel(header, placeholder, value))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input.Value(), nil
}

// Suggest implements Prompter.
func (t *Terminal) Suggest(ctx context.Context, labels []string, cursor int) (int, error) {
	if len(labels) == 0 {
		return -1, ErrCancelled
	}
	final, err := t.run(ctx, newSuggestModel(labels, cursor))
	if err != nil {
		return -1, err
	}
	m := final.(suggestModel)
	if m.chosen < 0 {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}
