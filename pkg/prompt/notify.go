package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(message string)
}

// Clipboard reads the system clipboard.
type Clipboard interface {
	Read() (string, error)
}

var noticeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// LineNotifier writes each notice as a styled line.
type LineNotifier struct {
	w io.Writer
}

// NewLineNotifier creates a notifier writing to w.
func NewLineNotifier(w io.Writer) *LineNotifier {
	return &LineNotifier{w: w}
}

// Notify implements Notifier.
func (n *LineNotifier) Notify(message string) {
	fmt.Fprintln(n.w, noticeStyle.Render(message))
}

// SystemClipboard reads the desktop clipboard.
type SystemClipboard struct{}

// Read implements Clipboard.
func (SystemClipboard) Read() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard is not supported on this system")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return strings.TrimSpace(text), nil
}
