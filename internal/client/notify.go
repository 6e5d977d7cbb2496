package client

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Notifier shows transient success and error messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConsoleNotifier prints notifications to a terminal in color.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
	ok  *color.Color
	bad *color.Color
}

// NewConsoleNotifier writes to w, or stderr when w is nil.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleNotifier{
		out: w,
		ok:  color.New(color.FgGreen, color.Bold),
		bad: color.New(color.FgRed, color.Bold),
	}
}

func (n *ConsoleNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ok.Fprintf(n.out, "✔ %s\n", msg)
}

func (n *ConsoleNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bad.Fprintf(n.out, "✖ %s\n", msg)
}
