package host

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
)

// Terminal prompts on a line-oriented reader and writes notifications to
// a separate writer, normally stderr.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	log   io.Writer
	color bool
}

// NewTerminal returns a Terminal reading answers from in, writing prompts
// to out and notifications to log.
func NewTerminal(in io.Reader, out, log io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, log: log}
}

// WithColor enables ANSI colors in notifications.
func (t *Terminal) WithColor(on bool) *Terminal {
	t.color = on
	return t
}

func (t *Terminal) line(color, mark, format string, args ...any) {
	if t.color {
		fmt.Fprintf(t.log, color+"  "+mark+" "+colorReset+format+"\n", args...)
		return
	}
	fmt.Fprintf(t.log, "  "+mark+" "+format+"\n", args...)
}

// Info prints an informational message.
func (t *Terminal) Info(format string, args ...any) { t.line(colorCyan, "→", format, args...) }

// Warn prints a warning.
func (t *Terminal) Warn(format string, args ...any) { t.line(colorYellow, "⚠", format, args...) }

// Error prints an error.
func (t *Terminal) Error(format string, args ...any) { t.line(colorRed, "✗", format, args...) }

// readLine returns the next trimmed line. End of input with nothing typed
// counts as cancellation.
func (t *Terminal) readLine() (string, error) {
	s, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && s != "" {
			return strings.TrimSpace(s), nil
		}
		if err == io.EOF {
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Input asks for a line of text. The placeholder is shown as a hint.
func (t *Terminal) Input(prompt, placeholder string) (string, error) {
	if placeholder != "" {
		if t.color {
			fmt.Fprintf(t.out, "%s %s(%s)%s: ", prompt, colorDim, placeholder, colorReset)
		} else {
			fmt.Fprintf(t.out, "%s (%s): ", prompt, placeholder)
		}
	} else {
		fmt.Fprintf(t.out, "%s: ", prompt)
	}
	return t.readLine()
}

// Confirm asks a yes/no question until it gets an answer.
func (t *Terminal) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(t.out, "%s [y/n]: ", question)
		answer, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// PickFolder asks for a folder path. A blank answer cancels.
func (t *Terminal) PickFolder(start string) (string, error) {
	path, err := t.Input("Translation folder", "relative to "+start)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

// NewTerminalHost returns a Host backed entirely by t.
func NewTerminalHost(t *Terminal) Host {
	return Host{Notifier: t, PathPicker: t, Prompter: t}
}
