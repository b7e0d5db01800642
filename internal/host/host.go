// Package host holds the user-facing collaborators of the translation
// manager: notifications, the folder picker and simple prompts. The
// terminal implementations drive the CLI; the desktop ones use native
// dialogs and notifications.
package host

import "errors"

// ErrCancelled is returned when the user dismisses a prompt or dialog.
var ErrCancelled = errors.New("cancelled by user")

// Notifier shows messages to the user.
type Notifier interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// PathPicker lets the user choose a folder, starting from start.
type PathPicker interface {
	PickFolder(start string) (string, error)
}

// Prompter asks the user for a line of text or a yes/no answer.
type Prompter interface {
	Input(prompt, placeholder string) (string, error)
	Confirm(question string) (bool, error)
}

// Host bundles the collaborators used by the application.
type Host struct {
	Notifier
	PathPicker
	Prompter
}
