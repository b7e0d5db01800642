package host

import (
	"errors"
	"fmt"
	"log"

	"github.com/gen2brain/beeep"
	"github.com/sqweek/dialog"
)

// Desktop shows native notifications and dialogs. Text input has no native
// dialog and goes to the fallback prompter.
type Desktop struct {
	title    string
	fallback Prompter
}

// NewDesktop returns a Desktop whose windows carry title.
func NewDesktop(title string, fallback Prompter) *Desktop {
	return &Desktop{title: title, fallback: fallback}
}

// Info shows a desktop notification.
func (d *Desktop) Info(format string, args ...any) {
	d.notify(false, format, args...)
}

// Warn shows a desktop notification.
func (d *Desktop) Warn(format string, args ...any) {
	d.notify(false, "Warning: "+format, args...)
}

// Error shows a desktop alert.
func (d *Desktop) Error(format string, args ...any) {
	d.notify(true, format, args...)
}

func (d *Desktop) notify(alert bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	var err error
	if alert {
		err = beeep.Alert(d.title, msg, "")
	} else {
		err = beeep.Notify(d.title, msg, "")
	}
	if err != nil {
		log.Printf("notification failed (%v): %s", err, msg)
	}
}

// PickFolder opens a native folder browser.
func (d *Desktop) PickFolder(start string) (string, error) {
	path, err := dialog.Directory().Title("Select translation folder").SetStartDir(start).Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	return path, err
}

// Confirm opens a yes/no message box.
func (d *Desktop) Confirm(question string) (bool, error) {
	return dialog.Message("%s", question).Title(d.title).YesNo(), nil
}

// Input delegates to the fallback prompter.
func (d *Desktop) Input(prompt, placeholder string) (string, error) {
	if d.fallback == nil {
		return "", ErrCancelled
	}
	return d.fallback.Input(prompt, placeholder)
}

// NewDesktopHost returns a Host using native dialogs and notifications.
func NewDesktopHost(d *Desktop) Host {
	return Host{Notifier: d, PathPicker: d, Prompter: d}
}
