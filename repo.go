package main

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/json-translations-manager/jtm/internal/app"
	"github.com/json-translations-manager/jtm/internal/host"
	"github.com/json-translations-manager/jtm/internal/settings"
)

// projectRoot returns --root when given. Otherwise it walks up from the
// current directory to the first directory holding the settings file, and
// falls back to the current directory.
func projectRoot() (string, error) {
	if rootDir != "" {
		return filepath.Abs(rootDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, settings.FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// newHost returns the terminal host, or the desktop one with --desktop.
func newHost() host.Host {
	term := host.NewTerminal(os.Stdin, os.Stderr, os.Stderr).
		WithColor(isatty.IsTerminal(os.Stderr.Fd()))
	if desktop {
		return host.NewDesktopHost(host.NewDesktop("JSON Translations Manager", term))
	}
	return host.NewTerminalHost(term)
}

// openManager finds the project and loads its configuration.
func openManager() (*app.Manager, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	m := app.New(root, newHost())
	if err := m.Init(); err != nil {
		return nil, err
	}
	return m, nil
}

// openConfigured is openManager for commands that need translations,
// prompting for a configuration when there is none.
func openConfigured() (*app.Manager, error) {
	m, err := openManager()
	if err != nil {
		return nil, err
	}
	if err := m.EnsureConfigured(); err != nil {
		return nil, err
	}
	return m, nil
}
