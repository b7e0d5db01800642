// Package app ties the settings file, the translation store and the user's
// host together. It implements the manager's commands: configure, translate,
// add, edit, delete and refresh.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/json-translations-manager/jtm/internal/host"
	"github.com/json-translations-manager/jtm/internal/settings"
	"github.com/json-translations-manager/jtm/internal/translations"
)

// Prompt texts shown to the user.
const (
	keyPrompt      = "Enter Translation key"
	keyPlaceholder = "Use dot (.) notation to make the key a Nested objects"
	sortQuestion   = "Do you want to Sort translation keys alphabetically?"
)

// LocaleValue is the current translation of a key in one locale.
type LocaleValue struct {
	Locale  string `json:"locale"`
	Value   string `json:"value"`
	Defined bool   `json:"defined"`
}

// Manager owns the configuration and the loaded translations of one
// project. All methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	root     string
	host     host.Host
	settings *settings.Store
	config   *settings.Configuration
	store    *translations.Store

	subsMu  sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New returns a Manager for the project at root. Call Init before use.
func New(root string, h host.Host) *Manager {
	return &Manager{
		root:     root,
		host:     h,
		settings: settings.New(root),
		subs:     make(map[int]func()),
	}
}

// Root returns the project root.
func (m *Manager) Root() string { return m.root }

// SettingsPath returns the settings file path.
func (m *Manager) SettingsPath() string { return m.settings.Path() }

// Init reads the configuration and loads the translation folder. A missing
// or invalid configuration leaves the manager unconfigured without error.
// Subscribers registered with OnRefresh are notified on success.
func (m *Manager) Init() error {
	m.mu.Lock()
	err := m.init()
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.refreshed()
	return nil
}

func (m *Manager) init() error {
	cfg, err := m.settings.Load()
	if errors.Is(err, settings.ErrNotConfigured) {
		m.config, m.store = nil, nil
		return nil
	}
	store, err := translations.Open(cfg.Folder(m.root), translations.Options{
		Sort:    cfg.Sort,
		Exclude: []string{settings.FileName},
		Warner:  m.host.Notifier,
	})
	if err != nil {
		return err
	}
	m.config, m.store = cfg, store
	return nil
}

// Configured reports whether a usable configuration is loaded.
func (m *Manager) Configured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store != nil
}

// Config returns a copy of the loaded configuration, or nil.
func (m *Manager) Config() *settings.Configuration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config == nil {
		return nil
	}
	cfg := *m.config
	return &cfg
}

// Configure asks for the translation folder and the sort preference,
// saves them and reloads everything from the new configuration.
func (m *Manager) Configure() error {
	folder, err := m.host.PickFolder(m.root)
	if err != nil {
		return err
	}
	abs := m.resolveFolder(folder)
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return fmt.Errorf("translation folder %s is not a directory", folder)
	}

	sort, err := m.host.Confirm(sortQuestion)
	if err != nil {
		return err
	}

	m.mu.Lock()
	_, err = m.settings.Save(abs, sort)
	if err == nil {
		err = m.init()
	}
	m.mu.Unlock()
	if err != nil {
		m.host.Error("%v", err)
		return err
	}

	m.refreshed()
	m.host.Info("Translation folder configuration Saved successfully")
	return nil
}

// resolveFolder turns a picked folder into an absolute path. Like the
// settings file's translationFolder, "/src/i18n" typed at a prompt is read
// relative to the project root. An absolute path from a folder dialog is
// used as is when no such folder exists under the root.
func (m *Manager) resolveFolder(folder string) string {
	cfg := settings.Configuration{TranslationFolder: folder}
	rel := cfg.Folder(m.root)
	if !filepath.IsAbs(folder) {
		return rel
	}
	if info, err := os.Stat(rel); err == nil && info.IsDir() {
		return rel
	}
	return folder
}

// EnsureConfigured runs Configure when no configuration is loaded.
func (m *Manager) EnsureConfigured() error {
	if m.Configured() {
		return nil
	}
	return m.Configure()
}

// View runs fn with the loaded store. fn must not modify translations.
func (m *Manager) View(fn func(*translations.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		return settings.ErrNotConfigured
	}
	return fn(m.store)
}

// update runs fn with the loaded store, configuring first if needed, and
// notifies subscribers when fn succeeds.
func (m *Manager) update(fn func(*translations.Store) error) error {
	if err := m.EnsureConfigured(); err != nil {
		return err
	}
	if err := m.View(fn); err != nil {
		return err
	}
	m.refreshed()
	return nil
}

// Index returns the key index of the loaded translations.
func (m *Manager) Index() ([]translations.IndexEntry, error) {
	var entries []translations.IndexEntry
	err := m.View(func(s *translations.Store) error {
		entries = s.Index()
		return nil
	})
	return entries, err
}

// Panel returns the translation of key in every locale, for editing.
func (m *Manager) Panel(key string) ([]LocaleValue, error) {
	if _, err := translations.ParseKey(key); err != nil {
		return nil, err
	}
	var values []LocaleValue
	err := m.View(func(s *translations.Store) error {
		for _, locale := range s.Locales() {
			v, ok, err := s.GetValue(locale, key)
			if err != nil {
				return fmt.Errorf("%s: %w", locale, err)
			}
			values = append(values, LocaleValue{Locale: locale, Value: v, Defined: ok})
		}
		return nil
	})
	return values, err
}

// Translate stores the given per-locale values of key.
func (m *Manager) Translate(key string, values map[string]string) error {
	if len(values) == 0 {
		return fmt.Errorf("no translations given for %s", key)
	}
	return m.update(func(s *translations.Store) error {
		return s.SetValues(key, values)
	})
}

// Import merges entries into locale, overriding existing values.
func (m *Manager) Import(locale string, entries []translations.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no translation entries to import into %s", locale)
	}
	var added int
	if err := m.update(func(s *translations.Store) error {
		var err error
		added, err = s.Merge(locale, entries)
		return err
	}); err != nil {
		return err
	}
	m.host.Info("Merged %d new keys into %s (%d entries)", added, locale, len(entries))
	return nil
}

// Edit prompts for the value of key in every locale; a blank answer keeps
// the current value. An empty key is asked for first.
func (m *Manager) Edit(key string) error {
	if err := m.EnsureConfigured(); err != nil {
		return err
	}
	if key == "" {
		k, err := m.host.Input(keyPrompt, keyPlaceholder)
		if err != nil {
			return err
		}
		key = k
	}
	panel, err := m.Panel(key)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	for _, lv := range panel {
		hint := "missing"
		if lv.Defined {
			hint = lv.Value
		}
		answer, err := m.host.Input(lv.Locale, hint)
		if err != nil {
			return err
		}
		if answer != "" {
			values[lv.Locale] = answer
		}
	}
	if len(values) == 0 {
		m.host.Info("No changes to %s", key)
		return nil
	}
	if err := m.Translate(key, values); err != nil {
		return err
	}
	m.host.Info("Saved %s in %d locale(s)", key, len(values))
	return nil
}

// Add prompts for a new key and its translations.
func (m *Manager) Add() error {
	return m.Edit("")
}

// Delete removes key from every locale.
func (m *Manager) Delete(key string) error {
	var removed int
	if err := m.update(func(s *translations.Store) error {
		var err error
		removed, err = s.DeleteKey(key)
		return err
	}); err != nil {
		return err
	}
	if removed == 0 {
		m.host.Info("%s not found in any locale", key)
		return nil
	}
	m.host.Info("Deleted %s from %d locale(s)", key, removed)
	return nil
}

// Rename moves key oldKey to newKey in every locale that defines it. An
// empty newKey is asked for.
func (m *Manager) Rename(oldKey, newKey string) error {
	if newKey == "" {
		if err := m.EnsureConfigured(); err != nil {
			return err
		}
		k, err := m.host.Input("New key for "+oldKey, oldKey)
		if err != nil {
			return err
		}
		if k == "" {
			return host.ErrCancelled
		}
		newKey = k
	}
	if err := m.update(func(s *translations.Store) error {
		return s.RenameKey(oldKey, newKey)
	}); err != nil {
		return err
	}
	m.host.Info("Renamed %s to %s", oldKey, newKey)
	return nil
}

// Refresh re-reads the configuration and every locale file.
func (m *Manager) Refresh() error {
	return m.Init()
}

// OnRefresh registers fn to be called after every reload or change. The
// returned function unregisters it.
func (m *Manager) OnRefresh(fn func()) (cancel func()) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.subsMu.Lock()
		defer m.subsMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) refreshed() {
	m.subsMu.Lock()
	fns := make([]func(), 0, len(m.subs))
	for i := 0; i < m.nextSub; i++ {
		if fn, ok := m.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	m.subsMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
