package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/json-translations-manager/jtm/internal/host"
	"github.com/json-translations-manager/jtm/internal/settings"
	"github.com/json-translations-manager/jtm/internal/translations"
)

// fakeHost answers prompts from queues and records notifications.
type fakeHost struct {
	folders  []string
	answers  []string
	confirms []bool
	infos    []string
	warnings []string
	errors   []string
}

func (f *fakeHost) Info(format string, args ...any) {
	f.infos = append(f.infos, fmt.Sprintf(format, args...))
}

func (f *fakeHost) Warn(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

func (f *fakeHost) Error(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeHost) PickFolder(string) (string, error) {
	if len(f.folders) == 0 {
		return "", host.ErrCancelled
	}
	folder := f.folders[0]
	f.folders = f.folders[1:]
	return folder, nil
}

func (f *fakeHost) Input(string, string) (string, error) {
	if len(f.answers) == 0 {
		return "", host.ErrCancelled
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a, nil
}

func (f *fakeHost) Confirm(string) (bool, error) {
	if len(f.confirms) == 0 {
		return false, host.ErrCancelled
	}
	c := f.confirms[0]
	f.confirms = f.confirms[1:]
	return c, nil
}

func (f *fakeHost) host() host.Host {
	return host.Host{Notifier: f, PathPicker: f, Prompter: f}
}

// newProject creates a project with an i18n folder holding files.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "i18n")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func writeSettings(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, settings.FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func newManager(t *testing.T, root string, h *fakeHost) *Manager {
	t.Helper()
	m := New(root, h.host())
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestInitUnconfigured(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{}`})
	h := &fakeHost{}
	m := newManager(t, root, h)
	if m.Configured() {
		t.Error("Configured() = true without a settings file")
	}
	if _, err := m.Index(); !errors.Is(err, settings.ErrNotConfigured) {
		t.Errorf("Index err = %v, want %v", err, settings.ErrNotConfigured)
	}
}

func TestConfigure(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{"a":"b"}`})
	h := &fakeHost{folders: []string{filepath.Join(root, "i18n")}, confirms: []bool{true}}
	m := newManager(t, root, h)

	refreshes := 0
	m.OnRefresh(func() { refreshes++ })

	if err := m.Configure(); err != nil {
		t.Fatal(err)
	}
	if !m.Configured() {
		t.Fatal("not configured after Configure")
	}
	if got, want := *m.Config(), (settings.Configuration{TranslationFolder: "i18n", Sort: true}); got != want {
		t.Errorf("config = %+v, want %+v", got, want)
	}
	if refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", refreshes)
	}
	want := "{\n  \"translationFolder\": \"i18n\",\n  \"sort\": true\n}\n"
	if got := readFile(t, m.SettingsPath()); got != want {
		t.Errorf("settings file = %q, want %q", got, want)
	}
	if len(h.infos) != 1 {
		t.Errorf("infos = %v, want one confirmation", h.infos)
	}
}

func TestConfigureCancelled(t *testing.T) {
	root := newProject(t, nil)
	h := &fakeHost{folders: []string{"i18n"}}
	m := newManager(t, root, h)

	// The folder is picked but the sort question is dismissed.
	if err := m.Configure(); !errors.Is(err, host.ErrCancelled) {
		t.Fatalf("err = %v, want %v", err, host.ErrCancelled)
	}
	if _, err := os.Stat(m.SettingsPath()); !os.IsNotExist(err) {
		t.Error("settings saved after cancellation")
	}
}

func TestConfigureRejectsMissingFolder(t *testing.T) {
	root := newProject(t, nil)
	h := &fakeHost{folders: []string{"nope"}, confirms: []bool{false}}
	m := newManager(t, root, h)
	if err := m.Configure(); err == nil {
		t.Fatal("Configure accepted a missing folder")
	}
	if m.Configured() {
		t.Error("configured with a missing folder")
	}
}

func TestCommandsPromptForConfiguration(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{}`})
	h := &fakeHost{folders: []string{"i18n"}, confirms: []bool{false}}
	m := newManager(t, root, h)

	if err := m.Translate("home.title", map[string]string{"en": "Home"}); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"home\": {\n    \"title\": \"Home\"\n  }\n}\n"
	if got := readFile(t, filepath.Join(root, "i18n", "en.json")); got != want {
		t.Errorf("en.json = %q, want %q", got, want)
	}
}

func TestTranslatePanelAndDelete(t *testing.T) {
	root := newProject(t, map[string]string{
		"en.json": `{"a":{"b":"hello"}}`,
		"fr.json": `{}`,
	})
	writeSettings(t, root, `{"translationFolder":"/i18n","sort":false}`)
	h := &fakeHost{}
	m := newManager(t, root, h)

	refreshes := 0
	cancel := m.OnRefresh(func() { refreshes++ })

	if err := m.Translate("a.b", map[string]string{"fr": "bonjour"}); err != nil {
		t.Fatal(err)
	}
	panel, err := m.Panel("a.b")
	if err != nil {
		t.Fatal(err)
	}
	want := []LocaleValue{
		{Locale: "en", Value: "hello", Defined: true},
		{Locale: "fr", Value: "bonjour", Defined: true},
	}
	if !reflect.DeepEqual(panel, want) {
		t.Errorf("panel = %+v, want %+v", panel, want)
	}

	if err := m.Rename("a.b", "a.c"); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete("a.c"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"en.json", "fr.json"} {
		if got := readFile(t, filepath.Join(root, "i18n", name)); got != "{}\n" {
			t.Errorf("%s = %q, want %q", name, got, "{}\n")
		}
	}
	if refreshes != 3 {
		t.Errorf("refreshes = %d, want 3", refreshes)
	}

	cancel()
	if err := m.Refresh(); err != nil {
		t.Fatal(err)
	}
	if refreshes != 3 {
		t.Errorf("cancelled subscriber still called: %d", refreshes)
	}
}

func TestTranslateRejectsInvalidKey(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{}`})
	writeSettings(t, root, `{"translationFolder":"i18n"}`)
	m := newManager(t, root, &fakeHost{})

	refreshes := 0
	m.OnRefresh(func() { refreshes++ })
	if err := m.Translate("a..b", map[string]string{"en": "x"}); err == nil {
		t.Fatal("Translate accepted an empty segment")
	}
	if err := m.Translate("a", nil); err == nil {
		t.Fatal("Translate accepted no values")
	}
	if refreshes != 0 {
		t.Errorf("refreshes = %d after failures, want 0", refreshes)
	}
}

func TestEdit(t *testing.T) {
	root := newProject(t, map[string]string{
		"de.json": `{}`,
		"en.json": `{"greeting":"Hello"}`,
	})
	writeSettings(t, root, `{"translationFolder":"i18n"}`)

	// Key, then de value, then a blank answer keeping en as it is.
	h := &fakeHost{answers: []string{"greeting", "Hallo", ""}}
	m := newManager(t, root, h)
	if err := m.Add(); err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"greeting\": \"Hallo\"\n}\n"
	if got := readFile(t, filepath.Join(root, "i18n", "de.json")); got != want {
		t.Errorf("de.json = %q, want %q", got, want)
	}
	if got := readFile(t, filepath.Join(root, "i18n", "en.json")); got != `{"greeting":"Hello"}` {
		t.Errorf("en.json rewritten: %q", got)
	}
}

func TestEditNoChanges(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{"a":"b"}`})
	writeSettings(t, root, `{"translationFolder":"i18n"}`)
	h := &fakeHost{answers: []string{""}}
	m := newManager(t, root, h)
	if err := m.Edit("a"); err != nil {
		t.Fatal(err)
	}
	if len(h.infos) != 1 || h.infos[0] != "No changes to a" {
		t.Errorf("infos = %v", h.infos)
	}
}

func TestRenamePromptsForNewKey(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{"old":"v"}`})
	writeSettings(t, root, `{"translationFolder":"i18n"}`)
	h := &fakeHost{answers: []string{"fresh.key"}}
	m := newManager(t, root, h)
	if err := m.Rename("old", ""); err != nil {
		t.Fatal(err)
	}
	panel, err := m.Panel("fresh.key")
	if err != nil {
		t.Fatal(err)
	}
	if len(panel) != 1 || panel[0].Value != "v" {
		t.Errorf("panel = %+v", panel)
	}
}

func TestInitWarnsAboutBrokenFiles(t *testing.T) {
	root := newProject(t, map[string]string{
		"en.json":  `{"a":"b"}`,
		"bad.json": `nope`,
	})
	writeSettings(t, root, `{"translationFolder":"i18n"}`)
	h := &fakeHost{}
	m := newManager(t, root, h)
	if len(h.warnings) != 1 {
		t.Errorf("warnings = %v, want 1", h.warnings)
	}
	entries, err := m.Index()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Key != "a" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestSettingsFileIsNotALocale(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "en.json"), []byte(`{"a":"b"}`), 0644); err != nil {
		t.Fatal(err)
	}
	writeSettings(t, root, `{"translationFolder":"."}`)
	m := newManager(t, root, &fakeHost{})
	var locales []string
	if err := m.View(func(s *translations.Store) error {
		locales = s.Locales()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if want := []string{"en"}; !reflect.DeepEqual(locales, want) {
		t.Errorf("locales = %v, want %v", locales, want)
	}
}

func TestImport(t *testing.T) {
	root := newProject(t, map[string]string{
		"en.json": `{"a":"A"}`,
		"fr.json": `{}`,
	})
	writeSettings(t, root, `{"translationFolder":"i18n"}`)
	h := &fakeHost{}
	m := newManager(t, root, h)

	refreshes := 0
	m.OnRefresh(func() { refreshes++ })
	entries := []translations.Entry{{Key: "a", Value: "A fr"}, {Key: "b.c", Value: "C fr"}}
	if err := m.Import("fr", entries); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": \"A fr\",\n  \"b\": {\n    \"c\": \"C fr\"\n  }\n}\n"
	if got := readFile(t, filepath.Join(root, "i18n", "fr.json")); got != want {
		t.Errorf("fr.json = %q, want %q", got, want)
	}
	if refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", refreshes)
	}
	if len(h.infos) != 1 || h.infos[0] != "Merged 2 new keys into fr (2 entries)" {
		t.Errorf("infos = %v", h.infos)
	}

	if err := m.Import("fr", nil); err == nil {
		t.Error("Import accepted no entries")
	}
}

func TestConfigureRootRelativeFolder(t *testing.T) {
	root := newProject(t, map[string]string{"en.json": `{"a":"b"}`})
	h := &fakeHost{folders: []string{"/i18n"}, confirms: []bool{false}}
	m := newManager(t, root, h)

	if err := m.Configure(); err != nil {
		t.Fatal(err)
	}
	if got, want := *m.Config(), (settings.Configuration{TranslationFolder: "i18n"}); got != want {
		t.Errorf("config = %+v, want %+v", got, want)
	}
}

func TestDeleteReportsLocales(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"present", "a", "Deleted a from 1 locale(s)"},
		{"absent", "x", "x not found in any locale"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newProject(t, map[string]string{"en.json": `{"a":"b"}`, "fr.json": `{}`})
			writeSettings(t, root, `{"translationFolder":"i18n"}`)
			h := &fakeHost{}
			m := newManager(t, root, h)

			if err := m.Delete(tc.key); err != nil {
				t.Fatal(err)
			}
			if want := []string{tc.want}; !reflect.DeepEqual(h.infos, want) {
				t.Errorf("infos = %v, want %v", h.infos, want)
			}
		})
	}
}
