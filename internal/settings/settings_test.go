package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNotConfigured(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty means no settings file
	}{
		{name: "missing file"},
		{name: "invalid JSON", content: `{"translationFolder":`},
		{name: "empty folder", content: `{"translationFolder":"","sort":true}`},
		{name: "folder does not exist", content: `{"translationFolder":"nope"}`},
		{name: "folder is a file", content: `{"translationFolder":"file.txt"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.WriteFile(filepath.Join(root, "file.txt"), nil, 0644); err != nil {
				t.Fatal(err)
			}
			if tc.content != "" {
				if err := os.WriteFile(filepath.Join(root, FileName), []byte(tc.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			cfg, err := New(root).Load()
			if !errors.Is(err, ErrNotConfigured) {
				t.Errorf("err = %v, want %v", err, ErrNotConfigured)
			}
			if cfg != nil {
				t.Errorf("cfg = %+v, want nil", cfg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Configuration
	}{
		{
			name:    "relative folder",
			content: `{"translationFolder":"src/i18n","sort":true}`,
			want:    Configuration{TranslationFolder: "src/i18n", Sort: true},
		},
		{
			name:    "leading slash",
			content: `{"translationFolder":"/src/i18n"}`,
			want:    Configuration{TranslationFolder: "/src/i18n"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.MkdirAll(filepath.Join(root, "src", "i18n"), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(root, FileName), []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := New(root).Load()
			if err != nil {
				t.Fatal(err)
			}
			if *cfg != tc.want {
				t.Errorf("got %+v, want %+v", *cfg, tc.want)
			}
			if got, want := cfg.Folder(root), filepath.Join(root, "src", "i18n"); got != want {
				t.Errorf("Folder = %q, want %q", got, want)
			}
		})
	}
}

func TestSave(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "locales", "json")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	s := New(root)

	// An existing file is replaced, not appended to.
	if err := os.WriteFile(s.Path(), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := s.Save(folder, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TranslationFolder != "locales/json" || !cfg.Sort {
		t.Errorf("cfg = %+v", cfg)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"translationFolder\": \"locales/json\",\n  \"sort\": true\n}\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("Load = %+v, want %+v", *loaded, *cfg)
	}
}

func TestSaveRelativeFolder(t *testing.T) {
	root := t.TempDir()
	cfg, err := New(root).Save("./i18n/", false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TranslationFolder != "i18n" {
		t.Errorf("TranslationFolder = %q, want %q", cfg.TranslationFolder, "i18n")
	}
}

func TestSaveRejectsInvalidFolders(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	for _, folder := range []string{"", filepath.Dir(root)} {
		if _, err := s.Save(folder, false); err == nil {
			t.Errorf("Save(%q) succeeded, want error", folder)
		}
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("settings file written for a rejected folder")
	}
}

func TestSaveWriteFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	if _, err := New(root).Save("i18n", false); err == nil {
		t.Error("Save succeeded without a project directory")
	}
}
