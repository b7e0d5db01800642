// Package settings reads and writes the project's translation settings
// file, json-translations-manager-settings.json, at the project root.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the settings file name, relative to the project root.
const FileName = "json-translations-manager-settings.json"

// ErrNotConfigured means there is no usable settings file: it is missing,
// does not parse, or names a folder that does not exist.
var ErrNotConfigured = errors.New("translation folder is not configured")

// Configuration is the content of the settings file.
type Configuration struct {
	// TranslationFolder is relative to the project root.
	TranslationFolder string `json:"translationFolder"`
	Sort              bool   `json:"sort"`
}

// Folder resolves the translation folder against root. A leading slash is
// treated as root-relative.
func (c *Configuration) Folder(root string) string {
	rel := strings.TrimLeft(filepath.FromSlash(c.TranslationFolder), `/\`)
	return filepath.Join(root, rel)
}

// Store loads and saves the settings file of one project.
type Store struct {
	root string
}

// New returns a Store for the project rooted at root.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the project root.
func (s *Store) Root() string { return s.root }

// Path returns the settings file path.
func (s *Store) Path() string {
	return filepath.Join(s.root, FileName)
}

// Load reads the settings file. Every failure is reported as
// ErrNotConfigured so callers can prompt for a new configuration.
func (s *Store) Load() (*Configuration, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, ErrNotConfigured
	}
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.TranslationFolder) == "" {
		return nil, ErrNotConfigured
	}
	info, err := os.Stat(cfg.Folder(s.root))
	if err != nil || !info.IsDir() {
		return nil, ErrNotConfigured
	}
	return &cfg, nil
}

// Save writes a new settings file, replacing any existing one. folder may
// be absolute or relative to the project root; it is stored relative to
// the root with forward slashes.
func (s *Store) Save(folder string, sort bool) (*Configuration, error) {
	rel, err := s.relative(folder)
	if err != nil {
		return nil, err
	}
	cfg := &Configuration{TranslationFolder: rel, Sort: sort}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.Path(), append(data, '\n'), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", s.Path(), err)
	}
	return cfg, nil
}

func (s *Store) relative(folder string) (string, error) {
	if strings.TrimSpace(folder) == "" {
		return "", fmt.Errorf("translation folder is empty")
	}
	if !filepath.IsAbs(folder) {
		return filepath.ToSlash(filepath.Clean(folder)), nil
	}
	rel, err := filepath.Rel(s.root, folder)
	if err != nil {
		return "", fmt.Errorf("translation folder %s: %w", folder, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("translation folder %s is outside the project %s", folder, s.root)
	}
	return filepath.ToSlash(rel), nil
}
