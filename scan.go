package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// keyReference records where a translation key is used.
type keyReference struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// defaultSourceExts are the file extensions scanned for key references.
var defaultSourceExts = []string{".js", ".jsx", ".ts", ".tsx", ".vue", ".svelte", ".html"}

// skippedDirs are never descended into while scanning.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"out":          true,
	"vendor":       true,
}

// Patterns for finding translation key references in source code.
var (
	// t('...'), t("..."), t(`...`), also this.t(...), $t(...) and i18n.t(...)
	keyPattern = regexp.MustCompile(`(?:^|[^a-zA-Z0-9_])t\(\s*['"\x60]([a-zA-Z0-9_.-]+)['"\x60]`)
	// translate('...') and instant('...') service calls.
	translateCallPattern = regexp.MustCompile(`\b(?:translate|instant)\(\s*['"\x60]([a-zA-Z0-9_.-]+)['"\x60]`)
	// 'key' | translate in Angular templates.
	translatePipePattern = regexp.MustCompile(`['"]([a-zA-Z0-9_.-]+)['"]\s*\|\s*translate\b`)
	// data-i18n="key" attributes.
	dataAttrPattern = regexp.MustCompile(`data-i18n="([a-zA-Z0-9_.-]+)"`)
	// v-t directive: v-t="'key'" in Vue templates.
	vtDirectivePattern = regexp.MustCompile(`v-t="'([a-zA-Z0-9_.-]+)'"`)
	// Dotted string literals. These are only counted when the literal is a
	// known key, which catches keys stored in variables before lookup.
	dottedKeyLiteral = regexp.MustCompile(`['"\x60]([a-zA-Z][a-zA-Z0-9_-]*(?:\.[a-zA-Z0-9_-]+)+)['"\x60]`)
)

var directPatterns = []*regexp.Regexp{
	keyPattern,
	translateCallPattern,
	translatePipePattern,
	dataAttrPattern,
	vtDirectivePattern,
}

// scanSourceFiles walks the source tree and returns file paths matching
// the given extensions.
func scanSourceFiles(root string, exts []string) ([]string, error) {
	var files []string
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		extSet[strings.ToLower(e)] = true
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && skippedDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if extSet[strings.ToLower(filepath.Ext(name))] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// findKeyReferences scans source files under root for translation key
// usage. Direct lookups are always recorded; plain dotted literals only
// when they name one of keys.
func findKeyReferences(root string, exts []string, keys map[string]bool) (map[string][]keyReference, error) {
	files, err := scanSourceFiles(root, exts)
	if err != nil {
		return nil, err
	}

	refs := make(map[string][]keyReference)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		relPath, _ := filepath.Rel(root, file)
		relPath = filepath.ToSlash(relPath)
		for i, line := range strings.Split(string(data), "\n") {
			for key := range lineKeys(line, keys) {
				refs[key] = append(refs[key], keyReference{File: relPath, Line: i + 1})
			}
		}
	}
	return refs, nil
}

// lineKeys returns the keys referenced on a single line.
func lineKeys(line string, keys map[string]bool) map[string]bool {
	found := make(map[string]bool)
	for _, pat := range directPatterns {
		for _, m := range pat.FindAllStringSubmatch(line, -1) {
			found[m[1]] = true
		}
	}
	for _, m := range dottedKeyLiteral.FindAllStringSubmatch(line, -1) {
		if keys[m[1]] {
			found[m[1]] = true
		}
	}
	return found
}
