package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestLineKeys(t *testing.T) {
	known := map[string]bool{"menu.settings": true}
	tests := []struct {
		name string
		line string
		want string // comma separated, sorted; empty means no match expected
	}{
		{"t single quotes", `t('action.refresh')`, "action.refresh"},
		{"t double quotes", `t("action.refresh")`, "action.refresh"},
		{"t backtick", "t(`action.refresh`)", "action.refresh"},
		{"this.t", `this.t('app.title')`, "app.title"},
		{"$t", `{{ $t('nav.home') }}`, "nav.home"},
		{"i18n.t", `i18n.t("nav.home")`, "nav.home"},
		{"space inside call", `t( 'nav.home' )`, "nav.home"},
		{"not preceded by letter", `xt('key.name')`, ""},
		{"translate call", `this.translate.instant('page.title')`, "page.title"},
		{"translate pipe", `{{ 'page.title' | translate }}`, "page.title"},
		{"data attribute", `<h1 data-i18n="page.title"></h1>`, "page.title"},
		{"v-t directive", `<span v-t="'table.empty'" />`, "table.empty"},
		{"single segment key", `t('save')`, "save"},
		{"known dotted literal", `const key = 'menu.settings';`, "menu.settings"},
		{"unknown dotted literal", `import x from 'lodash.merge';`, ""},
		{"two calls", `t('a.b') + t('c.d')`, "a.b,c.d"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var found []string
			for k := range lineKeys(tc.line, known) {
				found = append(found, k)
			}
			sort.Strings(found)
			if got := strings.Join(found, ","); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScanSourceFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"src/app.ts",
		"src/view.VUE",
		"src/notes.md",
		"node_modules/pkg/index.js",
		".git/hooks/pre-commit.js",
		"dist/bundle.js",
	} {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := scanSourceFiles(root, []string{"ts", ".vue", ".js"})
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	if got, want := strings.Join(rel, ","), "src/app.ts,src/view.VUE"; got != want {
		t.Errorf("files = %s, want %s", got, want)
	}
}

func TestFindKeyReferences(t *testing.T) {
	root := t.TempDir()
	src := "// header\nlabel = t('a.b')\nother = t('a.b')\n"
	if err := os.WriteFile(filepath.Join(root, "main.js"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	refs, err := findKeyReferences(root, defaultSourceExts, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := refs["a.b"]
	if len(got) != 2 || got[0] != (keyReference{File: "main.js", Line: 2}) || got[1].Line != 3 {
		t.Errorf("refs[a.b] = %+v", got)
	}
}
