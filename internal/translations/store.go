// Package translations keeps a folder of JSON locale files in sync.
//
// Each "*.json" file directly inside the folder is one locale document,
// named after the file ("fr.json" is locale "fr"). Keys are dotted paths
// into nested objects: "home.title" addresses {"home": {"title": "..."}}.
// Every mutation rewrites the affected files in full.
//
// A Store is not safe for concurrent use; callers serialize access.
package translations

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Warner receives problems that do not stop an operation, such as a locale
// file that could not be parsed.
type Warner interface {
	Warn(format string, args ...any)
}

// Options configures a Store.
type Options struct {
	// Sort orders keys alphabetically at every level before each write.
	Sort bool
	// Exclude lists file names in the folder that are not locale files.
	Exclude []string
	// Warner is told about skipped files. May be nil.
	Warner Warner
}

// Store holds every locale document of a translation folder.
type Store struct {
	folder   string
	opts     Options
	docs     []*Document
	byLocale map[string]*Document
	skipped  []error
}

// Open loads every locale file in folder.
func Open(folder string, opts Options) (*Store, error) {
	s := &Store{folder: folder, opts: opts}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards the loaded documents and reads the folder again. If the
// folder cannot be read the previous documents are kept.
func (s *Store) Reload() error {
	docs, skipped, err := loadAll(s.folder, s.opts.Exclude)
	if err != nil {
		return err
	}
	byLocale := make(map[string]*Document, len(docs))
	for _, d := range docs {
		byLocale[d.Locale] = d
	}
	for _, err := range skipped {
		s.warn("Skipped %v", err)
	}
	for _, d := range docs {
		for _, path := range d.Unaddressable() {
			s.warn("Ignored key %s in %s: keys must be non-empty and contain no dots", path, d.Path)
		}
	}
	s.docs, s.byLocale, s.skipped = docs, byLocale, skipped
	return nil
}

// loadAll parses the "*.json" files directly inside folder, in file name
// order. Files that fail to parse are returned as skipped errors.
func loadAll(folder string, exclude []string) ([]*Document, []error, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", folder, err)
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var docs []*Document
	var skipped []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || excluded[name] {
			continue
		}
		doc, err := ReadDocument(filepath.Join(folder, name))
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

func (s *Store) warn(format string, args ...any) {
	if s.opts.Warner != nil {
		s.opts.Warner.Warn(format, args...)
	}
}

// Folder returns the translation folder.
func (s *Store) Folder() string { return s.folder }

// Sorted reports whether keys are kept in alphabetical order.
func (s *Store) Sorted() bool { return s.opts.Sort }

// Skipped returns the files that failed to load on the last reload.
func (s *Store) Skipped() []error { return s.skipped }

// Documents returns the loaded documents in file name order.
func (s *Store) Documents() []*Document { return s.docs }

// Locales returns the loaded locales in file name order.
func (s *Store) Locales() []string {
	locales := make([]string, len(s.docs))
	for i, d := range s.docs {
		locales[i] = d.Locale
	}
	return locales
}

// Document returns the document for locale.
func (s *Store) Document(locale string) (*Document, error) {
	doc, ok := s.byLocale[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	return doc, nil
}

// Index builds the key index over all loaded documents.
func (s *Store) Index() []IndexEntry {
	return BuildIndex(s.docs, s.opts.Sort)
}

// GetValue returns the translation of key in locale. ok is false when the
// locale does not define the key.
func (s *Store) GetValue(locale, key string) (value string, ok bool, err error) {
	doc, err := s.Document(locale)
	if err != nil {
		return "", false, err
	}
	path, err := ParseKey(key)
	if err != nil {
		return "", false, err
	}
	v, ok, err := lookup(doc.root, path)
	if err != nil || !ok {
		return "", false, err
	}
	if _, isObj := v.(*Object); isObj {
		return "", false, &KeyError{Key: key, Err: ErrNotALeaf}
	}
	return valueText(v), true, nil
}

// SetValue stores value under key in locale and rewrites that locale's
// file. Missing intermediate objects are created.
func (s *Store) SetValue(locale, key, value string) error {
	return s.SetValues(key, map[string]string{locale: value})
}

// SetValues stores a value for key in each of the given locales. Every
// locale is validated before any document is modified.
func (s *Store) SetValues(key string, values map[string]string) error {
	path, err := ParseKey(key)
	if err != nil {
		return err
	}
	docs := make([]*Document, 0, len(values))
	for _, d := range s.docs {
		if _, ok := values[d.Locale]; ok {
			docs = append(docs, d)
		}
	}
	if len(docs) != len(values) {
		for locale := range values {
			if _, err := s.Document(locale); err != nil {
				return err
			}
		}
	}
	for _, d := range docs {
		if err := checkAssign(d.root, path); err != nil {
			return fmt.Errorf("%s: %w", d.Locale, err)
		}
	}

	var errs []error
	for _, d := range docs {
		err := s.commit(d, func(root *Object) bool {
			assign(root, path, values[d.Locale])
			return true
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Merge stores every entry in locale and rewrites its file once. All keys
// are validated before the document is modified. It returns how many keys
// were not defined before.
func (s *Store) Merge(locale string, entries []Entry) (added int, err error) {
	d, err := s.Document(locale)
	if err != nil {
		return 0, err
	}
	paths := make([]KeyPath, len(entries))
	leaves := make(map[string]bool, len(entries))
	parents := make(map[string]bool)
	for i, e := range entries {
		path, err := ParseKey(e.Key)
		if err != nil {
			return 0, err
		}
		if err := checkAssign(d.root, path); err != nil {
			return 0, err
		}
		paths[i] = path
		leaves[path.String()] = true
		for p := path.Parent(); len(p) > 0; p = p.Parent() {
			parents[p.String()] = true
		}
	}
	for _, path := range paths {
		if parents[path.String()] {
			return 0, &KeyError{Key: path.String(), Err: ErrNotALeaf}
		}
		for p := path.Parent(); len(p) > 0; p = p.Parent() {
			if leaves[p.String()] {
				return 0, &KeyError{Key: path.String(), Err: ErrNotAnObject}
			}
		}
	}
	if len(entries) == 0 {
		return 0, nil
	}

	counted := make(map[string]bool, len(paths))
	for _, path := range paths {
		if _, ok, _ := lookup(d.root, path); !ok && !counted[path.String()] {
			counted[path.String()] = true
			added++
		}
	}
	err = s.commit(d, func(root *Object) bool {
		for i, e := range entries {
			assign(root, paths[i], e.Value)
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// DeleteKey removes key from every locale, pruning parents left empty, and
// rewrites the files that changed. Locales without the key are untouched.
// A key naming a nested object removes the whole object. It returns the
// number of locales the key was removed from.
func (s *Store) DeleteKey(key string) (removed int, err error) {
	path, err := ParseKey(key)
	if err != nil {
		return 0, err
	}
	var errs []error
	for _, d := range s.docs {
		if _, ok, _ := lookup(d.root, path); !ok {
			continue
		}
		err := s.commit(d, func(root *Object) bool {
			return remove(root, path)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// RenameKey moves the value of oldKey to newKey in every locale that
// defines oldKey. An existing value at newKey is overwritten. Locales
// without oldKey are untouched.
func (s *Store) RenameKey(oldKey, newKey string) error {
	oldPath, err := ParseKey(oldKey)
	if err != nil {
		return err
	}
	newPath, err := ParseKey(newKey)
	if err != nil {
		return err
	}
	if oldPath.String() == newPath.String() {
		return nil
	}

	type move struct {
		doc   *Document
		value any
	}
	var moves []move
	for _, d := range s.docs {
		v, ok, err := lookup(d.root, oldPath)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Locale, err)
		}
		if !ok {
			continue
		}
		if _, isObj := v.(*Object); isObj {
			return fmt.Errorf("%s: %w", d.Locale, &KeyError{Key: oldKey, Err: ErrNotALeaf})
		}
		if err := checkAssign(d.root, newPath); err != nil {
			return fmt.Errorf("%s: %w", d.Locale, err)
		}
		moves = append(moves, move{doc: d, value: v})
	}

	var errs []error
	for _, m := range moves {
		err := s.commit(m.doc, func(root *Object) bool {
			assign(root, newPath, m.value)
			remove(root, oldPath)
			return true
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// commit applies change to d and rewrites its file when change reports a
// modification. If the write fails the document is restored, so memory
// never holds values that are not on disk.
func (s *Store) commit(d *Document, change func(root *Object) bool) error {
	backup := d.root.clone()
	if !change(d.root) {
		return nil
	}
	if err := s.persist(d); err != nil {
		d.root = backup
		return err
	}
	return nil
}

func (s *Store) persist(d *Document) error {
	if s.opts.Sort {
		d.root.SortKeys()
	}
	return d.WriteFile()
}

