package translations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyKey is returned for a blank translation key.
	ErrEmptyKey = errors.New("translation key is empty")
	// ErrEmptySegment is returned for keys with leading, trailing or
	// adjacent dots.
	ErrEmptySegment = errors.New("translation key has an empty segment")
	// ErrNotAnObject is returned when a key path descends through a leaf.
	ErrNotAnObject = errors.New("cannot descend into a translated value")
	// ErrNotALeaf is returned when a value would replace a nested object.
	ErrNotALeaf = errors.New("key holds nested translations")
	// ErrUnknownLocale is returned for a locale with no loaded file.
	ErrUnknownLocale = errors.New("unknown locale")
)

// KeyError reports a problem with a specific translation key.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

// KeyPath is a dotted translation key split into its segments.
type KeyPath []string

// ParseKey splits a dotted key such as "home.title" into its segments.
func ParseKey(key string) (KeyPath, error) {
	if strings.TrimSpace(key) == "" {
		return nil, &KeyError{Key: key, Err: ErrEmptyKey}
	}
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return nil, &KeyError{Key: key, Err: ErrEmptySegment}
		}
	}
	return KeyPath(parts), nil
}

func (p KeyPath) String() string {
	return strings.Join(p, ".")
}

// Parent returns the path without its last segment.
func (p KeyPath) Parent() KeyPath {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Leaf returns the last segment.
func (p KeyPath) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether p lies at or below prefix.
func (p KeyPath) HasPrefix(prefix KeyPath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}
