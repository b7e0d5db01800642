package translations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Object is a JSON object that remembers the order of its keys. Values are
// either a string, a nested *Object, or a json.RawMessage holding any other
// JSON value (numbers, booleans, null, arrays) that is written back as-is.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Keys returns the keys in their current order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// SortKeys orders the keys of o and of every nested object ascending.
func (o *Object) SortKeys() {
	sort.Strings(o.keys)
	for _, v := range o.values {
		if child, ok := v.(*Object); ok {
			child.SortKeys()
		}
	}
}

// clone returns a deep copy of o. Raw values are shared; they are never
// modified in place.
func (o *Object) clone() *Object {
	c := &Object{keys: append([]string(nil), o.keys...), values: make(map[string]any, len(o.values))}
	for k, v := range o.values {
		if child, ok := v.(*Object); ok {
			v = child.clone()
		}
		c.values[k] = v
	}
	return c
}

// addressable reports whether key can appear as a segment of a dotted
// key. Empty keys and keys holding a dot are kept in the file but cannot
// be addressed.
func addressable(key string) bool {
	return key != "" && !strings.Contains(key, ".")
}

// Document is a single locale file, e.g. "fr.json" for locale "fr".
type Document struct {
	Locale string
	Path   string
	root   *Object
}

// NewDocument returns an empty document for locale stored at path.
func NewDocument(locale, path string) *Document {
	return &Document{Locale: locale, Path: path, root: NewObject()}
}

// Root returns the top-level object.
func (d *Document) Root() *Object { return d.root }

// localeName derives the locale from a file name: "pt-BR.json" -> "pt-BR".
func localeName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ReadDocument loads and parses a locale file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Document{Locale: localeName(path), Path: path, root: root}, nil
}

// WriteFile overwrites the document's file with its current contents.
func (d *Document) WriteFile() error {
	data, err := MarshalObject(d.root)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", d.Path, err)
	}
	if err := os.WriteFile(d.Path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", d.Path, err)
	}
	return nil
}

// Walk calls fn for every leaf in document order, depth first. Keys that
// cannot be addressed, and everything below them, are skipped.
func (d *Document) Walk(fn func(path KeyPath, value any)) {
	walkObject(nil, d.root, true, fn)
}

// Unaddressable returns the paths of object keys that are empty or contain
// a dot, in document order. Their contents are not visited.
func (d *Document) Unaddressable() []string {
	var bad []string
	var visit func(prefix KeyPath, o *Object)
	visit = func(prefix KeyPath, o *Object) {
		for _, k := range o.keys {
			path := append(append(KeyPath(nil), prefix...), k)
			if !addressable(k) {
				bad = append(bad, fmt.Sprintf("%q", []string(path)))
				continue
			}
			if child, ok := o.values[k].(*Object); ok {
				visit(path, child)
			}
		}
	}
	visit(nil, d.root)
	return bad
}

func walkObject(prefix KeyPath, o *Object, strict bool, fn func(KeyPath, any)) {
	for _, k := range o.keys {
		if strict && !addressable(k) {
			continue
		}
		path := append(append(KeyPath(nil), prefix...), k)
		if child, ok := o.values[k].(*Object); ok {
			walkObject(path, child, strict, fn)
			continue
		}
		fn(path, o.values[k])
	}
}

// ParseObject decodes a JSON object keeping its key order. Blank input is
// treated as an empty object so that a freshly created locale file can be
// picked up before anything is written to it.
func ParseObject(data []byte) (*Object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewObject(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	o, err := readObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return o, nil
}

func readObject(dec *json.Decoder) (*Object, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected {, got %v", t)
	}

	o := NewObject()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading value for %q: %w", key, err)
		}
		value, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		o.Set(key, value)
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return o, nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing value")
	}
	switch raw[0] {
	case '{':
		return readObject(json.NewDecoder(bytes.NewReader(raw)))
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return json.RawMessage(buf.Bytes()), nil
	}
}

// MarshalObject renders o as JSON indented by two spaces, followed by a
// newline. Key order is preserved and HTML characters are not escaped.
func MarshalObject(o *Object) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, o, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, o *Object, indent string) error {
	if o.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	inner := indent + "  "
	buf.WriteString("{\n")
	for i, k := range o.keys {
		buf.WriteString(inner)
		if err := writeString(buf, k); err != nil {
			return err
		}
		buf.WriteString(": ")
		switch v := o.values[k].(type) {
		case *Object:
			if err := writeObject(buf, v, inner); err != nil {
				return err
			}
		case string:
			if err := writeString(buf, v); err != nil {
				return err
			}
		case json.RawMessage:
			if err := json.Indent(buf, v, inner, "  "); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		default:
			return fmt.Errorf("%s: unsupported value type %T", k, v)
		}
		if i < len(o.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// valueText returns the text shown for a leaf: strings as-is, other JSON
// values in their compact JSON form.
func valueText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.RawMessage:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
