package translations

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a flattened key-value pair read from an import file.
type Entry struct {
	Key   string
	Value string
}

// MarshalYAML renders a document as nested YAML with two-space indentation,
// keeping the document's key order.
func MarshalYAML(d *Document) ([]byte, error) {
	node, err := objectNode(d.root)
	if err != nil {
		return nil, err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", d.Locale, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func objectNode(o *Object) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		var valNode *yaml.Node
		switch v := o.values[k].(type) {
		case *Object:
			child, err := objectNode(v)
			if err != nil {
				return nil, err
			}
			valNode = child
		case string:
			valNode = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
		case json.RawMessage:
			// JSON scalars and arrays are valid YAML flow values.
			var doc yaml.Node
			if err := yaml.Unmarshal(v, &doc); err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			valNode = doc.Content[0]
		default:
			return nil, fmt.Errorf("%s: unsupported value type %T", k, v)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// ParseYAMLEntries flattens a nested YAML mapping into dotted keys, in
// document order. Non-string scalars are returned in their YAML text form.
func ParseYAMLEntries(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	var entries []Entry
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		if doc.Content[0].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parsing YAML: top level is not a mapping")
		}
		flattenNode("", doc.Content[0], &entries)
	}
	return entries, nil
}

// ParseJSONEntries flattens a nested JSON object, such as another locale
// file, into dotted keys in document order. Flat objects with dotted keys
// are accepted too.
func ParseJSONEntries(data []byte) ([]Entry, error) {
	root, err := ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	var entries []Entry
	walkObject(nil, root, false, func(path KeyPath, v any) {
		entries = append(entries, Entry{Key: path.String(), Value: valueText(v)})
	})
	return entries, nil
}

func flattenNode(prefix string, node *yaml.Node, entries *[]Entry) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		key := keyNode.Value
		if prefix != "" {
			key = prefix + "." + key
		}
		switch valNode.Kind {
		case yaml.MappingNode:
			flattenNode(key, valNode, entries)
		case yaml.ScalarNode:
			*entries = append(*entries, Entry{Key: key, Value: valNode.Value})
		}
	}
}

// ParseFlatEntries reads "key=value" or "key: value" lines. Blank lines,
// comments and lines without a valid key are skipped.
func ParseFlatEntries(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var entries []Entry
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		var key, value string
		if idx := strings.Index(trimmed, ": "); idx > 0 {
			if _, err := ParseKey(trimmed[:idx]); err == nil && !strings.ContainsAny(trimmed[:idx], " =") {
				key = trimmed[:idx]
				value = stripYAMLQuotes(trimmed[idx+2:])
			}
		}
		if key == "" {
			if idx := strings.Index(trimmed, "="); idx > 0 {
				if _, err := ParseKey(trimmed[:idx]); err == nil && !strings.Contains(trimmed[:idx], " ") {
					key = trimmed[:idx]
					value = trimmed[idx+1:]
				}
			}
		}
		if key == "" {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return entries, nil
}

// stripYAMLQuotes removes outer YAML quotes from a value string.
func stripYAMLQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, "''", "'")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `\\`, `\`)
		return inner
	}
	return s
}

// WriteFlat writes the leaves of a document as sorted "key=value" lines.
func WriteFlat(w io.Writer, d *Document) error {
	flat := Flatten(d)
	for _, k := range SortedKeys(flat) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, flat[k]); err != nil {
			return err
		}
	}
	return nil
}
