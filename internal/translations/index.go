package translations

import (
	"sort"
	"strings"
)

// IndexEntry is one distinct translation key across all locales.
type IndexEntry struct {
	Key     string   `json:"key"`
	Path    KeyPath  `json:"-"`
	Locales []string `json:"locales"`
	Missing []string `json:"missing,omitempty"`
}

// Complete reports whether every locale defines the key.
func (e IndexEntry) Complete() bool { return len(e.Missing) == 0 }

// BuildIndex collects every key that holds a value in at least one
// document, noting which locales define it. Documents are visited in the
// order given. With sorted set the entries are ordered by key; otherwise
// they keep the order in which keys were first seen.
func BuildIndex(docs []*Document, sorted bool) []IndexEntry {
	var entries []IndexEntry
	pos := make(map[string]int)
	for _, d := range docs {
		d.Walk(func(path KeyPath, _ any) {
			key := path.String()
			i, seen := pos[key]
			if !seen {
				i = len(entries)
				pos[key] = i
				entries = append(entries, IndexEntry{Key: key, Path: path})
			}
			entries[i].Locales = append(entries[i].Locales, d.Locale)
		})
	}

	for i := range entries {
		holders := make(map[string]bool, len(entries[i].Locales))
		for _, l := range entries[i].Locales {
			holders[l] = true
		}
		for _, d := range docs {
			if !holders[d.Locale] {
				entries[i].Missing = append(entries[i].Missing, d.Locale)
			}
		}
	}

	if sorted {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Key < entries[j].Key
		})
	}
	return entries
}

// TreeNode is a node of the key tree shown to users. Branches group keys
// by their dotted prefix; leaves carry their index entry.
type TreeNode struct {
	Name     string      `json:"name"`
	Key      string      `json:"key"`
	Entry    *IndexEntry `json:"entry,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node is a translation key rather than a group.
func (n *TreeNode) IsLeaf() bool { return n.Entry != nil }

// BuildTree groups index entries into a prefix tree, keeping entry order.
// A key that is a leaf in one locale and a group in another yields a node
// with both an entry and children.
func BuildTree(entries []IndexEntry) []*TreeNode {
	root := &TreeNode{}
	children := map[*TreeNode]map[string]*TreeNode{}
	for i := range entries {
		e := &entries[i]
		cur := root
		for depth, seg := range e.Path {
			byName := children[cur]
			if byName == nil {
				byName = make(map[string]*TreeNode)
				children[cur] = byName
			}
			next, ok := byName[seg]
			if !ok {
				next = &TreeNode{Name: seg, Key: e.Path[:depth+1].String()}
				byName[seg] = next
				cur.Children = append(cur.Children, next)
			}
			cur = next
		}
		cur.Entry = e
	}
	return root.Children
}

// Flatten returns the leaves of a document keyed by dotted path.
func Flatten(d *Document) map[string]string {
	result := make(map[string]string)
	d.Walk(func(path KeyPath, v any) {
		result[path.String()] = valueText(v)
	})
	return result
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilterPrefix returns the entries at or below the dotted prefix.
func FilterPrefix(entries []IndexEntry, prefix string) []IndexEntry {
	if prefix == "" {
		return entries
	}
	var out []IndexEntry
	for _, e := range entries {
		if e.Key == prefix || strings.HasPrefix(e.Key, prefix+".") {
			out = append(out, e)
		}
	}
	return out
}
