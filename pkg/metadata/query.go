package metadata

import (
	"slices"

	"github.com/aretw0/notemeta/pkg/core"
)

// Has reports whether key exists in the scope selected by t and holds every
// value in values. An empty values list only checks for the key. With
// core.Any the condition must hold within a single scope.
func (m *NoteMetadata) Has(key string, values []string, t core.MetadataType) bool {
	for _, s := range m.scopes(t) {
		r, ok := s.get(key)
		if !ok {
			continue
		}
		if containsAll(r.values, values) {
			return true
		}
	}
	return false
}

func containsAll(have, want []string) bool {
	for _, v := range want {
		if !slices.Contains(have, v) {
			return false
		}
	}
	return true
}

// Get returns the entry for key. With core.Any frontmatter wins over inline.
func (m *NoteMetadata) Get(key string, t core.MetadataType) (Entry, bool) {
	for _, tt := range storedTypes(t) {
		if r, ok := m.scope(tt).get(key); ok {
			return r.entry(tt), true
		}
	}
	return Entry{}, false
}

// Entries lists the entries selected by t in insertion order, frontmatter
// first.
func (m *NoteMetadata) Entries(t core.MetadataType) []Entry {
	var out []Entry
	for _, tt := range storedTypes(t) {
		for _, r := range m.scope(tt).live() {
			out = append(out, r.entry(tt))
		}
	}
	return out
}

// Keys lists the keys selected by t. A key present in both scopes appears
// once when t is core.Any.
func (m *NoteMetadata) Keys(t core.MetadataType) []string {
	var keys []string
	for _, e := range m.Entries(t) {
		if !slices.Contains(keys, e.Key) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Len returns the number of entries selected by t.
func (m *NoteMetadata) Len(t core.MetadataType) int {
	n := 0
	for _, s := range m.scopes(t) {
		n += len(s.byKey)
	}
	return n
}

// ToMap flattens the entries of one stored scope into a map, mainly for
// JSON or YAML output.
func (m *NoteMetadata) ToMap(t core.MetadataType) map[string][]string {
	out := make(map[string][]string)
	if s := m.scope(t); s != nil {
		for _, r := range s.live() {
			out[r.key] = slices.Clone(r.values)
		}
	}
	return out
}

func storedTypes(t core.MetadataType) []core.MetadataType {
	switch t {
	case core.Frontmatter, core.Inline:
		return []core.MetadataType{t}
	case core.Any:
		return []core.MetadataType{core.Frontmatter, core.Inline}
	}
	return nil
}
