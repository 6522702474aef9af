package metadata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/notemeta/pkg/core"
)

// Add appends values to key in scope t, skipping values already present.
// The key is created as a new entry when missing. t must be a stored type.
func (m *NoteMetadata) Add(key string, values []string, t core.MetadataType) error {
	s, err := m.storedScope(key, t)
	if err != nil {
		return err
	}
	values, err = normalize(values, t)
	if err != nil {
		return err
	}
	if r, ok := s.get(key); ok {
		for _, v := range values {
			if !slices.Contains(r.values, v) {
				r.values = append(r.values, v)
			}
		}
		return nil
	}
	s.insert(&record{key: key, values: dedupe(values)})
	return nil
}

// Set replaces the values of key in scope t, creating the key when missing.
func (m *NoteMetadata) Set(key string, values []string, t core.MetadataType) error {
	s, err := m.storedScope(key, t)
	if err != nil {
		return err
	}
	values, err = normalize(values, t)
	if err != nil {
		return err
	}
	values = dedupe(values)
	if r, ok := s.get(key); ok {
		r.values = values
		return nil
	}
	s.insert(&record{key: key, values: values})
	return nil
}

// Remove deletes values from key in every scope selected by t. With no
// values the key itself is removed. It reports whether anything matched.
func (m *NoteMetadata) Remove(key string, values []string, t core.MetadataType) bool {
	found := false
	for _, s := range m.scopes(t) {
		r, ok := s.get(key)
		if !ok {
			continue
		}
		found = true
		if len(values) == 0 {
			r.removed = true
			delete(s.byKey, key)
			continue
		}
		r.values = slices.DeleteFunc(slices.Clone(r.values), func(v string) bool {
			return slices.Contains(values, v)
		})
	}
	return found
}

// Rename renames oldKey to newKey in every scope selected by t, keeping the
// entry's position. It fails with core.ErrKeyExists if newKey is taken in a
// scope that holds oldKey, core.ErrInvalidKey if newKey cannot be written
// in such a scope, and core.ErrKeyNotFound if no scope holds oldKey.
func (m *NoteMetadata) Rename(oldKey, newKey string, t core.MetadataType) error {
	if newKey == "" {
		return core.ErrEmptyKey
	}
	var targets []*scope
	for _, tt := range storedTypes(t) {
		s := m.scope(tt)
		if _, ok := s.get(oldKey); !ok {
			continue
		}
		if err := checkKey(newKey, tt); err != nil {
			return fmt.Errorf("rename %q: %w", oldKey, err)
		}
		if _, taken := s.get(newKey); taken && newKey != oldKey {
			return fmt.Errorf("rename %q to %q: %w", oldKey, newKey, core.ErrKeyExists)
		}
		targets = append(targets, s)
	}
	if len(targets) == 0 {
		return fmt.Errorf("rename %q: %w", oldKey, core.ErrKeyNotFound)
	}
	for _, s := range targets {
		r := s.byKey[oldKey]
		delete(s.byKey, oldKey)
		r.key = newKey
		s.byKey[newKey] = r
	}
	return nil
}

// Move relocates key into scope to, taking it from the other stored scope.
// The values are merged into an existing entry of the target scope.
func (m *NoteMetadata) Move(key string, to core.MetadataType) error {
	if !to.Stored() {
		return fmt.Errorf("move %q to %s: %w", key, to, core.ErrInvalidType)
	}
	from := core.Inline
	if to == core.Inline {
		from = core.Frontmatter
	}
	r, ok := m.scope(from).get(key)
	if !ok {
		return fmt.Errorf("move %q from %s: %w", key, from, core.ErrKeyNotFound)
	}
	// Validate against the target before the source entry is dropped.
	if err := checkKey(key, to); err != nil {
		return fmt.Errorf("move %q to %s: %w", key, to, err)
	}
	values, err := normalize(r.values, to)
	if err != nil {
		return fmt.Errorf("move %q to %s: %w", key, to, err)
	}
	m.Remove(key, nil, from)
	return m.Add(key, values, to)
}

func (m *NoteMetadata) storedScope(key string, t core.MetadataType) (*scope, error) {
	if key == "" {
		return nil, core.ErrEmptyKey
	}
	if !t.Stored() {
		return nil, fmt.Errorf("%q: %w: %s", key, core.ErrInvalidType, t)
	}
	if err := checkKey(key, t); err != nil {
		return nil, err
	}
	return m.scope(t), nil
}

// checkKey rejects inline keys that would not parse back as an inline entry.
// Frontmatter keys are quoted by the encoder as needed.
func checkKey(key string, t core.MetadataType) error {
	if t == core.Inline && !inlineKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q is not usable as an inline key", core.ErrInvalidKey, key)
	}
	return nil
}

// normalize brings inline values into the form they parse back to. Inline
// entries live on one line, so values holding a line break are rejected.
func normalize(values []string, t core.MetadataType) ([]string, error) {
	if t != core.Inline {
		return slices.Clone(values), nil
	}
	for _, v := range values {
		if strings.ContainsAny(v, "\r\n") {
			return nil, fmt.Errorf("%w: %q spans several lines", core.ErrInvalidValue, v)
		}
	}
	return splitValues(strings.Join(values, ",")), nil
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
