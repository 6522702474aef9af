package note

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notemeta/pkg/core"
)

// MetaQuery is one metadata condition, evaluated with NoteMetadata.Has.
type MetaQuery struct {
	Key    string
	Values []string
	Type   core.MetadataType
}

// Filter narrows a collection. Every non-zero field must hold (AND).
type Filter struct {
	// StartsWith and EndsWith test the file name.
	StartsWith string
	EndsWith   string
	// Pattern is a regular expression that must match at the start of the
	// file name.
	Pattern string
	// Glob is a doublestar pattern matched against the note's path relative
	// to the directory it was loaded from.
	Glob    string
	HasMeta []MetaQuery
}

// matcher is a compiled Filter.
type matcher struct {
	f       Filter
	pattern *regexp.Regexp
}

func (f Filter) compile() (*matcher, error) {
	m := &matcher{f: f}
	if f.Pattern != "" {
		re, err := regexp.Compile(`^(?:` + f.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", f.Pattern, err)
		}
		m.pattern = re
	}
	if f.Glob != "" && !doublestar.ValidatePattern(f.Glob) {
		return nil, fmt.Errorf("invalid filter glob %q", f.Glob)
	}
	return m, nil
}

func (m *matcher) match(n *Note) bool {
	name := n.Name()
	if m.f.StartsWith != "" && !strings.HasPrefix(name, m.f.StartsWith) {
		return false
	}
	if m.f.EndsWith != "" && !strings.HasSuffix(name, m.f.EndsWith) {
		return false
	}
	if m.pattern != nil && !m.pattern.MatchString(name) {
		return false
	}
	if m.f.Glob != "" {
		if ok, err := doublestar.Match(m.f.Glob, n.RelPath()); err != nil || !ok {
			return false
		}
	}
	for _, q := range m.f.HasMeta {
		if !n.Metadata.Has(q.Key, q.Values, q.Type) {
			return false
		}
	}
	return true
}

// Match reports whether n passes f.
func (f Filter) Match(n *Note) (bool, error) {
	m, err := f.compile()
	if err != nil {
		return false, err
	}
	return m.match(n), nil
}

// Filter keeps only the notes that pass f, preserving their order.
func (c *Collection) Filter(f Filter) error {
	m, err := f.compile()
	if err != nil {
		return err
	}
	kept := c.notes[:0]
	for _, n := range c.notes {
		if m.match(n) {
			kept = append(kept, n)
		}
	}
	clear(c.notes[len(kept):])
	c.notes = kept
	return nil
}
