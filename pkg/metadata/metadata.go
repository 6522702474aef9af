// Package metadata keeps the metadata of a note in sync with its text.
//
// A note carries two kinds of metadata: a YAML frontmatter block at the top
// of the document and `key:: value` lines scattered through the body. Parse
// builds a NoteMetadata that remembers where every entry came from; callers
// mutate it and Render writes the changes back, touching as few lines of the
// original text as possible.
//
//	md := metadata.Parse(text)
//	_ = md.Add("status", []string{"done"}, core.Inline)
//	out, err := md.Render(text, core.PlacementBottom, true)
package metadata

import (
	"slices"

	"github.com/aretw0/notemeta/pkg/core"
)

// Entry is a read-only snapshot of one metadata key.
type Entry struct {
	Key    string
	Values []string
	Type   core.MetadataType
	Origin core.Origin
}

// record is the mutable state behind an Entry.
type record struct {
	key    string
	values []string

	// Parse-time state. spans lists every occurrence in text order; the last
	// one is authoritative.
	existing bool
	origKey  string
	origVals []string
	spans    []core.LineSpan

	removed bool
}

func (r *record) dirty() bool {
	return r.key != r.origKey || !slices.Equal(r.values, r.origVals)
}

func (r *record) entry(t core.MetadataType) Entry {
	origin := core.NewOrigin()
	if r.existing {
		origin = core.ExistingOrigin(r.spans[len(r.spans)-1])
	}
	return Entry{
		Key:    r.key,
		Values: slices.Clone(r.values),
		Type:   t,
		Origin: origin,
	}
}

// scope is an insertion ordered set of records for one MetadataType.
// Removed records stay in order so Render knows which lines to drop.
type scope struct {
	order []*record
	byKey map[string]*record
}

func newScope() *scope {
	return &scope{byKey: make(map[string]*record)}
}

func (s *scope) get(key string) (*record, bool) {
	r, ok := s.byKey[key]
	return r, ok
}

func (s *scope) live() []*record {
	out := make([]*record, 0, len(s.byKey))
	for _, r := range s.order {
		if !r.removed {
			out = append(out, r)
		}
	}
	return out
}

func (s *scope) insert(r *record) {
	s.order = append(s.order, r)
	s.byKey[r.key] = r
}

// observe records an occurrence found while parsing. A repeated key keeps
// its first position and takes the values of the latest occurrence.
func (s *scope) observe(key string, values []string, span core.LineSpan) {
	if r, ok := s.byKey[key]; ok {
		r.values = values
		r.origVals = slices.Clone(values)
		r.spans = append(r.spans, span)
		return
	}
	s.insert(&record{
		key:      key,
		values:   values,
		existing: true,
		origKey:  key,
		origVals: slices.Clone(values),
		spans:    []core.LineSpan{span},
	})
}

// NoteMetadata is the structured metadata of one note, bound to the text it
// was parsed from. It is not safe for concurrent use.
type NoteMetadata struct {
	source string
	lines  []string

	fm    block
	hasFM bool

	// openFence is the marker of a code fence left open at the end of the
	// text, if any.
	openFence string

	frontmatter *scope
	inline      *scope
}

// Parse builds the metadata of text. Parsing never fails: lines that do not
// match either metadata shape are left alone.
func Parse(text string) *NoteMetadata {
	m := &NoteMetadata{
		source:      text,
		lines:       splitLines(text),
		frontmatter: newScope(),
		inline:      newScope(),
	}

	bodyStart := 0
	if b, ok := findFrontmatter(m.lines); ok {
		m.fm, m.hasFM = b, true
		bodyStart = b.close + 1
		for _, c := range chunkFrontmatter(m.lines, b) {
			raw := ""
			for _, l := range m.lines[c.start:c.end] {
				raw += trimEOL(l) + "\n"
			}
			key, values, ok := decodeFrontmatter(raw)
			if !ok {
				continue
			}
			m.frontmatter.observe(key, values, core.LineSpan{Start: c.start, End: c.end})
		}
	}

	var fence fenceTracker
	for i := bodyStart; i < len(m.lines); i++ {
		line := trimEOL(m.lines[i])
		if fence.inside(line) {
			continue
		}
		if key, values, ok := decodeInline(line); ok {
			m.inline.observe(key, values, core.LineSpan{Start: i, End: i + 1})
		}
	}
	m.openFence = fence.marker
	return m
}

// Source returns the text the metadata was parsed from.
func (m *NoteMetadata) Source() string {
	return m.source
}

func (m *NoteMetadata) scope(t core.MetadataType) *scope {
	switch t {
	case core.Frontmatter:
		return m.frontmatter
	case core.Inline:
		return m.inline
	}
	return nil
}

// scopes returns the stored scopes selected by t, frontmatter first.
func (m *NoteMetadata) scopes(t core.MetadataType) []*scope {
	switch t {
	case core.Frontmatter:
		return []*scope{m.frontmatter}
	case core.Inline:
		return []*scope{m.inline}
	case core.Any:
		return []*scope{m.frontmatter, m.inline}
	}
	return nil
}
