package metadata

import (
	"fmt"

	"github.com/aretw0/notemeta/pkg/core"
)

// Render writes the current entries into text and returns the result.
//
// text must be the exact text the metadata was parsed from, otherwise the
// recorded line spans are meaningless and core.ErrSourceMismatch is returned.
//
// Frontmatter entries are rewritten inside the existing block (created at the
// top when missing, removed when every entry it held was removed). Inline
// entries are rewritten on their own line when inplace is true; otherwise
// their lines are removed and every inline entry is written as one
// consolidated block at placement. New inline entries always go to that
// block. Unchanged entries keep their original bytes, so rendering an
// unmodified NoteMetadata in place returns text unchanged.
func (m *NoteMetadata) Render(text string, placement core.Placement, inplace bool) (string, error) {
	if text != m.source {
		return "", core.ErrSourceMismatch
	}
	if placement != core.PlacementTop && placement != core.PlacementBottom {
		return "", fmt.Errorf("%w: %s", core.ErrInvalidPlacement, placement)
	}

	eol := "\n"
	if len(m.lines) > 0 && eolOf(m.lines[0]) == "\r\n" {
		eol = "\r\n"
	}

	p := newPlan(m.lines, eol)
	header, err := m.planFrontmatter(p)
	if err != nil {
		return "", err
	}
	consolidated := m.planInline(p, inplace)

	w := &lineWriter{eol: eol}
	bodyStart := 0
	if m.hasFM {
		p.emit(w, 0, m.fm.close+1)
		bodyStart = m.fm.close + 1
	} else {
		w.write(header...)
	}
	if placement == core.PlacementTop {
		w.write(consolidated...)
	}
	p.emit(w, bodyStart, len(m.lines))
	if placement == core.PlacementBottom && len(consolidated) > 0 {
		if m.openFence != "" {
			w.write(m.openFence + eol)
		}
		w.write(consolidated...)
	}
	return w.String(), nil
}

// planFrontmatter schedules the frontmatter edits. It returns the lines of a
// new block when the text has none and entries exist.
func (m *NoteMetadata) planFrontmatter(p *plan) ([]string, error) {
	live := m.frontmatter.live()
	if !m.hasFM {
		if len(live) == 0 {
			return nil, nil
		}
		header := []string{Delimiter + p.eol}
		for _, r := range live {
			enc, err := encodeFrontmatter(r.key, r.values)
			if err != nil {
				return nil, fmt.Errorf("encode frontmatter %q: %w", r.key, err)
			}
			header = append(header, terminated(enc, p.eol)...)
		}
		return append(header, Delimiter+p.eol), nil
	}

	if len(live) == 0 && m.frontmatterHadEntries() {
		p.drop(core.LineSpan{Start: m.fm.open, End: m.fm.close + 1})
		return nil, nil
	}

	var added []string
	for _, r := range m.frontmatter.order {
		switch {
		case r.removed:
			if r.existing {
				p.dropAll(r.spans)
			}
		case !r.existing:
			enc, err := encodeFrontmatter(r.key, r.values)
			if err != nil {
				return nil, fmt.Errorf("encode frontmatter %q: %w", r.key, err)
			}
			added = append(added, terminated(enc, p.eol)...)
		case r.dirty():
			enc, err := encodeFrontmatter(r.key, r.values)
			if err != nil {
				return nil, fmt.Errorf("encode frontmatter %q: %w", r.key, err)
			}
			p.rewrite(r.spans, terminated(enc, p.eol))
		}
	}
	p.insertBefore(m.fm.close, added)
	return nil, nil
}

func (m *NoteMetadata) frontmatterHadEntries() bool {
	for _, r := range m.frontmatter.order {
		if r.existing {
			return true
		}
	}
	return false
}

// planInline schedules inline edits and returns the consolidated block.
func (m *NoteMetadata) planInline(p *plan, inplace bool) []string {
	var consolidated []string
	for _, r := range m.inline.order {
		if r.removed {
			if r.existing {
				p.dropAll(r.spans)
			}
			continue
		}
		line := encodeInline(r.key, r.values) + p.eol
		if !r.existing || !inplace {
			if r.existing {
				p.dropAll(r.spans)
			}
			consolidated = append(consolidated, line)
			continue
		}
		if r.dirty() {
			p.rewrite(r.spans, []string{line})
		}
	}
	return consolidated
}

// plan holds per-line decisions against the original line arena.
type plan struct {
	lines   []string
	eol     string
	dropped []bool
	replace map[int][]string
	before  map[int][]string
}

func newPlan(lines []string, eol string) *plan {
	return &plan{
		lines:   lines,
		eol:     eol,
		dropped: make([]bool, len(lines)),
		replace: make(map[int][]string),
		before:  make(map[int][]string),
	}
}

func (p *plan) drop(span core.LineSpan) {
	for i := span.Start; i < span.End; i++ {
		p.dropped[i] = true
	}
}

func (p *plan) dropAll(spans []core.LineSpan) {
	for _, s := range spans {
		p.drop(s)
	}
}

// rewrite replaces the last span with lines and drops the earlier ones.
func (p *plan) rewrite(spans []core.LineSpan, lines []string) {
	last := spans[len(spans)-1]
	p.dropAll(spans[:len(spans)-1])
	p.drop(last)
	if last.End == len(p.lines) && eolOf(p.lines[last.End-1]) == "" && len(lines) > 0 {
		// Keep an unterminated final line unterminated.
		n := len(lines) - 1
		lines[n] = trimEOL(lines[n])
	}
	p.replace[last.Start] = lines
}

func (p *plan) insertBefore(i int, lines []string) {
	p.before[i] = append(p.before[i], lines...)
}

func (p *plan) emit(w *lineWriter, from, to int) {
	for i := from; i < to; i++ {
		w.write(p.before[i]...)
		if rep, ok := p.replace[i]; ok {
			w.write(rep...)
			continue
		}
		if !p.dropped[i] {
			w.write(p.lines[i])
		}
	}
}
