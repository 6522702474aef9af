// Package core holds the domain vocabulary shared by the metadata engine,
// the note orchestration layer and the storage adapters.
package core

import (
	"fmt"
	"strings"
)

// MetadataType tells where an entry lives inside a note.
type MetadataType int

const (
	// Frontmatter entries live in the delimited header block.
	Frontmatter MetadataType = iota + 1
	// Inline entries are `key:: value` lines in the body.
	Inline
	// Any selects both scopes. It is a query filter, never a stored type.
	Any
)

func (t MetadataType) String() string {
	switch t {
	case Frontmatter:
		return "frontmatter"
	case Inline:
		return "inline"
	case Any:
		return "any"
	default:
		return fmt.Sprintf("MetadataType(%d)", int(t))
	}
}

// Stored reports whether t names a concrete scope an entry can be stored in.
func (t MetadataType) Stored() bool {
	return t == Frontmatter || t == Inline
}

// Matches reports whether an entry of type stored is selected by the filter t.
func (t MetadataType) Matches(stored MetadataType) bool {
	return t == Any || t == stored
}

// ParseMetadataType converts a user supplied name into a MetadataType.
func ParseMetadataType(s string) (MetadataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frontmatter", "fm":
		return Frontmatter, nil
	case "inline":
		return Inline, nil
	case "any", "":
		return Any, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Placement controls where the consolidated inline block is written.
type Placement int

const (
	// PlacementBottom appends the block at the end of the document.
	PlacementBottom Placement = iota
	// PlacementTop inserts the block right after the frontmatter (or at the start).
	PlacementTop
)

func (p Placement) String() string {
	switch p {
	case PlacementTop:
		return "top"
	case PlacementBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// ParsePlacement converts "top" or "bottom" into a Placement.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return PlacementTop, nil
	case "bottom", "":
		return PlacementBottom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
}

// LineSpan is a half-open, zero based range of lines [Start, End) in the
// text an entry was parsed from.
type LineSpan struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the span.
func (s LineSpan) Len() int {
	return s.End - s.Start
}

func (s LineSpan) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Origin records whether an entry was read from text or created in memory.
// The zero value is a New origin.
type Origin struct {
	existing bool
	span     LineSpan
}

// NewOrigin returns the origin of an entry created programmatically.
func NewOrigin() Origin {
	return Origin{}
}

// ExistingOrigin returns the origin of an entry parsed from span.
func ExistingOrigin(span LineSpan) Origin {
	return Origin{existing: true, span: span}
}

// IsNew reports whether the entry never existed in the source text.
func (o Origin) IsNew() bool {
	return !o.existing
}

// Span returns the source location. ok is false for New origins.
func (o Origin) Span() (span LineSpan, ok bool) {
	return o.span, o.existing
}

func (o Origin) String() string {
	if !o.existing {
		return "new"
	}
	return "existing" + o.span.String()
}

// EventType represents the type of change observed on a note file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// ParseEventType converts a user supplied name ("create", "modify",
// "delete") into an EventType.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(strings.ToUpper(strings.TrimSpace(s))); t {
	case EventCreate, EventModify, EventDelete:
		return t, nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// Event represents a change to a note file on disk.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
