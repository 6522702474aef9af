package note

import (
	"github.com/aretw0/introspection"
)

// CollectionState exposes internal state for observability.
type CollectionState struct {
	Notes     int      `json:"notes"`
	Roots     []string `json:"roots"`
	Recursive bool     `json:"recursive"`
	Include   string   `json:"include,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Collection) State() any {
	return CollectionState{
		Notes:     len(c.notes),
		Roots:     c.Roots(),
		Recursive: c.opts.recursive,
		Include:   c.opts.include,
	}
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "collection"
}

var _ introspection.Introspectable = (*Collection)(nil)
var _ introspection.Component = (*Collection)(nil)
