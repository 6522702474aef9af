// Package notemeta keeps the metadata of Markdown notes in sync with their
// text.
//
// Notes carry metadata in two places: a YAML frontmatter block at the top of
// the file and `key:: value` lines in the body. notemeta parses both into one
// structure, lets callers query and edit it, and renders the edits back while
// leaving every other byte of the note alone.
//
// Features:
//
//   - **Two Scopes**: Frontmatter and inline entries live side by side and
//     are addressed with a MetadataType (Frontmatter, Inline or Any).
//   - **Minimal Rewrites**: Unchanged entries keep their original bytes, so
//     rendering an untouched note gives back the same text.
//   - **Consolidation**: Inline entries can be gathered into one block at the
//     top or bottom of the note.
//   - **Collections**: Load whole directories, filter them by name or
//     metadata and update every note at once.
//
// Usage:
//
//	c, err := notemeta.Open([]string{"./vault"}, notemeta.WithInclude("**/*.md"))
//	if err != nil {
//		return err
//	}
//	err = c.Filter(notemeta.Filter{HasMeta: []notemeta.MetaQuery{
//		{Key: "status", Values: []string{"todo"}, Type: notemeta.Inline},
//	}})
//	for _, n := range c.Notes() {
//		_ = n.Metadata.Set("status", []string{"done"}, notemeta.Inline)
//	}
//	err = c.UpdateAll(notemeta.Bottom, true, true)
package notemeta
