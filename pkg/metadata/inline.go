package metadata

import (
	"regexp"
	"strings"
)

// InlineSeparator sits between an inline key and its values.
const InlineSeparator = "::"

const inlineKeyChars = `[\p{L}\p{N}_\-/.]+`

var (
	inlinePattern    = regexp.MustCompile(`^(` + inlineKeyChars + `)::(.*)$`)
	inlineKeyPattern = regexp.MustCompile(`^` + inlineKeyChars + `$`)
)

// decodeInline recognizes a body line of the shape `key:: v1, v2`.
func decodeInline(line string) (key string, values []string, ok bool) {
	m := inlinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", nil, false
	}
	return m[1], splitValues(m[2]), true
}

// splitValues splits a comma separated list, trimming items and dropping
// empty ones.
func splitValues(raw string) []string {
	values := []string{}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// encodeInline serializes one entry as a bare inline line.
func encodeInline(key string, values []string) string {
	if len(values) == 0 {
		return key + InlineSeparator
	}
	return key + InlineSeparator + " " + strings.Join(values, ", ")
}

// fenceTracker follows fenced code blocks so their lines are never read as
// inline metadata.
type fenceTracker struct {
	marker string
}

// inside consumes line and reports whether it belongs to a fenced block,
// fence lines included.
func (f *fenceTracker) inside(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if f.marker != "" {
		closing := strings.TrimRight(trimmed, " \t")
		if strings.HasPrefix(closing, f.marker) && strings.Trim(closing, f.marker[:1]) == "" {
			f.marker = ""
		}
		return true
	}
	for _, fence := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, fence) {
			f.marker = fence
			return true
		}
	}
	return false
}
