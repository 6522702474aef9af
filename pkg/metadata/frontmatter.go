package metadata

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// block locates the frontmatter delimiters in the line arena.
type block struct {
	open  int
	close int
}

// findFrontmatter reports the frontmatter block of lines, if any. The block
// must start on the first line and be closed by a later delimiter line.
func findFrontmatter(lines []string) (block, bool) {
	if len(lines) == 0 || trimEOL(lines[0]) != Delimiter {
		return block{}, false
	}
	for i := 1; i < len(lines); i++ {
		if trimEOL(lines[i]) == Delimiter {
			return block{open: 0, close: i}, true
		}
	}
	return block{}, false
}

// frontmatterChunk is one top-level key with its continuation lines.
type frontmatterChunk struct {
	start, end int
}

// chunkFrontmatter groups the lines strictly between the delimiters.
// Lines that cannot start a chunk are skipped and stay unrecognized.
func chunkFrontmatter(lines []string, b block) []frontmatterChunk {
	var chunks []frontmatterChunk
	i := b.open + 1
	for i < b.close {
		if !startsChunk(trimEOL(lines[i])) {
			i++
			continue
		}
		end := chunkEnd(lines, i+1, b.close)
		chunks = append(chunks, frontmatterChunk{start: i, end: end})
		i = end
	}
	return chunks
}

// chunkEnd returns the end of the chunk whose continuation starts at from.
// Blank lines belong to the chunk only when an indented line follows them, as
// inside a block scalar; trailing blank lines stay outside.
func chunkEnd(lines []string, from, limit int) int {
	end := from
	for end < limit {
		line := trimEOL(lines[end])
		if continuesChunk(line) {
			end++
			continue
		}
		if strings.TrimSpace(line) != "" {
			break
		}
		next := end + 1
		for next < limit && strings.TrimSpace(trimEOL(lines[next])) == "" {
			next++
		}
		if next == limit || !continuesChunk(trimEOL(lines[next])) {
			break
		}
		end = next
	}
	return end
}

func startsChunk(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case ' ', '\t', '#':
		return false
	}
	return !isSequenceItem(line)
}

func continuesChunk(line string) bool {
	if line == "" {
		return false
	}
	return line[0] == ' ' || line[0] == '\t' || isSequenceItem(line)
}

// isSequenceItem matches a block sequence entry written at column zero.
func isSequenceItem(line string) bool {
	return line == "-" || strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "-\t")
}

// decodeFrontmatter decodes a single `key: value` chunk. ok is false when the
// chunk is not a one-key mapping holding nothing, a scalar or a list of scalars.
func decodeFrontmatter(chunk string) (key string, values []string, ok bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(chunk), &doc); err != nil {
		return "", nil, false
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return "", nil, false
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode || len(m.Content) != 2 {
		return "", nil, false
	}
	k, v := m.Content[0], m.Content[1]
	if k.Kind != yaml.ScalarNode || k.Value == "" {
		return "", nil, false
	}

	switch v.Kind {
	case yaml.ScalarNode:
		if v.Value == "" && v.Style == 0 {
			return k.Value, []string{}, true
		}
		return k.Value, []string{v.Value}, true
	case yaml.SequenceNode:
		values = make([]string, 0, len(v.Content))
		for _, item := range v.Content {
			if item.Kind != yaml.ScalarNode {
				return "", nil, false
			}
			values = append(values, item.Value)
		}
		return k.Value, values, true
	}
	return "", nil, false
}

// encodeFrontmatter serializes one entry into bare lines (no terminators):
// `key:` for no values, `key: v` for one, `key: [v1, v2]` for several.
func encodeFrontmatter(key string, values []string) ([]string, error) {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
	if len(values) == 0 {
		out, err := marshalNode(&yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			keyNode,
			{Kind: yaml.ScalarNode, Value: "x"},
		}})
		if err != nil {
			return nil, err
		}
		// Reuse the encoder's quoting of the key, then drop the placeholder.
		return []string{strings.TrimSuffix(out[0], " x")}, nil
	}

	var valueNode *yaml.Node
	if len(values) == 1 {
		valueNode = scalarNode(values[0])
	} else {
		valueNode = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range values {
			valueNode.Content = append(valueNode.Content, scalarNode(v))
		}
	}
	return marshalNode(&yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{keyNode, valueNode}})
}

func scalarNode(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	if v == "" {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func marshalNode(n *yaml.Node) ([]string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(n); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"), nil
}
