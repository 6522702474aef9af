package metadata

import "strings"

// splitLines breaks text into lines that keep their terminators, so that
// joining the slice reproduces text byte for byte.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// trimEOL strips the line terminator ("\n" or "\r\n").
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// eolOf returns the terminator of line, or "" for an unterminated last line.
func eolOf(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	}
	return ""
}

// lineWriter accumulates output lines and guarantees that a line is
// terminated before another one is written after it.
type lineWriter struct {
	lines []string
	eol   string
}

func (w *lineWriter) write(lines ...string) {
	for _, l := range lines {
		if n := len(w.lines); n > 0 && eolOf(w.lines[n-1]) == "" {
			w.lines[n-1] += w.eol
		}
		w.lines = append(w.lines, l)
	}
}

// terminated converts bare lines into lines ending with eol.
func terminated(bare []string, eol string) []string {
	out := make([]string, len(bare))
	for i, l := range bare {
		out[i] = l + eol
	}
	return out
}

func (w *lineWriter) String() string {
	return strings.Join(w.lines, "")
}
