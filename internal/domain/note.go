package domain

import "strings"

// maxTitleLength is the maximum length, in runes, for the derived note
// title (truncated when displaying).
const maxTitleLength = 80

// Title derives a display title from note content: the first non-empty
// line, truncated. Returns "" for an empty note.
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > maxTitleLength {
			return string(runes[:maxTitleLength])
		}
		return line
	}
	return ""
}

// Stats summarizes note content for diagnostics and status display.
type Stats struct {
	Bytes int
	Lines int
}

// Summarize computes Stats for the given content.
func Summarize(content string) Stats {
	if content == "" {
		return Stats{}
	}
	return Stats{
		Bytes: len(content),
		Lines: strings.Count(content, "\n") + 1,
	}
}
