package synth

import (
	"regexp"
	"strings"
)

var (
	listMarker  = regexp.MustCompile(`^(?:[-*+•]+|\d+[.)]|[A-Za-z][.)])(?:\s+|$)`)
	headingMark = regexp.MustCompile(`^#{1,6}\s*`)
	slideLabel  = regexp.MustCompile(`(?i)^slide\s+\d+\s*[:.\-]\s*`)
)

// ParseTitles splits a model response into slide titles, one per non-empty line.
// Markdown list markers, heading marks, emphasis and surrounding quotes are removed.
func ParseTitles(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		if title := cleanTitle(line); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func cleanTitle(line string) string {
	s := strings.TrimSpace(line)
	s = headingMark.ReplaceAllString(s, "")
	s = listMarker.ReplaceAllString(s, "")
	s = slideLabel.ReplaceAllString(s, "")
	for _, mark := range []string{"**", "__", "`"} {
		s = strings.ReplaceAll(s, mark, "")
	}
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'“”`)
	return strings.TrimSpace(s)
}
