package deck

import (
	"strings"
	"unicode/utf8"
)

// fragmentSeparator splits slide bodies into paragraphs.
const fragmentSeparator = ". "

// BodyFragments splits a slide body into the paragraphs shown on the slide.
// The body is split on ". ", each fragment is trimmed, and a period is added
// to fragments that do not already end in terminal punctuation. Empty
// fragments are dropped.
func BodyFragments(body string) []string {
	raw := strings.Split(body, fragmentSeparator)
	out := make([]string, 0, len(raw))
	for _, frag := range raw {
		frag = strings.TrimSpace(frag)
		if frag == "" || frag == "." {
			continue
		}
		if !endsWithTerminal(frag) {
			frag += "."
		}
		out = append(out, frag)
	}
	return out
}

func endsWithTerminal(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	switch r {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	default:
		return false
	}
}
