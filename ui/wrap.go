package ui

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits s into lines of at most width runes, honouring embedded newlines.
// At most maxLines lines are returned; maxLines <= 0 means no limit.
func Wrap(s string, width, maxLines int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		for _, line := range wrapLine(para, width) {
			if maxLines > 0 && len(out) >= maxLines {
				return out
			}
			out = append(out, line)
		}
	}
	return out
}

func wrapLine(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	var out []string
	for utf8.RuneCountInString(s) > width {
		head, rest := takeRunes(s, width)
		out = append(out, strings.TrimRight(head, " "))
		s = strings.TrimLeft(rest, " ")
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

// Fit truncates s to at most n runes.
func Fit(s string, n int) string {
	head, _ := takeRunes(s, n)
	return head
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
