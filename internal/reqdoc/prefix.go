package reqdoc

import (
	"fmt"
	"strings"
)

// letters extracts the ASCII alphabetic characters of s, preserving order.
func letters(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// UniquePrefix computes the shortest unique uppercase letter-only prefix of
// name among siblings. Non-letter characters are ignored on both sides, so
// two names with identical letter sequences resolve to the same full-length
// prefix — an accepted ambiguity, not an error. A name without any letters
// yields the empty string.
func UniquePrefix(name string, siblings []string) string {
	own := letters(name)
	if own == "" {
		return ""
	}

	for n := 1; ; n++ {
		candidate := strings.ToUpper(own[:min(n, len(own))])

		conflicts := 0
		for _, other := range siblings {
			if other == name {
				continue
			}
			ol := letters(other)
			if ol == "" {
				continue
			}
			if strings.ToUpper(ol[:min(n, len(ol))]) == candidate {
				conflicts++
			}
		}

		if conflicts == 0 || n >= len(own) {
			return candidate
		}
	}
}

// ParseIndex splits a three-segment requirement index into its category
// prefix, chapter prefix and number. Anything other than exactly three
// dot-separated segments is malformed.
func ParseIndex(index string) (category, chapter, number string, err error) {
	parts := strings.Split(index, ".")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid index format: %s", index)
	}
	return parts[0], parts[1], parts[2], nil
}
