package shell

import (
	"strings"
)

const (
	// PipeSeparator splits a line into pipeline segments.
	PipeSeparator = " | "

	quoteChar  = '"'
	escapeChar = '\\'
	homeChar   = '~'
)

// Tokenize splits one pipeline segment into words. Input is scanned as bytes,
// so words that aren't valid UTF-8 pass through unchanged.
//
// Double quotes toggle quoting rather than delimiting: spaces inside quotes
// are kept and the quote characters are dropped. An unterminated quote runs to
// the end of the line. Words are never empty.
func Tokenize(segment string) []string {
	var (
		words  []string
		word   strings.Builder
		quoted bool
	)

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for i := 0; i < len(segment); i++ {
		switch ch := segment[i]; {
		case ch == quoteChar:
			flush()
			quoted = !quoted
		case ch == ' ' && !quoted:
			flush()
		default:
			word.WriteByte(ch)
		}
	}
	flush()

	return words
}

// Substitute replaces every unescaped ~ in line with home.
//
// A backslash escapes the next character and is itself removed, whatever that
// character is.
func Substitute(line, home string) string {
	var (
		out     strings.Builder
		escaped bool
	)

	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == escapeChar && !escaped:
			escaped = true
		case ch == homeChar && !escaped:
			out.WriteString(home)
		default:
			escaped = false
			out.WriteByte(ch)
		}
	}

	return out.String()
}

// SplitPipeline splits a substituted line into its pipeline segments, in
// order. Segments are trimmed of surrounding whitespace.
func SplitPipeline(line string) []string {
	segments := strings.Split(strings.TrimSpace(line), PipeSeparator)
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
	}
	return segments
}
