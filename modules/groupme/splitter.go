package groupme

import "strings"

// SplitMessage breaks text into segments of at most maxLen bytes, splitting
// on delim and reattaching it to every token. Text that already fits comes
// back as a single unmodified segment. Otherwise tokens are packed greedily:
// a token is appended to the current segment unless that would make the
// segment reach or exceed maxLen, in which case a fresh segment is started.
//
// Every emitted segment ends with delim, including the last one, so the
// concatenation of all segments is the delimiter-normalized source text. A
// lone token longer than maxLen is emitted as its own oversized segment; it
// is not split further.
func SplitMessage(text, delim string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	tokens := strings.Split(text, delim)
	segments := make([]string, 0, len(tokens))
	current := ""
	for _, token := range tokens {
		piece := token + delim
		if current != "" && len(current)+len(piece) >= maxLen {
			segments = append(segments, current)
			current = ""
		}
		current += piece
	}
	if current != "" {
		segments = append(segments, current)
	}
	return segments
}
