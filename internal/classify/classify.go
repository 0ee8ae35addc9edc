// Package classify provides textual heuristics for categorizing candidate
// responses before they are sent to the evaluation oracle.
package classify

import "strings"

// DefaultMinWords is the word count below which an answer is considered too
// short to evaluate on its own.
const DefaultMinWords = 5

// uncertaintyMarkers are matched as substrings of the lower-cased response, so
// "not sure" also catches "i'm not sure about that".
var uncertaintyMarkers = []string{
	"i don't know",
	"not sure",
	"no idea",
	"i have no idea",
	"i'm not sure",
}

// IsEmpty reports whether the response contains no content at all, which is
// what the transcriber returns on silence or timeout.
func IsEmpty(text string) bool {
	return strings.TrimSpace(text) == ""
}

// IsUncertain reports whether the response expresses uncertainty instead of an
// actual answer.
func IsUncertain(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, marker := range uncertaintyMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// IsTooShort reports whether the response has fewer than minWords
// whitespace-delimited words. Non-positive minWords falls back to
// DefaultMinWords.
func IsTooShort(text string, minWords int) bool {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return len(strings.Fields(text)) < minWords
}
