package agent

import "unicode"

// SplitSentences splits text at sentence boundaries: any whitespace run
// immediately following '.', '!' or '?'. The delimiter stays attached to
// the preceding sentence; inter-sentence whitespace is consumed.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	i := 0
	for i < len(runes) {
		c := runes[i]
		if c == '.' || c == '!' || c == '?' {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j > i+1 {
				sentences = append(sentences, string(runes[start:i+1]))
				start = j
				i = j
				continue
			}
		}
		i++
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}
