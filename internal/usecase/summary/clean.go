package summary

import (
	"regexp"
	"strings"
)

var fillerRe = regexp.MustCompile(`(?i)\b(um|uh|er|ah)\b`)

// asrFixes expands spellings speech-to-text commonly emits for spoken forms.
var asrFixes = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bgonna\b`), "going to"},
	{regexp.MustCompile(`(?i)\bwanna\b`), "want to"},
	{regexp.MustCompile(`(?i)\bgotta\b`), "got to"},
}

// cleanTranscript normalizes whitespace, strips filler words, and applies
// common ASR spelling fixes.
func cleanTranscript(transcript string) string {
	cleaned := strings.Join(strings.Fields(transcript), " ")
	cleaned = fillerRe.ReplaceAllString(cleaned, "")
	for _, fix := range asrFixes {
		cleaned = fix.re.ReplaceAllString(cleaned, fix.replacement)
	}
	// Filler removal can leave doubled spaces or space before punctuation.
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.ReplaceAll(cleaned, " ,", ",")
	cleaned = strings.ReplaceAll(cleaned, " .", ".")
	return strings.TrimSpace(cleaned)
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks a cleaned transcript into trimmed, non-empty sentences.
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
