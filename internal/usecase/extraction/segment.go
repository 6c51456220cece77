package extraction

import (
	"regexp"
	"strings"
)

const minClauseLength = 6

var (
	sentenceBoundaryRe = regexp.MustCompile(`[.!?]+\s+`)

	// Connector that chains a second assignment onto the same sentence:
	// "... and Ria, you will ...", "... and John will ...", "... and Sarah needs ...".
	// Without splitting on it, a start-anchored pattern only ever captures the
	// first assignee of a multi-assignment sentence.
	andNameRe = regexp.MustCompile(`(?i)\s+and\s+(\w+(?:\s+\w+)?)[,\s]+(?:you\s+)?(?:will|needs|should)`)

	leadingAndRe = regexp.MustCompile(`(?i)^and\s+`)
)

// segment splits a transcript into clause-sized units ready for extraction:
// first on terminal punctuation, then each sentence is further split at every
// "and Name will/needs/should" connector so each assignment gets its own
// clause. Clauses shorter than six characters after trimming are dropped.
func segment(transcript string) []string {
	sentences := sentenceBoundaryRe.Split(transcript, -1)

	clauses := make([]string, 0, len(sentences))
	for _, sent := range sentences {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		clauses = append(clauses, splitAssignments(sent)...)
	}

	kept := clauses[:0]
	for _, c := range clauses {
		if len(strings.TrimSpace(c)) >= minClauseLength {
			kept = append(kept, c)
		}
	}
	return kept
}

// splitAssignments splits a sentence at each assignment connector. The prefix
// before the first connector becomes its own clause; each connector-to-next
// span becomes a clause with its leading "and" stripped. Sentences without a
// connector pass through unchanged.
func splitAssignments(sent string) []string {
	matches := andNameRe.FindAllStringIndex(sent, -1)
	if len(matches) == 0 {
		return []string{sent}
	}

	parts := make([]string, 0, len(matches)+1)

	if prefix := strings.TrimSpace(sent[:matches[0][0]]); prefix != "" {
		parts = append(parts, prefix)
	}

	for i, m := range matches {
		end := len(sent)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		section := strings.TrimSpace(sent[m[0]:end])
		section = strings.TrimSpace(leadingAndRe.ReplaceAllString(section, ""))
		if section != "" {
			parts = append(parts, section)
		}
	}

	return parts
}

// noiseMarkers flag greetings, thanks and meeting open/close boilerplate.
// A clause carrying any of them is skipped before extraction.
var noiseMarkers = []string{
	"hello", "thank you", "end of", "starting", "yeah", "alright team", "let's go",
}

// isNoise reports whether a clause is discourse boilerplate with no
// assignment signal.
func isNoise(clause string) bool {
	lower := strings.ToLower(clause)
	for _, marker := range noiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
