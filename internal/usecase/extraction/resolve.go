package extraction

import (
	"regexp"
	"strings"
)

// honorificRe strips titles that transcripts attach to mentions. Healthcare
// meetings in particular address people as "Dr. Smith" or "Nurse Johnson"
// while the roster carries the bare name.
var honorificRe = regexp.MustCompile(`^(dr\.|nurse|mr\.|ms\.|mrs\.)\s+`)

// resolveParticipant maps a free-text mention to a roster participant:
// exact full name, then first name, then last name, then fuzzy similarity
// over all full names with minSimilarity as the floor. Mentions below the
// floor resolve to nothing; the caller drops the candidate rather than
// emitting an unassigned item.
func resolveParticipant(mention string, idx *rosterIndex, minSimilarity float64) (Participant, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(mention))
	cleaned = honorificRe.ReplaceAllString(cleaned, "")
	if cleaned == "" {
		return Participant{}, false
	}

	if p, ok := idx.byFullName[cleaned]; ok {
		return p, true
	}
	if p, ok := idx.byFirstName[cleaned]; ok {
		return p, true
	}
	if p, ok := idx.byLastName[cleaned]; ok {
		return p, true
	}

	// Fuzzy pass recovers ASR misspellings ("Bria" for "Ria") and casual
	// attribution that the exact maps miss.
	var (
		best      Participant
		bestScore float64
	)
	for _, name := range idx.allNames {
		if score := similarityRatio(cleaned, name); score > bestScore {
			bestScore = score
			best = idx.byFullName[name]
		}
	}

	if bestScore >= minSimilarity {
		return best, true
	}

	return Participant{}, false
}
