package extraction

import (
	"regexp"
	"strings"
)

var (
	leadingConnectiveRe  = regexp.MustCompile(`(?i)^(and|so|or|then|also)\s+`)
	trailingConnectiveRe = regexp.MustCompile(`(?i)\s+(and|so|or|then)\s*$`)

	// A trailing "and Name will/needs/should ..." remainder means the
	// segmenter under-split; the fragment belongs to the next assignee.
	trailingAssignmentRe = regexp.MustCompile(`(?i)\s+and\s+\w+(?:\s+\w+)?(?:\s+will|\s+needs|\s+should).*$`)

	trailingPunctRe = regexp.MustCompile(`[.,;:!?]+$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// cleanTask normalizes raw captured task text: connective words at either
// edge, any trailing chained assignment, trailing punctuation, repeated
// whitespace, and immediate duplicate words (a common ASR stutter).
func cleanTask(raw string) string {
	task := strings.TrimSpace(raw)
	task = leadingConnectiveRe.ReplaceAllString(task, "")
	task = trailingConnectiveRe.ReplaceAllString(task, "")
	task = trailingAssignmentRe.ReplaceAllString(task, "")
	task = trailingPunctRe.ReplaceAllString(task, "")
	task = whitespaceRe.ReplaceAllString(task, " ")
	task = collapseRepeatedWords(task)
	return strings.TrimSpace(task)
}

// collapseRepeatedWords drops a word that immediately repeats the previous
// one, case-insensitively ("the the report" -> "the report").
func collapseRepeatedWords(task string) string {
	words := strings.Fields(task)
	if len(words) < 2 {
		return task
	}

	kept := words[:1]
	for _, w := range words[1:] {
		if strings.EqualFold(w, kept[len(kept)-1]) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// validTask decides whether a cleaned task may be emitted for the resolved
// assignee. It rejects tasks below the minimum length and, critically, tasks
// that still carry another participant's name: that means attribution bled
// across clauses and emitting the item would assign someone else's work.
func validTask(task string, assignee Participant, idx *rosterIndex, minLength int) bool {
	if len(task) < minLength {
		return false
	}
	return !containsOtherName(task, assignee, idx)
}

// containsOtherName reports whether the task mentions any roster participant
// other than the assignee, either as a full-name substring or as a bare
// first-name word token.
func containsOtherName(task string, assignee Participant, idx *rosterIndex) bool {
	taskLower := strings.ToLower(task)
	taskWords := strings.Fields(taskLower)
	assigneeLower := strings.ToLower(assignee.Name)

	for _, name := range idx.allNames {
		if name == assigneeLower {
			continue
		}

		if strings.Contains(taskLower, name) {
			return true
		}

		first := firstNameOf(name)
		for _, w := range taskWords {
			if w == first {
				return true
			}
		}
	}

	return false
}
