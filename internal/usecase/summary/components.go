package summary

import (
	"regexp"
	"strings"

	"github.com/meetwise/meetwise/internal/usecase/extraction"
)

var (
	assignmentKeywords = []string{"will be doing", "responsible for", "assigned to", "will do", "will handle"}
	decisionKeywords   = []string{"decided", "agreed", "concluded", "determined"}
	importantKeywords  = []string{"will be doing", "responsible for", "assigned", "will handle", "need to", "should"}
	skipPhrases        = []string{"hello", "thank you", "end of our meeting", "starting with our meeting"}
)

// commonCapitalized are sentence-leading words the name heuristic must ignore.
var commonCapitalized = map[string]struct{}{
	"Hello": {}, "This": {}, "That": {}, "The": {}, "We": {}, "You": {},
	"They": {}, "So": {}, "Now": {}, "Thank": {}, "Thanks": {}, "Yeah": {}, "Okay": {},
}

type components struct {
	participants []string
	assignments  []Assignment
	keyPoints    []string
	decisions    []string
}

// extractComponents scans the cleaned transcript sentence by sentence and
// collects the raw material the summary builder works from.
func extractComponents(transcript string, roster []extraction.Participant) components {
	comp := components{}
	seenParticipants := map[string]struct{}{}

	for _, sentence := range splitSentences(transcript) {
		lower := strings.ToLower(sentence)

		for _, name := range mentionedNames(sentence, roster) {
			key := strings.ToLower(name)
			if _, ok := seenParticipants[key]; !ok {
				seenParticipants[key] = struct{}{}
				comp.participants = append(comp.participants, name)
			}
		}

		comp.assignments = append(comp.assignments, extractAssignments(sentence)...)

		if isKeyPoint(sentence, lower) {
			comp.keyPoints = append(comp.keyPoints, sentence)
		}
		if containsAny(lower, decisionKeywords) {
			comp.decisions = append(comp.decisions, sentence)
		}
	}

	comp.assignments = dedupeAssignments(comp.assignments)
	return comp
}

// mentionedNames returns participant names referenced in the sentence. With a
// roster it matches roster names only; without one it falls back to a
// capitalized-word heuristic.
func mentionedNames(sentence string, roster []extraction.Participant) []string {
	if len(roster) > 0 {
		lower := strings.ToLower(sentence)
		var names []string
		for _, p := range roster {
			if p.Name == "" {
				continue
			}
			if containsWord(lower, strings.ToLower(p.Name)) {
				names = append(names, p.Name)
			}
		}
		return names
	}

	var names []string
	for _, word := range capitalizedRe.FindAllString(sentence, -1) {
		if _, skip := commonCapitalized[word]; !skip {
			names = append(names, word)
		}
	}
	return names
}

var capitalizedRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// containsWord reports whether needle occurs in haystack on word boundaries.
func containsWord(haystack, needle string) bool {
	for from := 0; ; {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		from = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

var assignmentRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+)\s+(?:you\s+)?will\s+be\s+doing\s+(?:the\s+)?(.+?)(?:\s+and\b|[.,]|$)`),
	regexp.MustCompile(`(?i)(\w+)\s+will\s+(?:handle|do)\s+(?:the\s+)?(.+?)(?:\s+and\b|[.,]|$)`),
	regexp.MustCompile(`(?i)(\w+)\s+(?:is|will\s+be)\s+responsible\s+for\s+(?:the\s+)?(.+?)(?:\s+and\b|[.,]|$)`),
}

var taskTrailerRe = regexp.MustCompile(`(?i)\b(so|yeah|that|is|the|end|of|our|meeting)\b.*$`)

// extractAssignments pulls "Name will be doing X" style assignments out of a
// single sentence for the Task Assignments section.
func extractAssignments(sentence string) []Assignment {
	var assignments []Assignment
	for _, re := range assignmentRes {
		for _, m := range re.FindAllStringSubmatch(sentence, -1) {
			assignee := strings.TrimSpace(m[1])
			task := strings.TrimSpace(taskTrailerRe.ReplaceAllString(strings.TrimSpace(m[2]), ""))
			if len(task) > 3 {
				assignments = append(assignments, Assignment{Assignee: assignee, Task: task})
			}
		}
	}
	return assignments
}

func dedupeAssignments(assignments []Assignment) []Assignment {
	seen := map[string]struct{}{}
	unique := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		task := strings.ToLower(a.Task)
		if len(task) > 15 {
			task = task[:15]
		}
		key := strings.ToLower(a.Assignee) + "-" + task
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			unique = append(unique, a)
		}
	}
	return unique
}

func isKeyPoint(sentence, lower string) bool {
	if len(sentence) < 15 {
		return false
	}
	if containsAny(lower, skipPhrases) {
		return false
	}
	return containsAny(lower, importantKeywords)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
