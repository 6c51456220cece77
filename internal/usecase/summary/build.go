package summary

import (
	"fmt"
	"sort"
	"strings"
)

const maxKeyPoints = 3

// significantPoints filters key points down to the ones worth surfacing:
// long enough, not a greeting or closing, and not a restatement of an
// assignment already in the Task Assignments section.
func (c components) significantPoints() []string {
	points := make([]string, 0, len(c.keyPoints)+len(c.decisions))
	seen := map[string]struct{}{}

	candidates := append(append([]string{}, c.keyPoints...), c.decisions...)
	for _, point := range candidates {
		lower := strings.ToLower(point)
		if len(point) <= 20 {
			continue
		}
		if containsAny(lower, []string{"hello", "thank", "end", "start"}) {
			continue
		}
		restated := false
		for _, a := range c.assignments {
			if a.Task != "" && strings.Contains(lower, strings.ToLower(a.Task)) {
				restated = true
				break
			}
		}
		if restated {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		points = append(points, point)
		if len(points) == maxKeyPoints {
			break
		}
	}
	return points
}

// buildSummary renders the structured summary. Returns "" when no section
// has content, signalling the caller to fall back to extractive selection.
func buildSummary(comp components) string {
	var parts []string

	if len(comp.participants) > 0 {
		parts = append(parts, "Meeting Participants: "+strings.Join(comp.participants, ", "), "")
	}

	if len(comp.assignments) > 0 {
		parts = append(parts, "Task Assignments:")
		for _, a := range comp.assignments {
			parts = append(parts, fmt.Sprintf("• %s: %s", a.Assignee, a.Task))
		}
		parts = append(parts, "")
	}

	if points := comp.significantPoints(); len(points) > 0 {
		parts = append(parts, "Key Discussion Points:")
		for _, p := range points {
			parts = append(parts, "• "+p)
		}
		parts = append(parts, "")
	}

	if len(parts) == 0 {
		return ""
	}

	if len(comp.assignments) > 0 {
		parts = append(parts, "Meeting Status: Completed with task assignments distributed")
	} else {
		parts = append(parts, "Meeting Status: Completed")
	}
	return strings.Join(parts, "\n")
}

var extractiveSkip = []string{"hello", "thank you", "end of our meeting", "yeah"}

// extractiveSummary scores sentences by length, boosts assignment-flavored
// ones, and keeps the top three. Last-resort path for transcripts the
// structured builder finds nothing in.
func extractiveSummary(transcript string) (string, []string) {
	var candidates []string
	for _, s := range splitSentences(transcript) {
		if len(s) <= 10 {
			continue
		}
		if containsAny(strings.ToLower(s), extractiveSkip) {
			continue
		}
		candidates = append(candidates, s)
	}

	if len(candidates) == 0 {
		fallback := "Meeting Summary:\n• Meeting discussion took place with task assignments and coordination."
		return fallback, nil
	}

	type scored struct {
		score    int
		sentence string
	}
	scoredSentences := make([]scored, 0, len(candidates))
	for _, s := range candidates {
		score := len(s)
		if containsAny(strings.ToLower(s), []string{"will", "doing", "responsible", "assigned"}) {
			score += 50
		}
		scoredSentences = append(scoredSentences, scored{score: score, sentence: s})
	}
	sort.SliceStable(scoredSentences, func(i, j int) bool {
		return scoredSentences[i].score > scoredSentences[j].score
	})

	limit := maxKeyPoints
	if len(scoredSentences) < limit {
		limit = len(scoredSentences)
	}
	selected := make([]string, 0, limit)
	lines := []string{"Meeting Summary:"}
	for _, sc := range scoredSentences[:limit] {
		selected = append(selected, sc.sentence)
		lines = append(lines, "• "+sc.sentence)
	}
	return strings.Join(lines, "\n"), selected
}
