package extraction

import "strings"

// taskCategory is one row of the fixed taxonomy. Order matters: the first
// category with a keyword hit wins.
type taskCategory struct {
	name     string
	keywords []string
}

var taskCategories = []taskCategory{
	{"Documentation", []string{"document", "write", "record", "notes", "paper", "report", "bibliography", "research", "records", "medical records"}},
	{"Presentation", []string{"presentation", "present", "slides", "ppt", "powerpoint", "power point"}},
	{"Development", []string{"develop", "build", "code", "implement", "create", "design", "mockup", "frontend", "backend"}},
	{"Review", []string{"review", "check", "verify", "validate", "evaluate", "audit", "changes", "lab results"}},
	{"Communication", []string{"send", "email", "contact", "call", "outreach", "media", "relations", "notify"}},
	{"Planning", []string{"plan", "schedule", "organize", "prepare", "coordinate", "discussion", "fundraising", "chapters", "events", "group"}},
	{"Testing", []string{"test", "qa", "debug", "quality", "testing"}},
	{"Deployment", []string{"deploy", "deployment", "release"}},
	{"Healthcare", []string{"patient", "medical", "lab", "pharmacy", "evaluation", "rounds", "results"}},
}

// CategoryGeneral is the fallback when no taxonomy keyword matches.
const CategoryGeneral = "General"

// categorize assigns a task to the first matching category. Total: every
// task gets a label.
func categorize(task string) string {
	taskLower := strings.ToLower(task)
	for _, c := range taskCategories {
		for _, kw := range c.keywords {
			if strings.Contains(taskLower, kw) {
				return c.name
			}
		}
	}
	return CategoryGeneral
}

var (
	highPriorityCues = []string{"urgent", "critical", "asap", "immediately"}
	lowPriorityCues  = []string{"later", "eventually", "optional", "whenever"}
)

// scorePriority scans surrounding text for urgency cues. Defaults to medium;
// total like categorize.
func scorePriority(context string) string {
	lower := strings.ToLower(context)
	for _, cue := range highPriorityCues {
		if strings.Contains(lower, cue) {
			return PriorityHigh
		}
	}
	for _, cue := range lowPriorityCues {
		if strings.Contains(lower, cue) {
			return PriorityLow
		}
	}
	return PriorityMedium
}
