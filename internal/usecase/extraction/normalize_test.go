package extraction

import "testing"

func TestCleanTask(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"leading connective", "and finish the report", "finish the report"},
		{"also prefix", "also update the changelog", "update the changelog"},
		{"trailing connective", "finish the report and", "finish the report"},
		{"trailing chained assignment", "the documentation and Ria will be doing the slides", "the documentation"},
		{"trailing needs remainder", "the deployment and John needs to check it", "the deployment"},
		{"trailing punctuation", "send the invites.", "send the invites"},
		{"question mark", "check the pipeline?", "check the pipeline"},
		{"stuttered words", "send the the email", "send the email"},
		{"whitespace collapse", "prepare   the   slides", "prepare the slides"},
		{"already clean", "review the mockups", "review the mockups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTask(tt.raw); got != tt.want {
				t.Errorf("cleanTask(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidTask(t *testing.T) {
	idx := buildRosterIndex([]Participant{
		{Name: "Sneha"},
		{Name: "Ria"},
		{Name: "John Smith"},
	})
	sneha := idx.byFullName["sneha"]

	tests := []struct {
		name string
		task string
		want bool
	}{
		{"normal task", "finish the documentation", true},
		{"too short", "ok", false},
		{"other full name as substring", "the slides for ria", false},
		{"other name possessive", "ria's presentation", false},
		{"other first name token", "help john with the report", false},
		{"own name allowed", "sneha's documentation section", true},
		// Substring matching is deliberately aggressive: "triage" embeds "ria".
		{"name fragment inside word", "triage the backlog", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validTask(tt.task, sneha, idx, 3); got != tt.want {
				t.Errorf("validTask(%q) = %v, want %v", tt.task, got, tt.want)
			}
		})
	}
}
