package extraction

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		task string
		want string
	}{
		{"write the meeting notes", "Documentation"},
		{"finish the power point slides", "Presentation"},
		{"implement the new frontend", "Development"},
		{"verify the lab results", "Review"},
		{"email the vendor about pricing", "Communication"},
		{"schedule the offsite", "Planning"},
		{"debug the flaky suite", "Testing"},
		{"release the hotfix", "Deployment"},
		{"patient rounds on ward two", "Healthcare"},
		{"figure out lunch", "General"},
		// First matching category wins: "document" beats "review".
		{"review the document", "Documentation"},
	}

	for _, tt := range tests {
		if got := categorize(tt.task); got != tt.want {
			t.Errorf("categorize(%q) = %q, want %q", tt.task, got, tt.want)
		}
	}
}

func TestScorePriority(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"this is urgent, please start now", PriorityHigh},
		{"we need this ASAP", PriorityHigh},
		{"critical fix for the login flow", PriorityHigh},
		{"we can do this later", PriorityLow},
		{"optional cleanup, whenever", PriorityLow},
		{"prepare the slides", PriorityMedium},
		{"", PriorityMedium},
	}

	for _, tt := range tests {
		if got := scorePriority(tt.text); got != tt.want {
			t.Errorf("scorePriority(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
