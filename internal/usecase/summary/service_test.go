package summary

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/meetwise/meetwise/internal/usecase/extraction"
)

func testRoster(names ...string) []extraction.Participant {
	ps := make([]extraction.Participant, 0, len(names))
	for _, n := range names {
		ps = append(ps, extraction.Participant{Name: n})
	}
	return ps
}

func TestSummarizeStructured(t *testing.T) {
	transcript := "Hello everyone, um, thanks for joining. " +
		"So starting with our meeting agenda. " +
		"Sarah will be doing the database migration and John will handle the deployment script. " +
		"We agreed to ship the beta on Friday. " +
		"I think we should review the onboarding flow next week. " +
		"That's all, thank you."

	svc := NewService(nil)
	result := svc.Summarize(transcript, testRoster("Sarah", "John", "Mike"))

	if result.Method != MethodRule {
		t.Errorf("Method = %q, want %q", result.Method, MethodRule)
	}

	wantAssignments := []Assignment{
		{Assignee: "Sarah", Task: "database migration"},
		{Assignee: "John", Task: "deployment script"},
	}
	if diff := cmp.Diff(wantAssignments, result.Assignments); diff != "" {
		t.Errorf("Assignments mismatch (-want +got):\n%s", diff)
	}

	if !strings.Contains(result.Text, "Meeting Participants: Sarah, John") {
		t.Errorf("participants section missing or wrong:\n%s", result.Text)
	}
	if !strings.Contains(result.Text, "• Sarah: database migration") {
		t.Errorf("assignment line missing:\n%s", result.Text)
	}
	if !strings.Contains(result.Text, "Meeting Status: Completed with task assignments distributed") {
		t.Errorf("status line missing:\n%s", result.Text)
	}

	// The assignment sentence restates extracted tasks, so only the review
	// suggestion and the decision survive as key points.
	wantPoints := []string{
		"I think we should review the onboarding flow next week",
		"We agreed to ship the beta on Friday",
	}
	if diff := cmp.Diff(wantPoints, result.KeyPoints); diff != "" {
		t.Errorf("KeyPoints mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeExtractiveFallback(t *testing.T) {
	transcript := "Hello everyone. Thanks for joining today. " +
		"We talked about the roadmap priorities for the quarter. " +
		"The performance numbers look better than last month."

	svc := NewService(nil)
	result := svc.Summarize(transcript, testRoster("Priya"))

	if len(result.Assignments) != 0 {
		t.Errorf("expected no assignments, got %+v", result.Assignments)
	}
	if !strings.HasPrefix(result.Text, "Meeting Summary:") {
		t.Errorf("expected extractive summary, got:\n%s", result.Text)
	}
	if !strings.Contains(result.Text, "roadmap priorities") {
		t.Errorf("longest sentence missing from extractive summary:\n%s", result.Text)
	}
	if strings.Contains(result.Text, "Hello everyone") {
		t.Errorf("greeting leaked into extractive summary:\n%s", result.Text)
	}
	if len(result.KeyPoints) == 0 {
		t.Errorf("extractive fallback should report selected sentences as key points")
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	svc := NewService(nil)
	result := svc.Summarize("   ", nil)

	if result.Text == "" {
		t.Fatalf("expected placeholder summary for empty transcript")
	}
	if !strings.HasPrefix(result.Text, "Meeting Summary:") {
		t.Errorf("unexpected placeholder:\n%s", result.Text)
	}
	if len(result.Assignments) != 0 || len(result.KeyPoints) != 0 {
		t.Errorf("empty transcript should yield no assignments or key points")
	}
}

func TestExtractAssignments(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []Assignment
	}{
		{
			name:     "will be doing",
			sentence: "Ria you will be doing the frontend polish",
			want:     []Assignment{{Assignee: "Ria", Task: "frontend polish"}},
		},
		{
			name:     "responsible for",
			sentence: "Dave is responsible for the release notes",
			want:     []Assignment{{Assignee: "Dave", Task: "release notes"}},
		},
		{
			name:     "trailing meeting chatter trimmed",
			sentence: "Sam will be doing testing so yeah that is the end of our meeting",
			want:     []Assignment{{Assignee: "Sam", Task: "testing"}},
		},
		{
			name:     "too-short task dropped",
			sentence: "Joe will do it",
			want:     nil,
		},
		{
			name:     "no assignment",
			sentence: "We reviewed the quarterly numbers",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAssignments(tt.sentence)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("extractAssignments(%q) mismatch (-want +got):\n%s", tt.sentence, diff)
			}
		})
	}
}

func TestMentionedNamesWithoutRoster(t *testing.T) {
	got := mentionedNames("Hello everyone, Sarah and John joined late", nil)
	want := []string{"Sarah", "John"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mentionedNames mismatch (-want +got):\n%s", diff)
	}
}
