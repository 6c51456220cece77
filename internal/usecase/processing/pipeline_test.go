package processing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/meetwise/meetwise/internal/domain/entities"
	pkgai "github.com/meetwise/meetwise/pkg/ai"
)

func TestBuildTranscript(t *testing.T) {
	meetingID := uuid.New()
	result := &pkgai.TranscriptResult{
		ID:            "ext-42",
		Status:        "completed",
		Text:          "Mike will handle the rollout. Sarah will review the doc.",
		LanguageCode:  "en",
		Confidence:    0.93,
		AudioDuration: 120,
		Utterances: []pkgai.TranscriptUtterance{
			{Speaker: "A", Text: "Mike will handle the rollout.", Start: 0, End: 2500, Confidence: 0.95},
			{Speaker: "B", Text: "Sarah will review the doc.", Start: 2600, End: 4800, Confidence: 0.91},
			{Speaker: "A", Text: "Great.", Start: 4900, End: 5200, Confidence: 0.99},
		},
		Words: []pkgai.TranscriptWord{
			{Text: "Mike", Start: 0, End: 400, Confidence: 0.97, Speaker: "A"},
		},
	}

	transcript := buildTranscript(meetingID, result)

	if transcript.MeetingID != meetingID {
		t.Errorf("MeetingID = %s, want %s", transcript.MeetingID, meetingID)
	}
	if transcript.ExternalID != "ext-42" {
		t.Errorf("ExternalID = %q", transcript.ExternalID)
	}
	if !transcript.HasSpeakers || transcript.SpeakerCount != 2 {
		t.Errorf("speakers = (%v, %d), want (true, 2)", transcript.HasSpeakers, transcript.SpeakerCount)
	}
	if len(transcript.Utterances) != 3 {
		t.Fatalf("got %d utterances, want 3", len(transcript.Utterances))
	}
	if transcript.Utterances[0].End != 2.5 {
		t.Errorf("utterance end = %v, want 2.5 seconds", transcript.Utterances[0].End)
	}
	if transcript.Words[0].End != 0.4 {
		t.Errorf("word end = %v, want 0.4 seconds", transcript.Words[0].End)
	}
	if transcript.ProcessingTime != 120 {
		t.Errorf("ProcessingTime = %d, want 120", transcript.ProcessingTime)
	}
}

func TestGroupItemsByEmail(t *testing.T) {
	items := []*entities.ActionItem{
		{Assignee: "Mike", AssigneeEmail: "mike@example.com", Text: "rollout"},
		{Assignee: "Sarah", AssigneeEmail: "sarah@example.com", Text: "review"},
		{Assignee: "Mike", AssigneeEmail: "mike@example.com", Text: "deploy"},
		{Assignee: "Guest", AssigneeEmail: "", Text: "unaddressable"},
	}

	groups := groupItemsByEmail(items)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups["mike@example.com"]) != 2 {
		t.Errorf("mike group = %d items, want 2", len(groups["mike@example.com"]))
	}
	if len(groups["sarah@example.com"]) != 1 {
		t.Errorf("sarah group = %d items, want 1", len(groups["sarah@example.com"]))
	}
	if _, ok := groups[""]; ok {
		t.Errorf("items without email must be skipped")
	}
}
