package presenter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/meetwise/meetwise/internal/domain/entities"
)

func TestToSummaryResponseUnpacksJSONB(t *testing.T) {
	s := &entities.MeetingSummary{
		ID:           uuid.New(),
		MeetingID:    uuid.New(),
		TranscriptID: uuid.New(),
		Text:         "The team agreed on the rollout plan.",
		KeyPoints:    datatypes.JSON(`["rollout plan agreed","dates fixed"]`),
		Assignments:  datatypes.JSON(`[{"assignee":"Mike","task":"prepare the rollout"}]`),
		Method:       entities.SummaryMethodRule,
	}

	resp := ToSummaryResponse(s)

	assert.Equal(t, s.Text, resp.Text)
	assert.Equal(t, []string{"rollout plan agreed", "dates fixed"}, resp.KeyPoints)
	if assert.Len(t, resp.Assignments, 1) {
		assert.Equal(t, "Mike", resp.Assignments[0].Assignee)
		assert.Equal(t, "prepare the rollout", resp.Assignments[0].Task)
	}
}

func TestToSummaryResponseToleratesMalformedBlobs(t *testing.T) {
	s := &entities.MeetingSummary{
		ID:          uuid.New(),
		MeetingID:   uuid.New(),
		Text:        "short",
		KeyPoints:   datatypes.JSON(`{broken`),
		Assignments: datatypes.JSON(`42`),
	}

	resp := ToSummaryResponse(s)

	assert.Empty(t, resp.KeyPoints)
	assert.Empty(t, resp.Assignments)
}

func TestToActionItemListResponseKeepsOrder(t *testing.T) {
	meetingID := uuid.New()
	first := entities.NewActionItem(meetingID, "write the report", "Sarah", "sarah@example.com")
	second := entities.NewActionItem(meetingID, "review the report", "Mike", "mike@example.com")

	resp := ToActionItemListResponse([]*entities.ActionItem{first, second})

	if assert.Len(t, resp, 2) {
		assert.Equal(t, "write the report", resp[0].Text)
		assert.Equal(t, "review the report", resp[1].Text)
	}
}
