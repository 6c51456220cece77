package presenter

import (
	"encoding/json"

	"github.com/meetwise/meetwise/internal/adapter/dto"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// ToSummaryResponse converts a stored summary. KeyPoints and Assignments are
// persisted as JSONB; malformed blobs degrade to empty slices, never errors.
func ToSummaryResponse(s *entities.MeetingSummary) *dto.SummaryResponse {
	if s == nil {
		return nil
	}

	keyPoints := []string{}
	if len(s.KeyPoints) > 0 {
		json.Unmarshal(s.KeyPoints, &keyPoints)
	}

	assignments := []dto.AssignmentDTO{}
	if len(s.Assignments) > 0 {
		json.Unmarshal(s.Assignments, &assignments)
	}

	return &dto.SummaryResponse{
		ID:               s.ID,
		MeetingID:        s.MeetingID,
		TranscriptID:     s.TranscriptID,
		Text:             s.Text,
		KeyPoints:        keyPoints,
		Assignments:      assignments,
		Method:           string(s.Method),
		ProcessingTimeMs: s.ProcessingTime,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToTranscriptResponse converts a stored transcript
func ToTranscriptResponse(t *entities.Transcript) *dto.TranscriptResponse {
	if t == nil {
		return nil
	}

	utterances := make([]dto.UtteranceDTO, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		utterances = append(utterances, dto.UtteranceDTO{
			Speaker: u.Speaker,
			Text:    u.Text,
			Start:   u.Start,
			End:     u.End,
		})
	}

	return &dto.TranscriptResponse{
		ID:              t.ID,
		MeetingID:       t.MeetingID,
		Text:            t.Text,
		Language:        t.Language,
		ConfidenceScore: t.ConfidenceScore,
		HasSpeakers:     t.HasSpeakers,
		SpeakerCount:    t.SpeakerCount,
		Utterances:      utterances,
		CreatedAt:       t.CreatedAt,
	}
}

// ToActionItemResponse converts an action item
func ToActionItemResponse(a *entities.ActionItem) *dto.ActionItemResponse {
	if a == nil {
		return nil
	}

	return &dto.ActionItemResponse{
		ID:            a.ID,
		MeetingID:     a.MeetingID,
		Text:          a.Text,
		Assignee:      a.Assignee,
		AssigneeEmail: a.AssigneeEmail,
		Category:      a.Category,
		Priority:      a.Priority,
		Status:        a.Status,
		Completed:     a.Completed,
		Confidence:    a.Confidence,
		DueDate:       a.DueDate,
		CompletedAt:   a.CompletedAt,
		JiraIssueKey:  a.JiraIssueKey,
		JiraIssueURL:  a.JiraIssueURL,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToActionItemListResponse converts a list of action items
func ToActionItemListResponse(items []*entities.ActionItem) []*dto.ActionItemResponse {
	out := make([]*dto.ActionItemResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToActionItemResponse(a))
	}
	return out
}
