package presenter

import (
	meetingDTO "github.com/meetwise/meetwise/internal/adapter/dto/meeting"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to its API representation
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	return &meetingDTO.MeetingResponse{
		ID:                  m.ID,
		Title:               m.Title,
		Description:         m.Description,
		HostID:              m.HostID,
		Type:                string(m.Type),
		Status:              string(m.Status),
		RoomName:            m.LivekitRoomName,
		MaxParticipants:     m.MaxParticipants,
		CurrentParticipants: m.CurrentParticipants,
		ScheduledStartTime:  m.ScheduledStartTime,
		ScheduledEndTime:    m.ScheduledEndTime,
		StartedAt:           m.StartedAt,
		EndedAt:             m.EndedAt,
		Duration:            m.Duration,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a page of meetings
func ToMeetingListResponse(meetings []*entities.Meeting, total int64, page, pageSize int) *meetingDTO.ListMeetingsResponse {
	items := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, ToMeetingResponse(m))
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return &meetingDTO.ListMeetingsResponse{
		Meetings:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// ToParticipantResponse converts a roster entry
func ToParticipantResponse(p *entities.MeetingParticipant) *meetingDTO.ParticipantResponse {
	if p == nil {
		return nil
	}

	return &meetingDTO.ParticipantResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		Name:     p.Name,
		Email:    p.Email,
		Role:     string(p.Role),
		Status:   string(p.Status),
		JoinedAt: p.JoinedAt,
		LeftAt:   p.LeftAt,
		Duration: p.Duration,
	}
}

// ToParticipantListResponse converts a roster
func ToParticipantListResponse(participants []*entities.MeetingParticipant) []*meetingDTO.ParticipantResponse {
	items := make([]*meetingDTO.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		items = append(items, ToParticipantResponse(p))
	}
	return items
}

// ToJobResponse converts a processing job
func ToJobResponse(j *entities.ProcessingJob) *meetingDTO.JobResponse {
	if j == nil {
		return nil
	}

	return &meetingDTO.JobResponse{
		ID:        j.ID,
		MeetingID: j.MeetingID,
		JobType:   string(j.JobType),
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt,
	}
}
