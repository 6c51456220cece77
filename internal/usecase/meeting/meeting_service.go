package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	usecaseErrors "github.com/meetwise/meetwise/internal/usecase/errors"
	"github.com/meetwise/meetwise/internal/usecase/extraction"
	"github.com/meetwise/meetwise/internal/infrastructure/external/livekit"
)

// meetingService handles meeting business logic
type meetingService struct {
	meetingRepo     repositories.MeetingRepository
	participantRepo repositories.ParticipantRepository
	userRepo        repositories.UserRepository
	jobRepo         repositories.JobRepository
	livekitClient   livekit.Client
	livekitURL      string
	logger          *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	participantRepo repositories.ParticipantRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	livekitClient livekit.Client,
	livekitURL string,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &meetingService{
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		jobRepo:         jobRepo,
		livekitClient:   livekitClient,
		livekitURL:      livekitURL,
		logger:          logger,
	}
}

// RosterEntry is one participant to register on a meeting
type RosterEntry struct {
	Name  string
	Email string
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	Title              string
	Description        *string
	HostID             uuid.UUID
	Type               entities.MeetingType
	MaxParticipants    int
	ScheduledStartTime *time.Time
	ScheduledEndTime   *time.Time
	Participants       []RosterEntry
}

// CreateMeeting creates a new meeting
func (s *meetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	switch input.Type {
	case entities.MeetingTypeInstant, entities.MeetingTypeScheduled, entities.MeetingTypeUpload:
	default:
		return nil, usecaseErrors.ErrInvalidMeetingType
	}

	if input.MaxParticipants == 0 {
		input.MaxParticipants = 10
	}
	if input.MaxParticipants < 2 || input.MaxParticipants > 100 {
		return nil, usecaseErrors.ErrInvalidMaxParticipants
	}

	meeting := entities.NewMeeting(input.Title, input.HostID, input.Type)
	meeting.Description = input.Description
	meeting.MaxParticipants = input.MaxParticipants
	meeting.ScheduledStartTime = input.ScheduledStartTime
	meeting.ScheduledEndTime = input.ScheduledEndTime

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	// Upload meetings never get a live room
	if meeting.Type != entities.MeetingTypeUpload {
		_, err := s.livekitClient.CreateRoom(ctx, meeting.LivekitRoomName, &livekit.CreateRoomOptions{
			MaxParticipants:  int32(meeting.MaxParticipants),
			EmptyTimeout:     300,
			DepartureTimeout: 30,
			Metadata:         meeting.ID.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create livekit room: %w", err)
		}
	}

	// Register the host as the first roster entry
	host, err := s.userRepo.FindByID(ctx, input.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load host: %w", err)
	}
	hostEntry := entities.NewMeetingParticipant(meeting.ID, host.Name, host.Email)
	hostEntry.UserID = &input.HostID
	hostEntry.PromoteToHost()
	if err := s.participantRepo.Create(ctx, hostEntry); err != nil {
		return nil, fmt.Errorf("failed to add host as participant: %w", err)
	}

	if len(input.Participants) > 0 {
		if _, err := s.addRosterEntries(ctx, meeting.ID, input.HostID, input.Participants); err != nil {
			return nil, err
		}
	}

	s.logger.Info("📅 Meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("type", string(meeting.Type)),
		zap.String("room", meeting.LivekitRoomName))

	return meeting, nil
}

// GetMeeting retrieves a meeting by ID
func (s *meetingService) GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings retrieves meetings with filters
func (s *meetingService) ListMeetings(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.meetingRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// JoinMeetingInput represents input for joining a meeting
type JoinMeetingInput struct {
	MeetingID uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     string
}

// JoinMeeting allows a user to join a meeting
func (s *meetingService) JoinMeeting(ctx context.Context, input JoinMeetingInput) (*entities.Meeting, *entities.MeetingParticipant, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, input.MeetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	switch meeting.Status {
	case entities.MeetingStatusProcessing, entities.MeetingStatusCompleted, entities.MeetingStatusFailed:
		return nil, nil, usecaseErrors.ErrMeetingEnded
	}
	if meeting.IsFull() {
		return nil, nil, usecaseErrors.ErrMeetingFull
	}

	isInMeeting, err := s.participantRepo.IsUserInMeeting(ctx, input.MeetingID, input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check user participation: %w", err)
	}
	if isInMeeting {
		return nil, nil, usecaseErrors.ErrAlreadyInMeeting
	}

	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, input.MeetingID, input.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to get participant: %w", err)
	}

	if participant == nil {
		name, email := input.Name, input.Email
		if name == "" || email == "" {
			user, err := s.userRepo.FindByID(ctx, input.UserID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to load user: %w", err)
			}
			if name == "" {
				name = user.Name
			}
			if email == "" {
				email = user.Email
			}
		}
		participant = entities.NewMeetingParticipant(input.MeetingID, name, email)
		participant.UserID = &input.UserID
		if err := s.participantRepo.Create(ctx, participant); err != nil {
			return nil, nil, fmt.Errorf("failed to create participant: %w", err)
		}
	}

	participant.Join()
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return nil, nil, fmt.Errorf("failed to update participant: %w", err)
	}

	if err := s.meetingRepo.IncrementParticipantCount(ctx, input.MeetingID); err != nil {
		return nil, nil, fmt.Errorf("failed to increment participant count: %w", err)
	}

	// First join brings a scheduled meeting live
	if meeting.Status == entities.MeetingStatusScheduled {
		meeting.Start()
		if err := s.meetingRepo.Update(ctx, meeting); err != nil {
			return nil, nil, fmt.Errorf("failed to start meeting: %w", err)
		}
	}

	return meeting, participant, nil
}

// LeaveMeeting allows a user to leave a meeting
func (s *meetingService) LeaveMeeting(ctx context.Context, meetingID, userID uuid.UUID) error {
	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, meetingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrNotParticipant
		}
		return fmt.Errorf("failed to get participant: %w", err)
	}

	participant.Leave()
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}

	if err := s.meetingRepo.DecrementParticipantCount(ctx, meetingID); err != nil {
		return fmt.Errorf("failed to decrement participant count: %w", err)
	}

	activeCount, err := s.participantRepo.CountActiveByMeetingID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to count active participants: %w", err)
	}

	if activeCount == 0 {
		// Last participant out: end the meeting and hand it to the pipeline
		if err := s.meetingRepo.EndMeeting(ctx, meetingID); err != nil {
			return fmt.Errorf("failed to end meeting: %w", err)
		}
		s.logger.Info("🏁 Meeting auto-ended on last leave", zap.String("meeting_id", meetingID.String()))
	} else if participant.IsHost() {
		if err := s.promoteNewHost(ctx, meetingID); err != nil {
			return fmt.Errorf("failed to promote new host: %w", err)
		}
	}

	return nil
}

// EndMeeting ends a meeting (host only)
func (s *meetingService) EndMeeting(ctx context.Context, meetingID, userID uuid.UUID) error {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to get meeting: %w", err)
	}

	if meeting.HostID != userID {
		return usecaseErrors.ErrNotHost
	}

	meeting.End()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return fmt.Errorf("failed to end meeting: %w", err)
	}

	participants, err := s.participantRepo.FindActiveByMeetingID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to get active participants: %w", err)
	}
	for _, p := range participants {
		p.Leave()
		if err := s.participantRepo.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}
	}

	// Room teardown is best-effort; the meeting is already ended in storage
	if meeting.Type != entities.MeetingTypeUpload {
		if err := s.livekitClient.DeleteRoom(ctx, meeting.LivekitRoomName); err != nil {
			s.logger.Warn("failed to delete livekit room",
				zap.String("room", meeting.LivekitRoomName), zap.Error(err))
		}
	}

	s.logger.Info("🏁 Meeting ended by host", zap.String("meeting_id", meetingID.String()))
	return nil
}

// AddParticipants adds roster entries to a meeting (host only)
func (s *meetingService) AddParticipants(ctx context.Context, meetingID, hostID uuid.UUID, entries []RosterEntry) ([]*entities.MeetingParticipant, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting.HostID != hostID {
		return nil, usecaseErrors.ErrNotHost
	}

	return s.addRosterEntries(ctx, meetingID, hostID, entries)
}

func (s *meetingService) addRosterEntries(ctx context.Context, meetingID, invitedBy uuid.UUID, entries []RosterEntry) ([]*entities.MeetingParticipant, error) {
	participants := make([]*entities.MeetingParticipant, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		p := entities.NewMeetingParticipant(meetingID, e.Name, e.Email)
		p.InvitedBy = &invitedBy
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return nil, nil
	}
	if err := s.participantRepo.CreateBatch(ctx, participants); err != nil {
		return nil, fmt.Errorf("failed to add participants: %w", err)
	}
	return participants, nil
}

// GetParticipants retrieves the full roster of a meeting
func (s *meetingService) GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	participants, err := s.participantRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return participants, nil
}

// GenerateRoomToken generates a LiveKit access token for a roster member
func (s *meetingService) GenerateRoomToken(ctx context.Context, meetingID, userID uuid.UUID) (string, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecaseErrors.ErrMeetingNotFound
		}
		return "", fmt.Errorf("failed to get meeting: %w", err)
	}

	switch meeting.Status {
	case entities.MeetingStatusScheduled, entities.MeetingStatusLive:
	default:
		return "", usecaseErrors.ErrMeetingEnded
	}

	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, meetingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecaseErrors.ErrNotInvited
		}
		return "", fmt.Errorf("failed to get participant: %w", err)
	}

	token, err := s.livekitClient.GenerateToken(userID.String(), meeting.LivekitRoomName, participant.Name, &livekit.TokenOptions{
		ValidFor:       2 * time.Hour,
		RoomJoin:       true,
		RoomAdmin:      participant.IsHost(),
		CanPublish:     true,
		CanSubscribe:   true,
		CanPublishData: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate room token: %w", err)
	}
	return token, nil
}

// GetLivekitURL returns the LiveKit server URL
func (s *meetingService) GetLivekitURL() string {
	return s.livekitURL
}

// GetMeetingByRoomName retrieves a meeting by LiveKit room name
func (s *meetingService) GetMeetingByRoomName(ctx context.Context, roomName string) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByRoomName(ctx, roomName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting by room name: %w", err)
	}
	return meeting, nil
}

// AttachUploadInput represents input for registering uploaded audio
type AttachUploadInput struct {
	MeetingID uuid.UUID
	UserID    uuid.UUID
	ObjectKey string
	AudioURL  string
}

// AttachUpload registers uploaded audio on a meeting and enqueues a
// transcription job for the pipeline
func (s *meetingService) AttachUpload(ctx context.Context, input AttachUploadInput) (*entities.ProcessingJob, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, input.MeetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting.HostID != input.UserID {
		return nil, usecaseErrors.ErrNotHost
	}

	meeting.AudioObjectKey = &input.ObjectKey
	meeting.AudioURL = &input.AudioURL
	meeting.MarkProcessing()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	job := entities.NewProcessingJob(meeting.ID, entities.JobTypeTranscription, input.AudioURL)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue transcription job: %w", err)
	}

	s.logger.Info("🎙️ Upload attached, transcription queued",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("job_id", job.ID.String()))

	return job, nil
}

// Roster builds the extraction roster for a meeting
func (s *meetingService) Roster(ctx context.Context, meetingID uuid.UUID) ([]extraction.Participant, error) {
	participants, err := s.participantRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	roster := make([]extraction.Participant, 0, len(participants))
	for _, p := range participants {
		roster = append(roster, extraction.Participant{Name: p.Name, Email: p.Email})
	}
	return roster, nil
}

// LiveParticipant is one identity currently connected to the LiveKit room
type LiveParticipant struct {
	Identity string    `json:"identity"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// ListLiveParticipants lists who is connected to the room right now
func (s *meetingService) ListLiveParticipants(ctx context.Context, meetingID, userID uuid.UUID) ([]LiveParticipant, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	inMeeting, err := s.participantRepo.IsUserInMeeting(ctx, meetingID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check roster: %w", err)
	}
	if !inMeeting {
		return nil, usecaseErrors.ErrNotParticipant
	}

	infos, err := s.livekitClient.ListParticipants(ctx, meeting.LivekitRoomName)
	if err != nil {
		return nil, fmt.Errorf("failed to list room participants: %w", err)
	}

	live := make([]LiveParticipant, 0, len(infos))
	for _, info := range infos {
		// Egress workers join under EG_ identities; they are not people
		if strings.HasPrefix(info.Identity, "EG_") {
			continue
		}
		live = append(live, LiveParticipant{
			Identity: info.Identity,
			Name:     info.Name,
			JoinedAt: info.JoinedAt,
		})
	}
	return live, nil
}

// KickParticipant disconnects a participant from the room (host only)
func (s *meetingService) KickParticipant(ctx context.Context, meetingID, hostID uuid.UUID, identity string) error {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting.HostID != hostID {
		return usecaseErrors.ErrNotHost
	}

	if err := s.livekitClient.RemoveParticipant(ctx, meeting.LivekitRoomName, identity); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	s.logger.Info("🥾 Participant removed from room",
		zap.String("meeting_id", meetingID.String()),
		zap.String("identity", identity))
	return nil
}

// promoteNewHost promotes the first active participant to host
func (s *meetingService) promoteNewHost(ctx context.Context, meetingID uuid.UUID) error {
	participants, err := s.participantRepo.FindActiveByMeetingID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to get active participants: %w", err)
	}
	if len(participants) == 0 {
		return nil
	}

	newHost := participants[0]
	newHost.PromoteToHost()
	if err := s.participantRepo.Update(ctx, newHost); err != nil {
		return fmt.Errorf("failed to promote participant: %w", err)
	}

	if newHost.UserID == nil {
		return nil
	}
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to get meeting: %w", err)
	}
	meeting.HostID = *newHost.UserID
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	return nil
}
