package handler

import (
	stdErrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/errors"
	meetingDTO "github.com/meetwise/meetwise/internal/adapter/dto/meeting"
	"github.com/meetwise/meetwise/internal/adapter/presenter"
	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/infrastructure/storage"
	usecaseErrors "github.com/meetwise/meetwise/internal/usecase/errors"
	"github.com/meetwise/meetwise/internal/usecase/meeting"
	"github.com/meetwise/meetwise/internal/usecase/processing"
)

// audio upload constraints
const (
	maxUploadSize  = 512 << 20 // 512 MiB
	uploadedURLTTL = 24 * time.Hour
)

var allowedAudioExtensions = map[string]string{
	".mp3":  "audio/mpeg",
	".mp4":  "audio/mp4",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
	".flac": "audio/flac",
}

// MeetingHandler handles meeting HTTP requests
type MeetingHandler struct {
	meetingService    meeting.Service
	processingService processing.Service
	minioClient       *storage.MinIOClient
	logger            *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(
	meetingService meeting.Service,
	processingService processing.Service,
	minioClient *storage.MinIOClient,
	logger *zap.Logger,
) *MeetingHandler {
	return &MeetingHandler{
		meetingService:    meetingService,
		processingService: processingService,
		minioClient:       minioClient,
		logger:            logger,
	}
}

// mapMeetingError converts usecase sentinels to AppError
func mapMeetingError(meetingID string, err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingFull):
		return errors.ErrMeetingFull(meetingID, 0)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingEnded):
		return errors.ErrMeetingEnded(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrNotHost):
		return errors.ErrNotHost()
	case stdErrors.Is(err, usecaseErrors.ErrNotParticipant),
		stdErrors.Is(err, usecaseErrors.ErrNotInvited):
		return errors.ErrMeetingAccessDenied(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyInMeeting):
		return errors.ErrAlreadyExists("participant")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidMeetingType):
		return errors.ErrInvalidArgument("type must be instant, scheduled or upload")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidMaxParticipants):
		return errors.ErrInvalidArgument("max_participants must be between 2 and 100")
	default:
		return errors.ErrInternal(err)
	}
}

// meetingIDParam parses the :id path parameter
func meetingIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("meeting id must be a valid UUID")
	}
	return id, nil
}

// userIDFromContext reads the authenticated user id set by the auth middleware
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.ErrUnauthenticated()
	}
	return userID, nil
}

// Create creates a meeting
// @Summary      Create meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  meeting.CreateMeetingRequest  true  "Meeting"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /meetings [post]
func (h *MeetingHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	entries := make([]meeting.RosterEntry, 0, len(req.Participants))
	for _, p := range req.Participants {
		entries = append(entries, meeting.RosterEntry{Name: p.Name, Email: p.Email})
	}

	created, err := h.meetingService.CreateMeeting(c.Request().Context(), meeting.CreateMeetingInput{
		Title:              req.Title,
		Description:        req.Description,
		HostID:             userID,
		Type:               entities.MeetingType(req.Type),
		MaxParticipants:    req.MaxParticipants,
		ScheduledStartTime: req.ScheduledStartTime,
		ScheduledEndTime:   req.ScheduledEndTime,
		Participants:       entries,
	})
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError("", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(created))
}

// Get retrieves a meeting by id
// @Summary      Get meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id} [get]
func (h *MeetingHandler) Get(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// List lists meetings with filters
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        type       query  string  false  "instant | scheduled | upload"
// @Param        status     query  string  false  "scheduled | live | processing | completed | failed"
// @Param        mine       query  bool    false  "Only meetings hosted by the caller"
// @Param        search     query  string  false  "Search in title and description"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  meeting.ListMeetingsResponse
// @Router       /meetings [get]
func (h *MeetingHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	filters := buildMeetingFilters(&req)
	if req.Mine {
		filters.HostID = &userID
	}

	meetings, total, err := h.meetingService.ListMeetings(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings, total, page, pageSize))
}

// Join joins a live or scheduled meeting and returns a room token
// @Summary      Join meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.JoinMeetingResponse
// @Failure      403  {object}  map[string]interface{}
// @Router       /meetings/{id}/join [post]
func (h *MeetingHandler) Join(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	user, _ := c.Get("user").(*entities.User)
	name, email := "", ""
	if user != nil {
		name, email = user.Name, user.Email
	}

	ctx := c.Request().Context()
	m, participant, err := h.meetingService.JoinMeeting(ctx, meeting.JoinMeetingInput{
		MeetingID: meetingID,
		UserID:    userID,
		Name:      name,
		Email:     email,
	})
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	token, err := h.meetingService.GenerateRoomToken(ctx, meetingID, userID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, &meetingDTO.JoinMeetingResponse{
		Meeting:     presenter.ToMeetingResponse(m),
		Participant: presenter.ToParticipantResponse(participant),
		Token:       token,
		LivekitURL:  h.meetingService.GetLivekitURL(),
	})
}

// Leave leaves a meeting
// @Summary      Leave meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id}/leave [post]
func (h *MeetingHandler) Leave(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.LeaveMeeting(c.Request().Context(), meetingID, userID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"message": "Left meeting"})
}

// End ends a meeting (host only)
// @Summary      End meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /meetings/{id}/end [post]
func (h *MeetingHandler) End(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.EndMeeting(c.Request().Context(), meetingID, userID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"message": "Meeting ended"})
}

// Participants returns the meeting roster
// @Summary      Meeting roster
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {array}  meeting.ParticipantResponse
// @Router       /meetings/{id}/participants [get]
func (h *MeetingHandler) Participants(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participants, err := h.meetingService.GetParticipants(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, presenter.ToParticipantListResponse(participants))
}

// AddParticipants adds roster entries (host only)
// @Summary      Add roster entries
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                          true  "Meeting ID"
// @Param        request  body  meeting.AddParticipantsRequest  true  "Roster entries"
// @Success      200  {array}  meeting.ParticipantResponse
// @Router       /meetings/{id}/participants [post]
func (h *MeetingHandler) AddParticipants(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AddParticipantsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	entries := make([]meeting.RosterEntry, 0, len(req.Participants))
	for _, p := range req.Participants {
		entries = append(entries, meeting.RosterEntry{Name: p.Name, Email: p.Email})
	}

	added, err := h.meetingService.AddParticipants(c.Request().Context(), meetingID, userID, entries)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, presenter.ToParticipantListResponse(added))
}

// Token issues a fresh LiveKit access token for a roster member
// @Summary      Room access token
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.TokenResponse
// @Router       /meetings/{id}/token [get]
func (h *MeetingHandler) Token(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	token, err := h.meetingService.GenerateRoomToken(ctx, meetingID, userID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	m, err := h.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, &meetingDTO.TokenResponse{
		Token:      token,
		RoomName:   m.LivekitRoomName,
		LivekitURL: h.meetingService.GetLivekitURL(),
	})
}

// LiveParticipants lists identities currently connected to the room
// @Summary      Live room participants
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {array}  meeting.LiveParticipant
// @Router       /meetings/{id}/live [get]
func (h *MeetingHandler) LiveParticipants(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	live, err := h.meetingService.ListLiveParticipants(c.Request().Context(), meetingID, userID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, live)
}

// Kick removes a connected participant from the room (host only)
// @Summary      Kick participant
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  string  true  "Meeting ID"
// @Param        identity  path  string  true  "LiveKit identity"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id}/participants/{identity} [delete]
func (h *MeetingHandler) Kick(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	identity := c.Param("identity")
	if identity == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("identity is required"))
	}

	if err := h.meetingService.KickParticipant(c.Request().Context(), meetingID, userID, identity); err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"message": "Participant removed"})
}

// UploadAudio receives an audio file for an upload meeting, stores it and
// enqueues the transcription job
// @Summary      Upload meeting audio
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Meeting ID"
// @Param        file  formData  file    true  "Audio file"
// @Success      200  {object}  meeting.UploadResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /meetings/{id}/audio [post]
func (h *MeetingHandler) UploadAudio(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}
	if fileHeader.Size > maxUploadSize {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file exceeds the 512 MiB limit"))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedAudioExtensions[ext]
	if !ok {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("unsupported audio format"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	ctx := c.Request().Context()
	objectKey := fmt.Sprintf("uploads/%s/%d%s", meetingID, time.Now().Unix(), ext)

	if err := h.minioClient.UploadFile(ctx, objectKey, src, fileHeader.Size, contentType); err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("upload", err))
	}

	audioURL, err := h.minioClient.GetFileURL(ctx, objectKey, uploadedURLTTL)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}

	job, err := h.meetingService.AttachUpload(ctx, meeting.AttachUploadInput{
		MeetingID: meetingID,
		UserID:    userID,
		ObjectKey: objectKey,
		AudioURL:  audioURL,
	})
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	return HandleSuccess(h.logger, c, &meetingDTO.UploadResponse{
		ObjectKey: objectKey,
		AudioURL:  audioURL,
		Job:       presenter.ToJobResponse(job),
	})
}

// Reprocess re-runs summary and extraction from the stored transcript
// @Summary      Reprocess meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id}/reprocess [post]
func (h *MeetingHandler) Reprocess(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.processingService.ProcessTranscript(c.Request().Context(), meetingID); err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrTranscriptNotFound),
			stdErrors.Is(err, usecaseErrors.ErrTranscriptEmpty):
			return HandleError(h.logger, c, errors.ErrNotFound("transcript"))
		case stdErrors.Is(err, gorm.ErrRecordNotFound):
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
		default:
			return HandleError(h.logger, c, errors.ErrProcessingFailed(err))
		}
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"message": "Reprocessing completed"})
}
