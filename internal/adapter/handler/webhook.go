package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	lkauth "github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/webhook"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	extlivekit "github.com/meetwise/meetwise/internal/infrastructure/external/livekit"
	"github.com/meetwise/meetwise/internal/infrastructure/storage"
	"github.com/meetwise/meetwise/internal/usecase/meeting"
	"github.com/meetwise/meetwise/internal/usecase/processing"
)

// presigned recording URLs handed to the STT provider stay valid this long
const recordingURLTTL = 48 * time.Hour

// WebhookHandler processes LiveKit server events: room lifecycle, roster
// tracking and egress recording completion.
type WebhookHandler struct {
	meetingService    meeting.Service
	processingService processing.Service
	meetingRepo       repositories.MeetingRepository
	participantRepo   repositories.ParticipantRepository
	recordingRepo     repositories.RecordingRepository
	egressClient      *extlivekit.EgressClient
	minioClient       *storage.MinIOClient
	bucketName        string
	livekitAPIKey     string
	livekitSecret     string
	logger            *zap.Logger
}

// NewWebhookHandler creates a new LiveKit webhook handler
func NewWebhookHandler(
	meetingService meeting.Service,
	processingService processing.Service,
	meetingRepo repositories.MeetingRepository,
	participantRepo repositories.ParticipantRepository,
	recordingRepo repositories.RecordingRepository,
	egressClient *extlivekit.EgressClient,
	minioClient *storage.MinIOClient,
	bucketName string,
	livekitAPIKey string,
	livekitSecret string,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		meetingService:    meetingService,
		processingService: processingService,
		meetingRepo:       meetingRepo,
		participantRepo:   participantRepo,
		recordingRepo:     recordingRepo,
		egressClient:      egressClient,
		minioClient:       minioClient,
		bucketName:        bucketName,
		livekitAPIKey:     livekitAPIKey,
		livekitSecret:     livekitSecret,
		logger:            logger,
	}
}

// HandleLiveKitWebhook validates and routes a LiveKit webhook event.
// The endpoint always answers 200 once the payload parses: LiveKit retries
// non-2xx responses and a permanently failing event would loop forever.
// @Summary      LiveKit event webhook
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /webhooks/livekit [post]
func (h *WebhookHandler) HandleLiveKitWebhook(c echo.Context) error {
	event, rawBody, err := h.receiveEvent(c)
	if err != nil {
		h.logger.Error("❌ Rejected LiveKit webhook", zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "invalid webhook"})
	}

	h.logger.Info("📨 LiveKit webhook received", zap.String("event", event.Event))

	ctx := c.Request().Context()
	switch event.Event {
	case "room_started":
		h.handleRoomStarted(ctx, event)
	case "room_finished":
		h.handleRoomFinished(ctx, event)
	case "participant_joined":
		h.handleParticipantJoined(ctx, event)
	case "participant_left":
		h.handleParticipantLeft(ctx, event)
	case "egress_ended", "egress_updated":
		h.handleEgressEvent(ctx, event.Event, rawBody)
	default:
		h.logger.Debug("Unhandled LiveKit event", zap.String("event", event.Event))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "event": event.Event})
}

// receiveEvent authenticates the request when it carries a signature and
// falls back to plain protojson decoding for unsigned local deployments.
func (h *WebhookHandler) receiveEvent(c echo.Context) (*livekit.WebhookEvent, []byte, error) {
	rawBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, err
	}
	c.Request().Body = io.NopCloser(strings.NewReader(string(rawBody)))

	if c.Request().Header.Get(echo.HeaderAuthorization) != "" {
		provider := lkauth.NewSimpleKeyProvider(h.livekitAPIKey, h.livekitSecret)
		event, err := webhook.ReceiveWebhookEvent(c.Request(), provider)
		if err != nil {
			return nil, nil, err
		}
		return event, rawBody, nil
	}

	// Self-hosted LiveKit without a webhook key sends bare protojson
	var event livekit.WebhookEvent
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}
	if err := opts.Unmarshal(rawBody, &event); err != nil {
		return nil, nil, err
	}
	h.logger.Warn("⚠️ Accepted unsigned LiveKit webhook", zap.String("event", event.Event))
	return &event, rawBody, nil
}

// handleRoomStarted marks the meeting live and kicks off the audio recording
func (h *WebhookHandler) handleRoomStarted(ctx context.Context, event *livekit.WebhookEvent) {
	if event.Room == nil {
		return
	}
	roomName := event.Room.Name

	m, err := h.meetingService.GetMeetingByRoomName(ctx, roomName)
	if err != nil {
		h.logger.Warn("Room started for unknown meeting", zap.String("room", roomName), zap.Error(err))
		return
	}

	if !m.IsLive() {
		m.Start()
		if err := h.meetingRepo.Update(ctx, m); err != nil {
			h.logger.Error("Failed to mark meeting live", zap.String("meeting_id", m.ID.String()), zap.Error(err))
		}
	}

	egressID, err := h.egressClient.StartRoomRecording(ctx, roomName)
	if err != nil {
		h.logger.Error("❌ Failed to start room recording",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return
	}

	recording := entities.NewRecording(m.ID, egressID)
	if err := h.recordingRepo.Create(ctx, recording); err != nil {
		h.logger.Error("Failed to persist recording", zap.String("egress_id", egressID), zap.Error(err))
		return
	}

	h.logger.Info("🎙️ Room recording started",
		zap.String("meeting_id", m.ID.String()),
		zap.String("egress_id", egressID))
}

// handleRoomFinished ends the meeting; the transcript pipeline starts when
// the matching egress_ended event delivers the audio file
func (h *WebhookHandler) handleRoomFinished(ctx context.Context, event *livekit.WebhookEvent) {
	if event.Room == nil {
		return
	}
	roomName := event.Room.Name

	m, err := h.meetingService.GetMeetingByRoomName(ctx, roomName)
	if err != nil {
		h.logger.Warn("Room finished for unknown meeting", zap.String("room", roomName), zap.Error(err))
		return
	}

	if err := h.meetingRepo.EndMeeting(ctx, m.ID); err != nil {
		h.logger.Error("Failed to end meeting", zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return
	}
	if err := h.meetingRepo.UpdateStatus(ctx, m.ID, entities.MeetingStatusProcessing); err != nil {
		h.logger.Error("Failed to mark meeting processing", zap.String("meeting_id", m.ID.String()), zap.Error(err))
	}

	h.logger.Info("🏁 Room finished, awaiting recording",
		zap.String("meeting_id", m.ID.String()),
		zap.String("room", roomName))
}

// handleParticipantJoined marks the roster entry as joined
func (h *WebhookHandler) handleParticipantJoined(ctx context.Context, event *livekit.WebhookEvent) {
	if event.Room == nil || event.Participant == nil {
		return
	}
	identity := event.Participant.Identity
	if strings.HasPrefix(identity, "EG_") {
		return // egress worker, not a person
	}

	userID, err := uuid.Parse(identity)
	if err != nil {
		h.logger.Warn("Participant identity is not a user id", zap.String("identity", identity))
		return
	}

	m, err := h.meetingService.GetMeetingByRoomName(ctx, event.Room.Name)
	if err != nil {
		return
	}

	participant, err := h.participantRepo.FindByMeetingAndUser(ctx, m.ID, userID)
	if err != nil {
		h.logger.Warn("Joined participant not on roster",
			zap.String("meeting_id", m.ID.String()), zap.String("user_id", userID.String()))
		return
	}

	if err := h.participantRepo.MarkAsJoined(ctx, participant.ID); err != nil {
		h.logger.Error("Failed to mark participant joined", zap.Error(err))
		return
	}

	h.logger.Info("👤 Participant joined room",
		zap.String("meeting_id", m.ID.String()),
		zap.String("user_id", userID.String()))
}

// handleParticipantLeft runs the normal leave flow, which auto-ends the
// meeting when the last participant disconnects
func (h *WebhookHandler) handleParticipantLeft(ctx context.Context, event *livekit.WebhookEvent) {
	if event.Room == nil || event.Participant == nil {
		return
	}
	identity := event.Participant.Identity
	if strings.HasPrefix(identity, "EG_") {
		return
	}

	userID, err := uuid.Parse(identity)
	if err != nil {
		return
	}

	m, err := h.meetingService.GetMeetingByRoomName(ctx, event.Room.Name)
	if err != nil {
		return
	}

	if err := h.meetingService.LeaveMeeting(ctx, m.ID, userID); err != nil {
		h.logger.Debug("Leave on disconnect skipped",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return
	}

	h.logger.Info("👋 Participant left room",
		zap.String("meeting_id", m.ID.String()),
		zap.String("user_id", userID.String()))
}

// handleEgressEvent extracts the recorded audio file from an egress payload
// and hands it to the transcription pipeline. The egress info is parsed from
// raw JSON because LiveKit emits both snake_case and camelCase variants.
func (h *WebhookHandler) handleEgressEvent(ctx context.Context, eventName string, rawBody []byte) {
	var rawEvent map[string]interface{}
	if err := json.Unmarshal(rawBody, &rawEvent); err != nil {
		h.logger.Error("Failed to parse egress payload", zap.Error(err))
		return
	}

	info := mapField(rawEvent, "egress_info", "egressInfo")
	if info == nil {
		h.logger.Warn("Egress event without egress_info", zap.String("event", eventName))
		return
	}

	egressID := stringField(info, "egress_id", "egressId")
	roomName := stringField(info, "room_name", "roomName")
	status := stringField(info, "status")

	// egress_updated fires on every state change; only completion matters
	if eventName == "egress_updated" && status != "EGRESS_COMPLETE" {
		return
	}

	h.logger.Info("🎬 Egress finished",
		zap.String("egress_id", egressID),
		zap.String("room", roomName),
		zap.String("status", status))

	if status == "EGRESS_FAILED" || status == "EGRESS_ABORTED" {
		h.failRecording(ctx, egressID, "egress "+status)
		return
	}

	location, objectKey := h.extractAudioFile(info)
	if location == "" {
		h.logger.Warn("No audio file in egress result", zap.String("egress_id", egressID))
		return
	}

	m, err := h.meetingService.GetMeetingByRoomName(ctx, roomName)
	if err != nil {
		h.logger.Error("Egress finished for unknown meeting", zap.String("room", roomName), zap.Error(err))
		return
	}

	audioURL := location
	if objectKey != "" {
		// Presign so the STT provider can fetch from a private bucket
		if presigned, err := h.minioClient.GetFileURL(ctx, objectKey, recordingURLTTL); err == nil {
			audioURL = presigned
		} else {
			h.logger.Warn("Failed to presign recording, using raw location",
				zap.String("object_key", objectKey), zap.Error(err))
		}
	}

	if recording, err := h.recordingRepo.FindByEgressID(ctx, egressID); err == nil {
		recording.MarkAsCompleted(audioURL)
		recording.FilePath = &objectKey
		if err := h.recordingRepo.Update(ctx, recording); err != nil {
			h.logger.Error("Failed to update recording", zap.String("egress_id", egressID), zap.Error(err))
		}
	} else {
		h.logger.Warn("Egress without matching recording row", zap.String("egress_id", egressID))
	}

	job, err := h.processingService.EnqueueTranscription(ctx, m.ID, audioURL)
	if err != nil {
		h.logger.Error("❌ Failed to enqueue transcription",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return
	}

	h.logger.Info("📤 Transcription enqueued",
		zap.String("meeting_id", m.ID.String()),
		zap.String("job_id", job.ID.String()))
}

// extractAudioFile returns the audio file location and its key inside the
// bucket, checking file.location first and then the file_results list
func (h *WebhookHandler) extractAudioFile(info map[string]interface{}) (location, objectKey string) {
	if file := mapField(info, "file"); file != nil {
		if loc := strings.TrimSpace(stringField(file, "location")); loc != "" {
			return loc, h.objectKeyFromLocation(loc, stringField(file, "filename"))
		}
	}

	results := sliceField(info, "file_results", "fileResults")
	for _, result := range results {
		resultMap, ok := result.(map[string]interface{})
		if !ok {
			continue
		}
		filename := stringField(resultMap, "filename")
		loc := strings.TrimSpace(stringField(resultMap, "location"))
		if loc == "" || !isAudioFilename(filename) {
			continue
		}
		return loc, h.objectKeyFromLocation(loc, filename)
	}

	return "", ""
}

// objectKeyFromLocation strips the storage endpoint and bucket prefix from a
// file location so the key can be presigned
func (h *WebhookHandler) objectKeyFromLocation(location, filename string) string {
	marker := "/" + h.bucketName + "/"
	if idx := strings.Index(location, marker); idx >= 0 {
		return location[idx+len(marker):]
	}
	return filename
}

func (h *WebhookHandler) failRecording(ctx context.Context, egressID, reason string) {
	recording, err := h.recordingRepo.FindByEgressID(ctx, egressID)
	if err != nil {
		return
	}
	recording.MarkAsFailed(reason)
	if err := h.recordingRepo.Update(ctx, recording); err != nil {
		h.logger.Error("Failed to mark recording failed", zap.String("egress_id", egressID), zap.Error(err))
	}
	if err := h.meetingRepo.UpdateStatus(ctx, recording.MeetingID, entities.MeetingStatusFailed); err != nil {
		h.logger.Error("Failed to mark meeting failed",
			zap.String("meeting_id", recording.MeetingID.String()), zap.Error(err))
	}
}

func isAudioFilename(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range []string{".ogg", ".mp4", ".mp3", ".wav", ".m4a"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return strings.Contains(lower, "audio")
}

func mapField(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if val, ok := m[key].(map[string]interface{}); ok {
			return val
		}
	}
	return nil
}

func stringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if val, ok := m[key].(string); ok {
			return val
		}
	}
	return ""
}

func sliceField(m map[string]interface{}, keys ...string) []interface{} {
	for _, key := range keys {
		if val, ok := m[key].([]interface{}); ok {
			return val
		}
	}
	return nil
}
