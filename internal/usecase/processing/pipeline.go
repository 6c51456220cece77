package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	usecaseErrors "github.com/meetwise/meetwise/internal/usecase/errors"
	"github.com/meetwise/meetwise/internal/usecase/extraction"
	"github.com/meetwise/meetwise/internal/usecase/summary"
	pkgai "github.com/meetwise/meetwise/pkg/ai"
)

// transcriptWebhookPayload is the callback body sent by the STT provider.
type transcriptWebhookPayload struct {
	TranscriptID string `json:"transcript_id"`
	ID           string `json:"id"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// HandleTranscriptWebhook processes a transcript status callback. Completed
// transcripts run the full analysis pipeline.
func (s *processingService) HandleTranscriptWebhook(ctx context.Context, payload []byte) error {
	var body transcriptWebhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	transcriptID := body.TranscriptID
	if transcriptID == "" {
		transcriptID = body.ID
	}
	if transcriptID == "" {
		return fmt.Errorf("transcript id missing in webhook")
	}

	s.logger.Info("📥 Transcript webhook received",
		zap.String("transcript_id", transcriptID),
		zap.String("status", body.Status))

	job, err := s.jobRepo.FindByExternalID(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrJobNotFound
		}
		return fmt.Errorf("failed to find job: %w", err)
	}

	switch body.Status {
	case "processing", "queued":
		job.MarkAsProcessing()
		if err := s.jobRepo.Update(ctx, job); err != nil {
			s.logger.Error("failed to update job status", zap.Error(err))
		}
		return nil

	case "completed":
		return s.handleCompletedTranscript(ctx, job, transcriptID)

	case "error":
		s.markJobFailed(ctx, job, fmt.Sprintf("transcription error: %s", body.Error))
		return nil

	default:
		s.logger.Warn("⚠️ Unknown transcript status in webhook",
			zap.String("transcript_id", transcriptID),
			zap.String("status", body.Status))
		return nil
	}
}

// handleCompletedTranscript fetches the full transcript, stores it, and runs
// the analysis pipeline.
func (s *processingService) handleCompletedTranscript(ctx context.Context, job *entities.ProcessingJob, transcriptID string) error {
	result, err := s.sttClient.GetTranscript(ctx, transcriptID)
	if err != nil {
		s.markJobFailed(ctx, job, fmt.Sprintf("failed to fetch transcript: %v", err))
		return fmt.Errorf("failed to fetch transcript: %w", err)
	}

	transcript := buildTranscript(job.MeetingID, result)
	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		s.markJobFailed(ctx, job, fmt.Sprintf("failed to store transcript: %v", err))
		return fmt.Errorf("failed to store transcript: %w", err)
	}

	s.logger.Info("✅ Transcript stored",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("meeting_id", job.MeetingID.String()),
		zap.Int("text_length", len(transcript.Text)),
		zap.Int("utterances", len(transcript.Utterances)))

	job.Metadata.DurationSeconds = result.AudioDuration
	job.Metadata.Language = result.LanguageCode
	job.Metadata.SpeakerCount = transcript.SpeakerCount

	if err := s.analyzeAndNotify(ctx, job.MeetingID, transcript); err != nil {
		s.markJobFailed(ctx, job, err.Error())
		return err
	}

	job.MarkAsCompleted(&transcript.ID)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("failed to mark job completed", zap.Error(err))
	}

	if err := s.meetingRepo.UpdateStatus(ctx, job.MeetingID, entities.MeetingStatusCompleted); err != nil {
		s.logger.Error("failed to mark meeting completed", zap.Error(err))
	}

	s.logger.Info("🏁 Pipeline finished",
		zap.String("meeting_id", job.MeetingID.String()),
		zap.String("job_id", job.ID.String()))

	return nil
}

// buildTranscript maps the STT provider response onto the stored entity.
func buildTranscript(meetingID uuid.UUID, result *pkgai.TranscriptResult) *entities.Transcript {
	transcript := entities.NewTranscript(meetingID)
	transcript.ExternalID = result.ID
	transcript.Text = result.Text
	transcript.Language = result.LanguageCode
	transcript.ConfidenceScore = result.Confidence
	transcript.ProcessingTime = result.AudioDuration
	transcript.ModelUsed = "assemblyai"

	if len(result.Utterances) > 0 {
		speakers := map[string]struct{}{}
		utterances := make([]entities.TranscriptUtterance, 0, len(result.Utterances))
		for _, u := range result.Utterances {
			speakers[u.Speaker] = struct{}{}
			utterances = append(utterances, entities.TranscriptUtterance{
				Speaker:    u.Speaker,
				Text:       u.Text,
				Start:      float64(u.Start) / 1000.0,
				End:        float64(u.End) / 1000.0,
				Confidence: u.Confidence,
			})
		}
		transcript.Utterances = utterances
		transcript.HasSpeakers = true
		transcript.SpeakerCount = len(speakers)
	}

	if len(result.Words) > 0 {
		words := make([]entities.WordTimestamp, 0, len(result.Words))
		for _, w := range result.Words {
			words = append(words, entities.WordTimestamp{
				Word:       w.Text,
				Start:      float64(w.Start) / 1000.0,
				End:        float64(w.End) / 1000.0,
				Confidence: w.Confidence,
				Speaker:    w.Speaker,
			})
		}
		transcript.Words = words
	}

	if len(result.Chapters) > 0 {
		chapters := make([]entities.Chapter, 0, len(result.Chapters))
		for _, c := range result.Chapters {
			chapters = append(chapters, entities.Chapter{
				Gist:     c.Gist,
				Headline: c.Headline,
				Summary:  c.Summary,
				Start:    float64(c.Start) / 1000.0,
				End:      float64(c.End) / 1000.0,
			})
		}
		transcript.Chapters = chapters
	}

	return transcript
}

// ProcessTranscript re-runs summary and extraction from the stored transcript
func (s *processingService) ProcessTranscript(ctx context.Context, meetingID uuid.UUID) error {
	transcript, err := s.transcriptRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrTranscriptNotFound
		}
		return fmt.Errorf("failed to get transcript: %w", err)
	}

	// Drop previous results before regenerating
	if err := s.actionItemRepo.DeleteByMeeting(ctx, meetingID); err != nil {
		return fmt.Errorf("failed to clear previous action items: %w", err)
	}

	if err := s.analyzeAndNotify(ctx, meetingID, transcript); err != nil {
		return err
	}
	return s.meetingRepo.UpdateStatus(ctx, meetingID, entities.MeetingStatusCompleted)
}

// analyzeAndNotify runs summary and extraction concurrently over the
// transcript, persists the results, and sends notifications.
func (s *processingService) analyzeAndNotify(ctx context.Context, meetingID uuid.UUID, transcript *entities.Transcript) error {
	if transcript.IsEmpty() {
		return usecaseErrors.ErrTranscriptEmpty
	}

	roster, err := s.loadRoster(ctx, meetingID)
	if err != nil {
		return err
	}

	startTime := time.Now()

	var summaryResult summary.Result
	var items []extraction.ActionItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summaryResult = s.summarizer.Summarize(transcript.Text, roster)
		return nil
	})
	g.Go(func() error {
		items = s.extractor.Extract(gctx, transcript.Text, roster)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	record := entities.NewMeetingSummary(meetingID, transcript.ID, summaryResult.Text)
	record.ProcessingTime = int(time.Since(startTime).Milliseconds())
	if keyPoints, err := json.Marshal(summaryResult.KeyPoints); err == nil {
		record.KeyPoints = keyPoints
	}
	if assignments, err := json.Marshal(summaryResult.Assignments); err == nil {
		record.Assignments = assignments
	}

	if err := s.summaryRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	actionItems := make([]*entities.ActionItem, 0, len(items))
	for _, it := range items {
		item := entities.NewActionItem(meetingID, it.Text, it.Assignee, it.AssigneeEmail)
		item.SummaryID = &record.ID
		item.Category = it.Category
		item.Priority = it.Priority
		item.Confidence = it.Confidence
		actionItems = append(actionItems, item)
	}
	if len(actionItems) > 0 {
		if err := s.actionItemRepo.CreateBatch(ctx, actionItems); err != nil {
			return fmt.Errorf("failed to save action items: %w", err)
		}
	}

	s.logger.Info("✅ Analysis persisted",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("action_items", len(actionItems)),
		zap.Int("key_points", len(summaryResult.KeyPoints)),
		zap.Int("processing_ms", record.ProcessingTime))

	s.notifyAssignees(ctx, meetingID, actionItems)
	s.syncIssues(ctx, meetingID, actionItems)

	return nil
}

func (s *processingService) loadRoster(ctx context.Context, meetingID uuid.UUID) ([]extraction.Participant, error) {
	participants, err := s.participantRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	roster := make([]extraction.Participant, 0, len(participants))
	for _, p := range participants {
		roster = append(roster, extraction.Participant{Name: p.Name, Email: p.Email})
	}
	return roster, nil
}

// notifyAssignees sends one digest email per assignee, grouping their items.
func (s *processingService) notifyAssignees(ctx context.Context, meetingID uuid.UUID, items []*entities.ActionItem) {
	if s.email == nil || len(items) == 0 {
		return
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		s.logger.Warn("⚠️ Skipping digests, meeting lookup failed", zap.Error(err))
		return
	}

	for email, group := range groupItemsByEmail(items) {
		if err := s.email.SendActionItemDigest(ctx, email, group[0].Assignee, meeting.Title, group); err != nil {
			s.logger.Warn("⚠️ Failed to send action item digest",
				zap.String("to", email),
				zap.Error(err))
			continue
		}
		s.logger.Info("📧 Action item digest sent",
			zap.String("to", email),
			zap.Int("items", len(group)))
	}
}

// groupItemsByEmail buckets action items by assignee email. Items without an
// email have no inbox to notify and are skipped.
func groupItemsByEmail(items []*entities.ActionItem) map[string][]*entities.ActionItem {
	groups := make(map[string][]*entities.ActionItem)
	for _, item := range items {
		if item.AssigneeEmail == "" {
			continue
		}
		groups[item.AssigneeEmail] = append(groups[item.AssigneeEmail], item)
	}
	return groups
}

// syncIssues creates a tracker issue per action item when a tracker is wired.
func (s *processingService) syncIssues(ctx context.Context, meetingID uuid.UUID, items []*entities.ActionItem) {
	if s.issues == nil || len(items) == 0 {
		return
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		s.logger.Warn("⚠️ Skipping issue sync, meeting lookup failed", zap.Error(err))
		return
	}

	for _, item := range items {
		issueKey, issueURL, err := s.issues.CreateIssue(ctx, meeting.Title, item)
		if err != nil {
			s.logger.Warn("⚠️ Failed to create tracker issue",
				zap.String("action_item_id", item.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.actionItemRepo.MarkJiraSynced(ctx, item.ID, issueKey, issueURL); err != nil {
			s.logger.Warn("⚠️ Failed to record issue sync", zap.Error(err))
			continue
		}
		s.logger.Info("🎫 Tracker issue created",
			zap.String("issue_key", issueKey),
			zap.String("action_item_id", item.ID.String()))
	}
}
