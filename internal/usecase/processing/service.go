package processing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	"github.com/meetwise/meetwise/internal/usecase/extraction"
	"github.com/meetwise/meetwise/internal/usecase/summary"
	pkgai "github.com/meetwise/meetwise/pkg/ai"
	"github.com/meetwise/meetwise/pkg/config"
)

// EmailSender delivers per-assignee action item digests after a meeting
// has been processed.
type EmailSender interface {
	SendActionItemDigest(ctx context.Context, to, assignee, meetingTitle string, items []*entities.ActionItem) error
}

// IssueTracker creates issue tracker tickets for extracted action items.
type IssueTracker interface {
	CreateIssue(ctx context.Context, meetingTitle string, item *entities.ActionItem) (issueKey, issueURL string, err error)
}

// Service orchestrates the post-meeting pipeline: transcription submission,
// webhook handling, summary + extraction, and notifications.
type Service interface {
	// Start launches the background worker pool
	Start(ctx context.Context) error

	// Stop gracefully stops all workers
	Stop() error

	// EnqueueTranscription creates a pending transcription job for a meeting
	EnqueueTranscription(ctx context.Context, meetingID uuid.UUID, audioURL string) (*entities.ProcessingJob, error)

	// SubmitTranscription submits a claimed job to the speech-to-text API
	SubmitTranscription(ctx context.Context, job *entities.ProcessingJob) error

	// HandleTranscriptWebhook processes a transcript status callback
	HandleTranscriptWebhook(ctx context.Context, payload []byte) error

	// ProcessTranscript re-runs summary and extraction from the stored
	// transcript of a meeting
	ProcessTranscript(ctx context.Context, meetingID uuid.UUID) error
}

type processingService struct {
	jobRepo         repositories.JobRepository
	meetingRepo     repositories.MeetingRepository
	participantRepo repositories.ParticipantRepository
	transcriptRepo  repositories.TranscriptRepository
	summaryRepo     repositories.SummaryRepository
	actionItemRepo  repositories.ActionItemRepository

	sttClient  *pkgai.AssemblyAIClient
	extractor  extraction.Service
	summarizer summary.Service
	email      EmailSender
	issues     IssueTracker

	cfg    *config.Config
	logger *zap.Logger

	stopChan  chan struct{}
	workerWg  sync.WaitGroup
	running   bool
	runningMu sync.Mutex
}

// NewProcessingService constructs the pipeline service. email and issues may
// be nil; the matching notification stages are then skipped.
func NewProcessingService(
	jobRepo repositories.JobRepository,
	meetingRepo repositories.MeetingRepository,
	participantRepo repositories.ParticipantRepository,
	transcriptRepo repositories.TranscriptRepository,
	summaryRepo repositories.SummaryRepository,
	actionItemRepo repositories.ActionItemRepository,
	sttClient *pkgai.AssemblyAIClient,
	extractor extraction.Service,
	summarizer summary.Service,
	email EmailSender,
	issues IssueTracker,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &processingService{
		jobRepo:         jobRepo,
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		transcriptRepo:  transcriptRepo,
		summaryRepo:     summaryRepo,
		actionItemRepo:  actionItemRepo,
		sttClient:       sttClient,
		extractor:       extractor,
		summarizer:      summarizer,
		email:           email,
		issues:          issues,
		cfg:             cfg,
		logger:          logger,
	}
}

var _ Service = (*processingService)(nil)
