package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/infrastructure/cache"
	usecaseErrors "github.com/meetwise/meetwise/internal/usecase/errors"
)

type stubProcessingService struct {
	webhookErr error
	payloads   [][]byte
}

func (s *stubProcessingService) Start(ctx context.Context) error { return nil }
func (s *stubProcessingService) Stop() error                     { return nil }
func (s *stubProcessingService) EnqueueTranscription(ctx context.Context, meetingID uuid.UUID, audioURL string) (*entities.ProcessingJob, error) {
	return entities.NewProcessingJob(meetingID, entities.JobTypeTranscription, audioURL), nil
}
func (s *stubProcessingService) SubmitTranscription(ctx context.Context, job *entities.ProcessingJob) error {
	return nil
}
func (s *stubProcessingService) HandleTranscriptWebhook(ctx context.Context, payload []byte) error {
	s.payloads = append(s.payloads, payload)
	return s.webhookErr
}
func (s *stubProcessingService) ProcessTranscript(ctx context.Context, meetingID uuid.UUID) error {
	return nil
}

func postTranscriptWebhook(h *TranscriptWebhookHandler, secret string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/transcripts",
		strings.NewReader(`{"transcript_id":"abc","status":"completed"}`))
	if secret != "" {
		req.Header.Set(webhookSecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.HandleTranscriptWebhook(c)
	return rec
}

func TestTranscriptWebhookRejectsBadSecret(t *testing.T) {
	svc := &stubProcessingService{}
	h := NewTranscriptWebhookHandler(svc, nil, "expected-secret", zap.NewNop())

	rec := postTranscriptWebhook(h, "wrong-secret")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.payloads, "payload must not reach the pipeline")
}

func TestTranscriptWebhookRejectsMissingSecret(t *testing.T) {
	h := NewTranscriptWebhookHandler(&stubProcessingService{}, nil, "expected-secret", zap.NewNop())

	rec := postTranscriptWebhook(h, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTranscriptWebhookAcceptsValidSecret(t *testing.T) {
	svc := &stubProcessingService{}
	h := NewTranscriptWebhookHandler(svc, nil, "expected-secret", zap.NewNop())

	rec := postTranscriptWebhook(h, "expected-secret")

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, svc.payloads, 1) {
		assert.Contains(t, string(svc.payloads[0]), `"transcript_id":"abc"`)
	}
}

func TestTranscriptWebhookAcknowledgesUnknownJob(t *testing.T) {
	svc := &stubProcessingService{webhookErr: usecaseErrors.ErrJobNotFound}
	h := NewTranscriptWebhookHandler(svc, nil, "expected-secret", zap.NewNop())

	rec := postTranscriptWebhook(h, "expected-secret")

	// 200 so the provider stops retrying a callback we can never match
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
}

func TestTranscriptWebhookSuppressesReplay(t *testing.T) {
	svc := &stubProcessingService{}
	h := NewTranscriptWebhookHandler(svc, cache.NewMemoryStore(), "expected-secret", zap.NewNop())

	first := postTranscriptWebhook(h, "expected-secret")
	second := postTranscriptWebhook(h, "expected-secret")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "duplicate")
	assert.Len(t, svc.payloads, 1)
}
