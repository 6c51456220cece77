package handler

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	stdErrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/infrastructure/cache"
	usecaseErrors "github.com/meetwise/meetwise/internal/usecase/errors"
	"github.com/meetwise/meetwise/internal/usecase/processing"
)

// webhookSecretHeader carries the shared secret we register with the STT
// provider when submitting a transcription
const webhookSecretHeader = "X-Webhook-Secret"

// replayWindow is how long a delivered payload digest is remembered.
// Providers retry with the same body, so repeats inside the window are
// acknowledged without re-entering the pipeline.
const replayWindow = 10 * time.Minute

// TranscriptWebhookHandler receives transcript status callbacks from the
// speech-to-text provider
type TranscriptWebhookHandler struct {
	processingService processing.Service
	cacheStore        cache.Store
	webhookSecret     string
	logger            *zap.Logger
}

// NewTranscriptWebhookHandler creates a new transcript webhook handler
func NewTranscriptWebhookHandler(processingService processing.Service, cacheStore cache.Store, webhookSecret string, logger *zap.Logger) *TranscriptWebhookHandler {
	return &TranscriptWebhookHandler{
		processingService: processingService,
		cacheStore:        cacheStore,
		webhookSecret:     webhookSecret,
		logger:            logger,
	}
}

// HandleTranscriptWebhook verifies the shared secret and hands the payload to
// the processing pipeline
// @Summary      Transcript status webhook
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /webhooks/transcripts [post]
func (h *TranscriptWebhookHandler) HandleTranscriptWebhook(c echo.Context) error {
	if h.webhookSecret != "" {
		got := c.Request().Header.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
			h.logger.Warn("🔒 Transcript webhook with bad secret",
				zap.String("remote", c.RealIP()))
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{"error": "invalid webhook secret"})
		}
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "failed to read body"})
	}

	ctx := c.Request().Context()

	if h.seenRecently(ctx, payload) {
		h.logger.Info("Transcript webhook replay suppressed")
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "duplicate"})
	}

	if err := h.processingService.HandleTranscriptWebhook(ctx, payload); err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrJobNotFound) {
			// Unknown transcript ids are acknowledged so the provider
			// stops retrying a callback we can never match
			h.logger.Warn("Transcript webhook for unknown job")
			return c.JSON(http.StatusOK, map[string]interface{}{"status": "ignored"})
		}
		h.logger.Error("❌ Transcript webhook processing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": "processing failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
}

// seenRecently marks the payload digest and reports whether it was already
// delivered inside the replay window. Cache failures never block a webhook.
func (h *TranscriptWebhookHandler) seenRecently(ctx context.Context, payload []byte) bool {
	if h.cacheStore == nil {
		return false
	}

	digest := sha256.Sum256(payload)
	key := "webhook:transcript:" + hex.EncodeToString(digest[:])

	if _, found, err := h.cacheStore.Get(ctx, key); err == nil && found {
		return true
	}
	_ = h.cacheStore.Set(ctx, key, "1", replayWindow)
	return false
}
