package handler

import (
	"bytes"
	stdErrors "errors"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/errors"
	"github.com/meetwise/meetwise/internal/adapter/presenter"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	"github.com/meetwise/meetwise/internal/usecase/meeting"
)

// SummaryHandler serves transcripts, summaries and report exports
type SummaryHandler struct {
	meetingService meeting.Service
	transcriptRepo repositories.TranscriptRepository
	summaryRepo    repositories.SummaryRepository
	actionItemRepo repositories.ActionItemRepository
	logger         *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(
	meetingService meeting.Service,
	transcriptRepo repositories.TranscriptRepository,
	summaryRepo repositories.SummaryRepository,
	actionItemRepo repositories.ActionItemRepository,
	logger *zap.Logger,
) *SummaryHandler {
	return &SummaryHandler{
		meetingService: meetingService,
		transcriptRepo: transcriptRepo,
		summaryRepo:    summaryRepo,
		actionItemRepo: actionItemRepo,
		logger:         logger,
	}
}

// GetTranscript returns the latest transcript for a meeting
// @Summary      Meeting transcript
// @Tags         Insights
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  dto.TranscriptResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id}/transcript [get]
func (h *SummaryHandler) GetTranscript(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	transcript, err := h.transcriptRepo.FindByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("transcript"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(transcript))
}

// GetSummary returns the summary for a meeting
// @Summary      Meeting summary
// @Tags         Insights
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id}/summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.summaryRepo.FindByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("summary"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(summary))
}

// ExportMarkdown renders the meeting report as a Markdown document
// @Summary      Export meeting report
// @Tags         Insights
// @Produce      text/markdown
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id}/export [get]
func (h *SummaryHandler) ExportMarkdown(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()

	m, err := h.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID.String(), err))
	}

	summary, err := h.summaryRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("summary"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	items, err := h.actionItemRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", m.Title)
	if m.StartedAt != nil {
		fmt.Fprintf(&buf, "**Date:** %s\n\n", m.StartedAt.Format("2006-01-02 15:04"))
	}

	buf.WriteString("## Summary\n\n")
	buf.WriteString(summary.Text)
	buf.WriteString("\n\n")

	var keyPoints []string
	if len(summary.KeyPoints) > 0 {
		_ = json.Unmarshal(summary.KeyPoints, &keyPoints)
	}
	if len(keyPoints) > 0 {
		buf.WriteString("## Key Points\n\n")
		for _, kp := range keyPoints {
			fmt.Fprintf(&buf, "- %s\n", kp)
		}
		buf.WriteString("\n")
	}

	if len(items) > 0 {
		buf.WriteString("## Action Items\n\n")
		buf.WriteString("| Assignee | Task | Priority | Status |\n")
		buf.WriteString("|----------|------|----------|--------|\n")
		for _, item := range items {
			fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n", item.Assignee, item.Text, item.Priority, item.Status)
		}
	}

	filename := fmt.Sprintf("meeting-%s.md", meetingID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}
