package handler

import (
	stdErrors "errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/errors"
	"github.com/meetwise/meetwise/internal/adapter/dto"
	"github.com/meetwise/meetwise/internal/adapter/presenter"
	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	"github.com/meetwise/meetwise/internal/usecase/processing"
)

// ActionItemHandler handles action item HTTP requests
type ActionItemHandler struct {
	actionItemRepo repositories.ActionItemRepository
	meetingRepo    repositories.MeetingRepository
	issueTracker   processing.IssueTracker // nil when Jira is not configured
	logger         *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(
	actionItemRepo repositories.ActionItemRepository,
	meetingRepo repositories.MeetingRepository,
	issueTracker processing.IssueTracker,
	logger *zap.Logger,
) *ActionItemHandler {
	return &ActionItemHandler{
		actionItemRepo: actionItemRepo,
		meetingRepo:    meetingRepo,
		issueTracker:   issueTracker,
		logger:         logger,
	}
}

// ListByMeeting returns all action items of a meeting, confidence descending
// @Summary      Meeting action items
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {array}  dto.ActionItemResponse
// @Router       /meetings/{id}/action-items [get]
func (h *ActionItemHandler) ListByMeeting(c echo.Context) error {
	meetingID, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.actionItemRepo.ListByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToActionItemListResponse(items))
}

// ListMine returns action items assigned to the authenticated user's email
// @Summary      My action items
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {array}  dto.ActionItemResponse
// @Router       /action-items/mine [get]
func (h *ActionItemHandler) ListMine(c echo.Context) error {
	user, ok := c.Get("user").(*entities.User)
	if !ok || user == nil {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, err := h.actionItemRepo.ListByAssigneeEmail(c.Request().Context(), user.Email, pageSize, (page-1)*pageSize)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToActionItemListResponse(items))
}

// UpdateStatus moves an action item between pending, in_progress and completed
// @Summary      Update action item status
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                              true  "Action item ID"
// @Param        request  body  dto.UpdateActionItemStatusRequest  true  "New status"
// @Success      200  {object}  dto.ActionItemResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /action-items/{id} [patch]
func (h *ActionItemHandler) UpdateStatus(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("action item id must be a valid UUID"))
	}

	var req dto.UpdateActionItemStatusRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	item, err := h.actionItemRepo.FindByID(ctx, itemID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("action item"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	switch req.Status {
	case entities.ActionItemStatusCompleted:
		item.Complete()
	case entities.ActionItemStatusInProgress:
		item.MarkInProgress()
	default:
		item.Status = entities.ActionItemStatusPending
		item.Completed = false
		item.CompletedAt = nil
	}

	if err := h.actionItemRepo.Update(ctx, item); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	h.logger.Info("✅ Action item status updated",
		zap.String("item_id", itemID.String()),
		zap.String("status", item.Status))

	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// SyncToJira creates a Jira issue for one action item on demand
// @Summary      Sync action item to Jira
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Action item ID"
// @Success      200  {object}  dto.ActionItemResponse
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /action-items/{id}/jira [post]
func (h *ActionItemHandler) SyncToJira(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("action item id must be a valid UUID"))
	}

	if h.issueTracker == nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Jira integration is not configured"))
	}

	ctx := c.Request().Context()
	item, err := h.actionItemRepo.FindByID(ctx, itemID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("action item"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if item.JiraIssueKey != nil {
		return HandleError(h.logger, c, errors.ErrAlreadyExists("jira issue"))
	}

	meeting, err := h.meetingRepo.FindByID(ctx, item.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	issueKey, issueURL, err := h.issueTracker.CreateIssue(ctx, meeting.Title, item)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if err := h.actionItemRepo.MarkJiraSynced(ctx, item.ID, issueKey, issueURL); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	item.MarkJiraSynced(issueKey, issueURL)

	h.logger.Info("📌 Action item synced to Jira",
		zap.String("item_id", itemID.String()),
		zap.String("issue_key", issueKey))

	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}
