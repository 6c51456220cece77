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
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	pkgvalidator "github.com/meetwise/meetwise/pkg/validator"
)

type stubActionItemRepo struct {
	items   map[uuid.UUID]*entities.ActionItem
	updated *entities.ActionItem
}

func newStubActionItemRepo(items ...*entities.ActionItem) *stubActionItemRepo {
	repo := &stubActionItemRepo{items: make(map[uuid.UUID]*entities.ActionItem)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *stubActionItemRepo) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	return nil
}

func (r *stubActionItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubActionItemRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var out []*entities.ActionItem
	for _, item := range r.items {
		if item.MeetingID == meetingID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubActionItemRepo) ListByAssigneeEmail(ctx context.Context, email string, limit, offset int) ([]*entities.ActionItem, error) {
	var out []*entities.ActionItem
	for _, item := range r.items {
		if item.AssigneeEmail == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubActionItemRepo) Update(ctx context.Context, item *entities.ActionItem) error {
	r.updated = item
	return nil
}

func (r *stubActionItemRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

func (r *stubActionItemRepo) MarkJiraSynced(ctx context.Context, id uuid.UUID, issueKey, issueURL string) error {
	return nil
}

func (r *stubActionItemRepo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return nil
}

func patchActionItem(h *ActionItemHandler, itemID, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/action-items/"+itemID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/action-items/:id")
	c.SetParamNames("id")
	c.SetParamValues(itemID)
	_ = h.UpdateStatus(c)
	return rec
}

func TestUpdateStatusCompletesItem(t *testing.T) {
	item := entities.NewActionItem(uuid.New(), "ship the release", "Mike", "mike@example.com")
	repo := newStubActionItemRepo(item)
	h := NewActionItemHandler(repo, nil, nil, zap.NewNop())

	rec := patchActionItem(h, item.ID.String(), `{"status":"completed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, repo.updated) {
		assert.Equal(t, entities.ActionItemStatusCompleted, repo.updated.Status)
		assert.True(t, repo.updated.Completed)
		assert.NotNil(t, repo.updated.CompletedAt)
	}
}

func TestUpdateStatusReopensItem(t *testing.T) {
	item := entities.NewActionItem(uuid.New(), "ship the release", "Mike", "mike@example.com")
	item.Complete()
	repo := newStubActionItemRepo(item)
	h := NewActionItemHandler(repo, nil, nil, zap.NewNop())

	rec := patchActionItem(h, item.ID.String(), `{"status":"pending"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, repo.updated) {
		assert.Equal(t, entities.ActionItemStatusPending, repo.updated.Status)
		assert.False(t, repo.updated.Completed)
		assert.Nil(t, repo.updated.CompletedAt)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	item := entities.NewActionItem(uuid.New(), "ship the release", "Mike", "mike@example.com")
	h := NewActionItemHandler(newStubActionItemRepo(item), nil, nil, zap.NewNop())

	rec := patchActionItem(h, item.ID.String(), `{"status":"done"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusUnknownItem(t *testing.T) {
	h := NewActionItemHandler(newStubActionItemRepo(), nil, nil, zap.NewNop())

	rec := patchActionItem(h, uuid.New().String(), `{"status":"completed"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func postJiraSync(h *ActionItemHandler, itemID string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/action-items/"+itemID+"/jira", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/action-items/:id/jira")
	c.SetParamNames("id")
	c.SetParamValues(itemID)
	_ = h.SyncToJira(c)
	return rec
}

func TestSyncToJiraWithoutTracker(t *testing.T) {
	item := entities.NewActionItem(uuid.New(), "ship the release", "Mike", "mike@example.com")
	h := NewActionItemHandler(newStubActionItemRepo(item), nil, nil, zap.NewNop())

	rec := postJiraSync(h, item.ID.String())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
