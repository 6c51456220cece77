package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/errors"
	meetingDTO "github.com/meetwise/meetwise/internal/adapter/dto/meeting"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

func TestBuildMeetingFiltersDefaults(t *testing.T) {
	req := &meetingDTO.ListMeetingsRequest{}

	filters := buildMeetingFilters(req)

	assert.Equal(t, 20, filters.Limit)
	assert.Equal(t, 0, filters.Offset)
	assert.Nil(t, filters.Type)
	assert.Nil(t, filters.Status)
}

func TestBuildMeetingFiltersPagination(t *testing.T) {
	meetingType := "scheduled"
	status := "live"
	req := &meetingDTO.ListMeetingsRequest{
		Type:     &meetingType,
		Status:   &status,
		Search:   "standup",
		Page:     3,
		PageSize: 10,
	}

	filters := buildMeetingFilters(req)

	assert.Equal(t, 10, filters.Limit)
	assert.Equal(t, 20, filters.Offset)
	assert.Equal(t, "standup", filters.Search)
	if assert.NotNil(t, filters.Type) {
		assert.Equal(t, entities.MeetingTypeScheduled, *filters.Type)
	}
	if assert.NotNil(t, filters.Status) {
		assert.Equal(t, entities.MeetingStatusLive, *filters.Status)
	}
}

func TestHandleErrorMapsAppError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/meetings/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HandleError(zap.NewNop(), c, errors.ErrMeetingNotFound("x"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "MEETING_NOT_FOUND")
}

func TestHandleErrorWrapsPlainError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/meetings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HandleError(zap.NewNop(), c, assert.AnError)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleSuccessEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/meetings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HandleSuccess(zap.NewNop(), c, map[string]string{"hello": "world"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hello":"world"`)
}
