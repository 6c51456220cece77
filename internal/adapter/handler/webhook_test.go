package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testWebhookHandler() *WebhookHandler {
	return &WebhookHandler{
		bucketName: "meetwise",
		logger:     zap.NewNop(),
	}
}

func TestObjectKeyFromLocation(t *testing.T) {
	h := testWebhookHandler()

	key := h.objectKeyFromLocation(
		"https://minio.example.com/meetwise/recordings/2026-01-10T101500-mw-abc.ogg",
		"mw-abc.ogg")
	assert.Equal(t, "recordings/2026-01-10T101500-mw-abc.ogg", key)

	// location without the bucket falls back to the reported filename
	key = h.objectKeyFromLocation("https://cdn.example.com/other/file.ogg", "file.ogg")
	assert.Equal(t, "file.ogg", key)
}

func TestIsAudioFilename(t *testing.T) {
	assert.True(t, isAudioFilename("recording.OGG"))
	assert.True(t, isAudioFilename("meeting.mp4"))
	assert.True(t, isAudioFilename("room-audio-track"))
	assert.False(t, isAudioFilename("thumbnail.png"))
	assert.False(t, isAudioFilename("manifest.json"))
}

func TestExtractAudioFilePrefersFileLocation(t *testing.T) {
	h := testWebhookHandler()

	var info map[string]interface{}
	payload := `{
		"file": {"location": "https://minio.example.com/meetwise/recordings/a.ogg\n", "filename": "a.ogg"},
		"file_results": [{"filename": "b.mp4", "location": "https://minio.example.com/meetwise/recordings/b.mp4"}]
	}`
	assert.NoError(t, json.Unmarshal([]byte(payload), &info))

	location, key := h.extractAudioFile(info)
	assert.Equal(t, "https://minio.example.com/meetwise/recordings/a.ogg", location)
	assert.Equal(t, "recordings/a.ogg", key)
}

func TestExtractAudioFileScansResults(t *testing.T) {
	h := testWebhookHandler()

	var info map[string]interface{}
	payload := `{
		"file_results": [
			{"filename": "preview.png", "location": "https://minio.example.com/meetwise/recordings/preview.png"},
			{"filename": "room.ogg", "location": "https://minio.example.com/meetwise/recordings/room.ogg"}
		]
	}`
	assert.NoError(t, json.Unmarshal([]byte(payload), &info))

	location, key := h.extractAudioFile(info)
	assert.Equal(t, "https://minio.example.com/meetwise/recordings/room.ogg", location)
	assert.Equal(t, "recordings/room.ogg", key)
}

func TestExtractAudioFileEmptyPayload(t *testing.T) {
	h := testWebhookHandler()

	location, key := h.extractAudioFile(map[string]interface{}{})
	assert.Empty(t, location)
	assert.Empty(t, key)
}

func TestReceiveEventUnsignedParsesProtoJSON(t *testing.T) {
	h := testWebhookHandler()

	e := echo.New()
	body := `{"event":"room_started","room":{"name":"mw-1a2b3c"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/livekit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	event, raw, err := h.receiveEvent(c)
	assert.NoError(t, err)
	assert.Equal(t, "room_started", event.Event)
	assert.Equal(t, "mw-1a2b3c", event.Room.Name)
	assert.JSONEq(t, body, string(raw))
}

func TestReceiveEventUnsignedRejectsGarbage(t *testing.T) {
	h := testWebhookHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/livekit", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_, _, err := h.receiveEvent(c)
	assert.Error(t, err)
}
