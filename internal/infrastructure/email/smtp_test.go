package email

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/meetwise/meetwise/internal/domain/entities"
)

func TestBuildDigestText(t *testing.T) {
	meetingID := uuid.New()
	items := []*entities.ActionItem{
		entities.NewActionItem(meetingID, "update the database migration", "Sarah", "sarah@example.com"),
		entities.NewActionItem(meetingID, "write the deployment script", "Sarah", "sarah@example.com"),
	}
	items[1].Priority = entities.ActionItemPriorityHigh
	items[1].MarkJiraSynced("MW-42", "https://example.atlassian.net/browse/MW-42")

	text := buildDigestText("Sarah", "Sprint Planning", items)

	assert.Contains(t, text, `Your Action Items from "Sprint Planning"`)
	assert.Contains(t, text, "Hi Sarah,")
	assert.Contains(t, text, "2 action item(s)")
	assert.Contains(t, text, "1. update the database migration")
	assert.Contains(t, text, "2. write the deployment script")
	assert.Contains(t, text, "Jira: MW-42 https://example.atlassian.net/browse/MW-42")
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@meetwise.io", "sarah@example.com", "Action Items", "plain body", "<p>html body</p>"))

	assert.True(t, strings.HasPrefix(msg, "From: noreply@meetwise.io\r\n"))
	assert.Contains(t, msg, "To: sarah@example.com\r\n")
	assert.Contains(t, msg, "Subject: Action Items\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/alternative")
	assert.Contains(t, msg, "plain body")
	assert.Contains(t, msg, "<p>html body</p>")
	assert.True(t, strings.HasSuffix(msg, "--meetwise-digest-boundary--\r\n"))
}
