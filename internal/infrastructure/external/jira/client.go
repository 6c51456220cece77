package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/pkg/config"
)

// Client creates Jira issues from extracted action items
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	projectKey string
	client     *http.Client
	logger     *zap.Logger
}

// NewClient creates a Jira client. Returns an error when credentials are
// missing so the caller can run without issue sync.
func NewClient(cfg *config.JiraConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" || cfg.Email == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("jira credentials not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		email:      cfg.Email,
		apiToken:   cfg.APIToken,
		projectKey: cfg.ProjectKey,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// adfDoc is a minimal Atlassian Document Format body. The v3 issue API
// rejects plain-string descriptions.
type adfDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

func adfParagraph(text string) adfDoc {
	return adfDoc{
		Type:    "doc",
		Version: 1,
		Content: []adfNode{
			{
				Type:    "paragraph",
				Content: []adfNode{{Type: "text", Text: text}},
			},
		},
	}
}

type issueFields struct {
	Project     map[string]string `json:"project"`
	Summary     string            `json:"summary"`
	IssueType   map[string]string `json:"issuetype"`
	Description adfDoc            `json:"description"`
}

type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

type createIssueResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// CreateIssue creates a Jira task for the action item and returns the issue
// key and browse URL
func (c *Client) CreateIssue(ctx context.Context, meetingTitle string, item *entities.ActionItem) (string, string, error) {
	description := fmt.Sprintf(
		"Action item from meeting: %s\nPriority: %s\nAssignee: %s\nCurrent status: %s\n\n---\nThis task was created automatically from a meeting transcript.",
		meetingTitle, item.Priority, item.Assignee, item.Status,
	)

	reqBody := createIssueRequest{
		Fields: issueFields{
			Project:     map[string]string{"key": c.projectKey},
			Summary:     item.Text,
			IssueType:   map[string]string{"name": "Task"},
			Description: adfParagraph(description),
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal issue request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/rest/api/3/issue", bytes.NewReader(b))
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to call jira: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("jira API error (status: %d): %s", resp.StatusCode, string(body))
	}

	var created createIssueResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", "", fmt.Errorf("failed to decode jira response: %w", err)
	}

	issueURL := fmt.Sprintf("%s/browse/%s", c.baseURL, created.Key)
	c.logger.Info("🎫 Jira issue created",
		zap.String("issue_key", created.Key),
		zap.String("action_item_id", item.ID.String()))

	return created.Key, issueURL, nil
}

// TestConnection verifies the credentials against the current-user endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/rest/api/3/myself", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call jira: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jira connection failed: status %d", resp.StatusCode)
	}
	return nil
}
