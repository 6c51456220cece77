package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/meetwise/meetwise/pkg/config"
)

// AssemblyAIClient is a minimal REST client for the AssemblyAI transcript API.
type AssemblyAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey, base string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	if base == "" {
		base = "https://api.assemblyai.com/v2"
	}
	return &AssemblyAIClient{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// TranscribeRequest is the payload for POST /transcript.
type TranscribeRequest struct {
	AudioURL          string `json:"audio_url"`
	SpeakerLabels     bool   `json:"speaker_labels,omitempty"`
	LanguageDetection bool   `json:"language_detection,omitempty"`
	AutoChapters      bool   `json:"auto_chapters,omitempty"`
	WebhookURL        string `json:"webhook_url,omitempty"`
	WebhookAuthHeader string `json:"webhook_auth_header_name,omitempty"`
	WebhookAuthValue  string `json:"webhook_auth_header_value,omitempty"`
}

// TranscribeResponse is the minimal submit response.
type TranscribeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TranscriptUtterance is one speaker turn in a completed transcript.
type TranscriptUtterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// TranscriptWord is a single word with millisecond timestamps.
type TranscriptWord struct {
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker,omitempty"`
}

// TranscriptChapter is an auto-chapter segment.
type TranscriptChapter struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Gist     string `json:"gist"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// TranscriptResult is the completed transcript returned by GET /transcript/{id}.
type TranscriptResult struct {
	ID           string                `json:"id"`
	Status       string                `json:"status"`
	Text         string                `json:"text"`
	LanguageCode string                `json:"language_code"`
	Confidence   float64               `json:"confidence"`
	AudioDuration int                  `json:"audio_duration"`
	Error        string                `json:"error,omitempty"`
	Utterances   []TranscriptUtterance `json:"utterances"`
	Words        []TranscriptWord      `json:"words"`
	Chapters     []TranscriptChapter   `json:"chapters"`
}

// TranscribeAudio submits an external audio URL for transcription.
// Returns the transcript job id on success.
func (c *AssemblyAIClient) TranscribeAudio(ctx context.Context, audioURL, webhookURL, webhookAuthHeader, webhookAuthValue string) (string, error) {
	payload := TranscribeRequest{
		AudioURL:          audioURL,
		SpeakerLabels:     true,
		LanguageDetection: true,
		AutoChapters:      true,
		WebhookURL:        webhookURL,
		WebhookAuthHeader: webhookAuthHeader,
		WebhookAuthValue:  webhookAuthValue,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/transcript", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	var tr TranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	return tr.ID, nil
}

// GetTranscript fetches a transcript by id. The webhook only carries the id
// and status, so the worker calls this after the completed notification.
func (c *AssemblyAIClient) GetTranscript(ctx context.Context, transcriptID string) (*TranscriptResult, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/transcript/"+transcriptID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	var result TranscriptResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Status == "error" {
		return nil, fmt.Errorf("transcription failed: %s", result.Error)
	}
	return &result, nil
}
