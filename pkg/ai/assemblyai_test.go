package ai

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meetwise/meetwise/pkg/config"
)

func TestTranscribeAudio_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/transcript" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var payload TranscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.AudioURL != "http://example.com/audio.mp3" {
			t.Fatalf("unexpected audio url %s", payload.AudioURL)
		}
		if !payload.SpeakerLabels {
			t.Fatalf("expected speaker labels enabled")
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "transcript-123", "status": "queued"})
	}))
	defer ts.Close()

	client := NewAssemblyAIClient(&config.AssemblyAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	id, err := client.TranscribeAudio(context.Background(), "http://example.com/audio.mp3", "http://callback/hook", "X-Webhook-Secret", "s3cret")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if id != "transcript-123" {
		t.Fatalf("unexpected id %s", id)
	}
}

func TestTranscribeAudio_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewAssemblyAIClient(&config.AssemblyAIConfig{APIKey: "bad-key", BaseURL: ts.URL})
	if _, err := client.TranscribeAudio(context.Background(), "http://example.com/a.mp3", "", "", ""); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestGetTranscript_Completed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcript/transcript-123" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(TranscriptResult{
			ID:           "transcript-123",
			Status:       "completed",
			Text:         "Mike will handle the rollout.",
			LanguageCode: "en",
			Confidence:   0.95,
			Utterances: []TranscriptUtterance{
				{Speaker: "A", Text: "Mike will handle the rollout.", Start: 0, End: 2400, Confidence: 0.95},
			},
		})
	}))
	defer ts.Close()

	client := NewAssemblyAIClient(&config.AssemblyAIConfig{APIKey: "test-key", BaseURL: ts.URL})
	result, err := client.GetTranscript(context.Background(), "transcript-123")
	if err != nil {
		t.Fatalf("get transcript failed: %v", err)
	}
	if result.Text != "Mike will handle the rollout." {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if len(result.Utterances) != 1 || result.Utterances[0].Speaker != "A" {
		t.Fatalf("unexpected utterances %+v", result.Utterances)
	}
}

func TestGetTranscript_FailedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TranscriptResult{ID: "t-1", Status: "error", Error: "audio file unreadable"})
	}))
	defer ts.Close()

	client := NewAssemblyAIClient(&config.AssemblyAIConfig{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.GetTranscript(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error for failed transcript")
	}
}

func TestChatJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer token")
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Fatalf("unexpected messages %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `[{"assignee":"Mike","task":"review"}]`}},
			},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	reply, err := client.ChatJSON(context.Background(), "extract assignments", "Mike will review.")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply != `[{"assignee":"Mike","task":"review"}]` {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"transcript_id":"t-1","status":"completed"}`)
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(payload)
	sig := hex.EncodeToString(mac.Sum(nil))

	if !VerifyHMAC("secret", payload, sig) {
		t.Fatalf("valid signature rejected")
	}
	if VerifyHMAC("secret", payload, "deadbeef") {
		t.Fatalf("invalid signature accepted")
	}
	if VerifyHMAC("", payload, sig) {
		t.Fatalf("empty secret accepted")
	}
	if VerifyHMAC("secret", payload, "") {
		t.Fatalf("empty signature accepted")
	}
}
