package livekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/pkg/config"
)

// EgressClient drives LiveKit room recordings into object storage
type EgressClient struct {
	apiKey    string
	apiSecret string
	baseURL   string
	storage   *config.StorageConfig
	client    *http.Client
	logger    *zap.Logger
}

// NewEgressClient creates an egress client. Recordings land in the configured
// storage bucket.
func NewEgressClient(cfg *config.LiveKitConfig, storage *config.StorageConfig, logger *zap.Logger) *EgressClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	// The egress API speaks HTTPS even when clients connect over wss
	baseURL := cfg.Host
	baseURL = strings.Replace(baseURL, "wss://", "https://", 1)
	baseURL = strings.Replace(baseURL, "ws://", "http://", 1)
	baseURL = strings.TrimRight(baseURL, "/")

	return &EgressClient{
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   baseURL,
		storage:   storage,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// generateAccessToken signs a short-lived JWT for the egress API
func (c *EgressClient) generateAccessToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.apiKey,
		"sub": c.apiKey,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.apiSecret))
}

// S3Config holds S3/MinIO output configuration
type S3Config struct {
	AccessKey      string `json:"access_key"`
	Secret         string `json:"secret"`
	Bucket         string `json:"bucket"`
	Endpoint       string `json:"endpoint"`
	ForcePathStyle bool   `json:"force_path_style"`
	Region         string `json:"region"`
}

// FileOutput represents file output configuration
type FileOutput struct {
	Filepath string    `json:"filepath"`
	S3       *S3Config `json:"s3,omitempty"`
}

// RoomCompositeEgressRequest represents a room composite egress request
type RoomCompositeEgressRequest struct {
	RoomName   string      `json:"room_name"`
	Layout     string      `json:"layout"` // grid, speaker, single-speaker
	AudioOnly  bool        `json:"audio_only"`
	FileOutput *FileOutput `json:"file_output"`
}

// EgressResponse represents the response from starting egress
type EgressResponse struct {
	EgressID string `json:"egress_id"`
}

// StartRoomRecording starts an audio-only composite recording of a room.
// Returns the egress ID used to stop the recording and correlate webhooks.
func (c *EgressClient) StartRoomRecording(ctx context.Context, roomName string) (string, error) {
	request := &RoomCompositeEgressRequest{
		RoomName:  roomName,
		Layout:    "grid",
		AudioOnly: true,
		FileOutput: &FileOutput{
			Filepath: "recordings/{room_name}-{time}.ogg",
			S3: &S3Config{
				AccessKey:      c.storage.AccessKeyID,
				Secret:         c.storage.SecretAccessKey,
				Bucket:         c.storage.BucketName,
				Endpoint:       c.storage.Endpoint,
				ForcePathStyle: true, // MinIO requires path-style addressing
				Region:         "us-east-1",
			},
		},
	}

	egressID, err := c.sendRequest(ctx, "/api/egress/room_composite", request)
	if err != nil {
		c.logger.Error("❌ Failed to start room recording",
			zap.String("room", roomName), zap.Error(err))
		return "", err
	}

	c.logger.Info("🔴 Room recording started",
		zap.String("room", roomName),
		zap.String("egress_id", egressID),
		zap.String("bucket", c.storage.BucketName))

	return egressID, nil
}

// StopEgress stops an ongoing recording
func (c *EgressClient) StopEgress(ctx context.Context, egressID string) error {
	data, err := json.Marshal(map[string]string{"egress_id": egressID})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/egress/stop", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.generateAccessToken()
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to stop egress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to stop egress %s: status %d: %s", egressID, resp.StatusCode, string(body))
	}

	c.logger.Info("⏹️ Room recording stopped", zap.String("egress_id", egressID))
	return nil
}

func (c *EgressClient) sendRequest(ctx context.Context, endpoint string, request interface{}) (string, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.generateAccessToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("egress API error (status: %d): %s", resp.StatusCode, string(body))
	}

	var response EgressResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return response.EgressID, nil
}
