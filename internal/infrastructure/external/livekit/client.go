package livekit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/livekit/protocol/auth"
	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/meetwise/meetwise/pkg/config"
)

// Client wraps LiveKit room operations
type Client interface {
	CreateRoom(ctx context.Context, name string, options *CreateRoomOptions) (*RoomInfo, error)
	DeleteRoom(ctx context.Context, roomName string) error
	GenerateToken(userID, roomName, participantName string, options *TokenOptions) (string, error)
	ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error)
	RemoveParticipant(ctx context.Context, roomName, identity string) error
}

// CreateRoomOptions holds options for creating a room
type CreateRoomOptions struct {
	MaxParticipants  int32
	EmptyTimeout     int32 // seconds until auto-delete when no one joins
	DepartureTimeout int32 // seconds until auto-delete after last leave
	Metadata         string
}

// TokenOptions holds options for generating an access token
type TokenOptions struct {
	ValidFor       time.Duration
	CanPublish     bool
	CanSubscribe   bool
	CanPublishData bool
	RoomJoin       bool
	RoomAdmin      bool
}

// RoomInfo holds room information
type RoomInfo struct {
	Name            string
	SID             string
	CreationTime    time.Time
	MaxParticipants int32
	NumParticipants int32
	Metadata        string
}

// ParticipantInfo holds participant information
type ParticipantInfo struct {
	SID      string
	Identity string
	Name     string
	Metadata string
	JoinedAt time.Time
}

type realClient struct {
	roomClient *lksdk.RoomServiceClient
	apiKey     string
	apiSecret  string
	url        string
}

// NewClient creates a LiveKit client. With useMock set, room operations are
// stubbed; tokens are still real so local clients can be exercised end to end.
func NewClient(cfg *config.LiveKitConfig, useMock bool) Client {
	if useMock {
		return &mockClient{
			apiKey:    cfg.APIKey,
			apiSecret: cfg.APISecret,
		}
	}

	return &realClient{
		roomClient: lksdk.NewRoomServiceClient(cfg.Host, cfg.APIKey, cfg.APISecret),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		url:        cfg.Host,
	}
}

// CreateRoom creates a new room in LiveKit
func (c *realClient) CreateRoom(ctx context.Context, name string, options *CreateRoomOptions) (*RoomInfo, error) {
	if options == nil {
		options = &CreateRoomOptions{
			MaxParticipants:  10,
			EmptyTimeout:     300,
			DepartureTimeout: 30,
		}
	}

	room, err := c.roomClient.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name:             name,
		MaxParticipants:  uint32(options.MaxParticipants),
		EmptyTimeout:     uint32(options.EmptyTimeout),
		DepartureTimeout: uint32(options.DepartureTimeout),
		Metadata:         options.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return &RoomInfo{
		Name:            room.Name,
		SID:             room.Sid,
		CreationTime:    time.Unix(room.CreationTime, 0),
		MaxParticipants: int32(room.MaxParticipants),
		NumParticipants: int32(room.NumParticipants),
		Metadata:        room.Metadata,
	}, nil
}

// DeleteRoom deletes a room from LiveKit
func (c *realClient) DeleteRoom(ctx context.Context, roomName string) error {
	_, err := c.roomClient.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: roomName})
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

// RemoveParticipant removes a participant from a room
func (c *realClient) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	_, err := c.roomClient.RemoveParticipant(ctx, &livekit.RoomParticipantIdentity{
		Room:     roomName,
		Identity: identity,
	})
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

// GenerateToken generates an access token for joining a room
func (c *realClient) GenerateToken(userID, roomName, participantName string, options *TokenOptions) (string, error) {
	return buildAccessToken(c.apiKey, c.apiSecret, userID, roomName, participantName, options)
}

// ListParticipants lists all participants in a room
func (c *realClient) ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error) {
	resp, err := c.roomClient.ListParticipants(ctx, &livekit.ListParticipantsRequest{Room: roomName})
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*ParticipantInfo, 0, len(resp.Participants))
	for _, p := range resp.Participants {
		participants = append(participants, &ParticipantInfo{
			SID:      p.Sid,
			Identity: p.Identity,
			Name:     p.Name,
			Metadata: p.Metadata,
			JoinedAt: time.Unix(p.JoinedAt, 0),
		})
	}

	return participants, nil
}

func buildAccessToken(apiKey, apiSecret, userID, roomName, participantName string, options *TokenOptions) (string, error) {
	if options == nil {
		options = &TokenOptions{
			ValidFor:       24 * time.Hour,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
			RoomJoin:       true,
		}
	}

	at := auth.NewAccessToken(apiKey, apiSecret)
	grant := &auth.VideoGrant{
		RoomJoin:       options.RoomJoin,
		Room:           roomName,
		CanPublish:     &options.CanPublish,
		CanSubscribe:   &options.CanSubscribe,
		CanPublishData: &options.CanPublishData,
	}
	if options.RoomAdmin {
		grant.RoomAdmin = true
	}

	at.AddGrant(grant).
		SetIdentity(userID).
		SetName(participantName).
		SetValidFor(options.ValidFor)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// mockClient stubs room operations for local development
type mockClient struct {
	apiKey    string
	apiSecret string
}

func (m *mockClient) CreateRoom(ctx context.Context, name string, options *CreateRoomOptions) (*RoomInfo, error) {
	var maxParticipants int32 = 10
	var metadata string
	if options != nil {
		maxParticipants = options.MaxParticipants
		metadata = options.Metadata
	}

	return &RoomInfo{
		Name:            name,
		SID:             "mock-sid-" + uuid.New().String(),
		CreationTime:    time.Now(),
		MaxParticipants: maxParticipants,
		NumParticipants: 0,
		Metadata:        metadata,
	}, nil
}

func (m *mockClient) DeleteRoom(ctx context.Context, roomName string) error {
	return nil
}

func (m *mockClient) GenerateToken(userID, roomName, participantName string, options *TokenOptions) (string, error) {
	return buildAccessToken(m.apiKey, m.apiSecret, userID, roomName, participantName, options)
}

func (m *mockClient) ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error) {
	return []*ParticipantInfo{}, nil
}

func (m *mockClient) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	return nil
}
