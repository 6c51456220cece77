package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/meetwise/meetwise/internal/infrastructure/http/middleware"
	"github.com/meetwise/meetwise/internal/usecase/auth"
	"github.com/meetwise/meetwise/pkg/config"
)

// Router holds all handlers and wires them into the echo instance
type Router struct {
	cfg               *config.Config
	oauthService      *auth.OAuthService
	authHandler       *Auth
	meetingHandler    *MeetingHandler
	summaryHandler    *SummaryHandler
	actionItemHandler *ActionItemHandler
	webhookHandler    *WebhookHandler
	transcriptWebhook *TranscriptWebhookHandler
	storageTest       *StorageTest
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	oauthService *auth.OAuthService,
	authHandler *Auth,
	meetingHandler *MeetingHandler,
	summaryHandler *SummaryHandler,
	actionItemHandler *ActionItemHandler,
	webhookHandler *WebhookHandler,
	transcriptWebhook *TranscriptWebhookHandler,
	storageTest *StorageTest,
) *Router {
	return &Router{
		cfg:               cfg,
		oauthService:      oauthService,
		authHandler:       authHandler,
		meetingHandler:    meetingHandler,
		summaryHandler:    summaryHandler,
		actionItemHandler: actionItemHandler,
		webhookHandler:    webhookHandler,
		transcriptWebhook: transcriptWebhook,
		storageTest:       storageTest,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupWebhookRoutes(v1)

	authed := v1.Group("", middleware.EchoAuth(rt.oauthService))
	rt.setupMeetingRoutes(authed)
	rt.setupActionItemRoutes(authed)
	rt.setupStorageTestRoutes(authed)
}

func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.GET("/google/login", rt.authHandler.GoogleLogin)
	authGroup.GET("/google/callback", rt.authHandler.GoogleCallback)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, middleware.EchoAuth(rt.oauthService))
}

// setupWebhookRoutes configures the inbound webhook endpoints. They carry
// their own authentication (LiveKit signature, shared secret) and stay
// outside the session middleware.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhooks := g.Group("/webhooks")

	webhooks.POST("/livekit", rt.webhookHandler.HandleLiveKitWebhook)
	webhooks.POST("/transcripts", rt.transcriptWebhook.HandleTranscriptWebhook)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("", rt.meetingHandler.Create)
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.POST("/:id/join", rt.meetingHandler.Join)
	meetings.POST("/:id/leave", rt.meetingHandler.Leave)
	meetings.POST("/:id/end", rt.meetingHandler.End)
	meetings.GET("/:id/token", rt.meetingHandler.Token)
	meetings.GET("/:id/live", rt.meetingHandler.LiveParticipants)
	meetings.GET("/:id/participants", rt.meetingHandler.Participants)
	meetings.POST("/:id/participants", rt.meetingHandler.AddParticipants)
	meetings.DELETE("/:id/participants/:identity", rt.meetingHandler.Kick)
	meetings.POST("/:id/audio", rt.meetingHandler.UploadAudio)
	meetings.POST("/:id/reprocess", rt.meetingHandler.Reprocess)

	meetings.GET("/:id/transcript", rt.summaryHandler.GetTranscript)
	meetings.GET("/:id/summary", rt.summaryHandler.GetSummary)
	meetings.GET("/:id/export", rt.summaryHandler.ExportMarkdown)
	meetings.GET("/:id/action-items", rt.actionItemHandler.ListByMeeting)
}

func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	items := g.Group("/action-items")

	items.GET("/mine", rt.actionItemHandler.ListMine)
	items.PATCH("/:id", rt.actionItemHandler.UpdateStatus)
	items.POST("/:id/jira", rt.actionItemHandler.SyncToJira)
}

func (rt *Router) setupStorageTestRoutes(g *echo.Group) {
	test := g.Group("/test/storage")

	test.POST("/upload", rt.storageTest.TestUpload)
	test.GET("/bucket", rt.storageTest.TestBucketInfo)
	test.GET("/files", rt.storageTest.TestListFiles)
	test.GET("/url", rt.storageTest.TestDownloadURL)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
