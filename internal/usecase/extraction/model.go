package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ChatCompleter is the subset of the chat-completions client the model
// strategy needs. pkg/ai.GroqClient satisfies it.
type ChatCompleter interface {
	ChatJSON(ctx context.Context, system, user string) (string, error)
}

const modelConfidence = 0.90

const modelSystemPrompt = `You extract task assignments from meeting transcript fragments. ` +
	`Reply with a JSON array only, no prose. Each element: {"assignee": "<name as spoken>", "task": "<task text>"}. ` +
	`Reply [] when the fragment assigns nothing.`

// modelStrategy asks a chat model for assignments in one clause. Any failure
// (transport, timeout, malformed JSON) is contained: the clause just yields
// no model candidates.
type modelStrategy struct {
	chat   ChatCompleter
	logger *zap.Logger
}

// NewModelStrategy constructs the chat-model extractor.
func NewModelStrategy(chat ChatCompleter, logger *zap.Logger) Strategy {
	return &modelStrategy{chat: chat, logger: logger}
}

func (s *modelStrategy) Name() string {
	return StrategyModel
}

type modelAssignment struct {
	Assignee string `json:"assignee"`
	Task     string `json:"task"`
}

func (s *modelStrategy) Extract(ctx context.Context, clause string) ([]Candidate, error) {
	reply, err := s.chat.ChatJSON(ctx, modelSystemPrompt, clause)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	var assignments []modelAssignment
	if err := json.Unmarshal([]byte(extractJSONArray(reply)), &assignments); err != nil {
		return nil, fmt.Errorf("malformed model reply: %w", err)
	}

	candidates := make([]Candidate, 0, len(assignments))
	for _, a := range assignments {
		assignee := strings.TrimSpace(a.Assignee)
		task := strings.TrimSpace(a.Task)
		if assignee == "" || task == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Assignee:   assignee,
			Task:       task,
			Confidence: modelConfidence,
			Pattern:    "model-chat",
		})
	}

	if s.logger != nil {
		s.logger.Debug("model extraction replied",
			zap.Int("candidates", len(candidates)),
		)
	}

	return candidates, nil
}

// extractJSONArray trims prose a model may wrap around the JSON array.
func extractJSONArray(reply string) string {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end < start {
		return reply
	}
	return reply[start : end+1]
}
