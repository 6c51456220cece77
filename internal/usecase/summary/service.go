package summary

import (
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/usecase/extraction"
)

// MethodRule marks summaries produced by the rule-based pipeline.
const MethodRule = "rule"

// Assignment is one task assignment surfaced in the summary.
type Assignment struct {
	Assignee string `json:"assignee"`
	Task     string `json:"task"`
}

// Result is a generated meeting summary.
type Result struct {
	Text        string
	KeyPoints   []string
	Assignments []Assignment
	Method      string
}

// Service generates meeting summaries from raw transcripts.
type Service interface {
	Summarize(transcript string, roster []extraction.Participant) Result
}

type service struct {
	logger *zap.Logger
}

// NewService creates the rule-based summarizer. It makes no external calls.
func NewService(logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{logger: logger}
}

func (s *service) Summarize(transcript string, roster []extraction.Participant) Result {
	cleaned := cleanTranscript(transcript)
	comp := extractComponents(cleaned, roster)

	text := buildSummary(comp)
	keyPoints := comp.significantPoints()
	if text == "" {
		// Nothing structured was found. Fall back to extractive selection.
		text, keyPoints = extractiveSummary(cleaned)
	}

	s.logger.Debug("summary generated",
		zap.Int("participants", len(comp.participants)),
		zap.Int("assignments", len(comp.assignments)),
		zap.Int("key_points", len(keyPoints)))

	return Result{
		Text:        text,
		KeyPoints:   keyPoints,
		Assignments: comp.assignments,
		Method:      MethodRule,
	}
}
