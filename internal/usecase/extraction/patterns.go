package extraction

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// assignmentPattern pairs a clause-anchored regex with a fixed confidence.
// Group 1 captures the assignee mention, group 2 the task text. Every task
// capture stops at a trailing "and Name ..." connector, terminal punctuation,
// or clause end so a single match never swallows a second assignment.
type assignmentPattern struct {
	id         string
	re         *regexp.Regexp
	confidence float64
}

// assignmentPatterns is ordered from most to least specific. Confidences are
// fixed per pattern, not calibrated probabilities. More than one pattern may
// fire on the same clause; the dedup stage arbitrates.
var assignmentPatterns = []assignmentPattern{
	{
		id:         "direct-address-future",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?),\s+you\s+will\s+(?:be\s+)?(?:handle|do|doing|working on)\s+(?:the\s+)?(.+?)(?:\s+and\s+\w+|\.|$)`),
		confidence: 0.99,
	},
	{
		id:         "will-handle",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?)\s+will\s+(?:handle|do|be doing)\s+(?:the\s+)?(.+?)(?:\s+and\s+\w+(?:\s+\w+)?(?:\s+will|\s+needs)|\.|$)`),
		confidence: 0.98,
	},
	{
		id:         "direct-address-need",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?),\s+you\s+(?:need|should)\s+(?:to\s+)?(.+?)(?:\s+and\s+\w+|\.|$)`),
		confidence: 0.98,
	},
	{
		id:         "polite-request",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?),\s+can\s+you\s+(?:please\s+)?(.+?)(?:\s+and\s+\w+|\?|$)`),
		confidence: 0.97,
	},
	{
		id:         "will-work-on",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?)\s+will\s+be\s+working\s+on\s+(?:the\s+)?(.+?)(?:\s+and\s+\w+|\.|$)`),
		confidence: 0.97,
	},
	{
		id:         "will-verb",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?)\s+will\s+(?:handle|create|manage|update|finalize|coordinate|organize|prepare|review|send|submit|deliver|check|verify|document|write|research|develop|build|design|test|schedule|contact|do|make|implement|complete|process|analyze)(?:\s+(?:the|a)\s+)?(.+?)(?:\s+and\s+\w+(?:\s+\w+)?(?:\s+will)|\.|$)`),
		confidence: 0.96,
	},
	{
		id:         "needs-to",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?)\s+needs?\s+to\s+(?:be\s+)?(?:do\s+)?(?:the\s+)?(.+?)(?:\s+and\s+\w+|\.|$)`),
		confidence: 0.95,
	},
	{
		id:         "should",
		re:         regexp.MustCompile(`(?i)^(\w+(?:\s+\w+)?)\s+should\s+(?:be\s+)?(.+?)(?:\s+and\s+\w+|\.|$)`),
		confidence: 0.94,
	},
}

// patternStrategy runs the ordered regex table against a clause.
type patternStrategy struct {
	logger *zap.Logger
}

// NewPatternStrategy constructs the default rule-based extractor.
func NewPatternStrategy(logger *zap.Logger) Strategy {
	return &patternStrategy{logger: logger}
}

func (s *patternStrategy) Name() string {
	return StrategyPattern
}

// Extract returns one candidate per matching pattern. Patterns anchor at
// clause start, so each fires at most once per clause.
func (s *patternStrategy) Extract(_ context.Context, clause string) ([]Candidate, error) {
	var candidates []Candidate

	for _, p := range assignmentPatterns {
		groups := p.re.FindStringSubmatch(clause)
		if groups == nil || len(groups) < 3 {
			continue
		}

		assignee := strings.TrimSpace(groups[1])
		task := strings.TrimSpace(groups[2])
		if assignee == "" || task == "" {
			continue
		}

		candidates = append(candidates, Candidate{
			Assignee:   assignee,
			Task:       task,
			Confidence: p.confidence,
			Pattern:    p.id,
		})
	}

	if len(candidates) > 0 && s.logger != nil {
		s.logger.Debug("pattern extraction matched",
			zap.Int("candidates", len(candidates)),
			zap.String("clause", truncate(clause, 80)),
		)
	}

	return candidates, nil
}

// truncate shortens a string for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
