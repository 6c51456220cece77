package extraction

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Service is the action-item extraction pipeline. Extract is pure and
// total: it never returns an error and never panics; a transcript that
// yields nothing produces an empty slice. Safe for concurrent use; every
// call builds its own roster index and intermediate state.
type Service interface {
	Extract(ctx context.Context, transcript string, roster []Participant) []ActionItem
}

type extractService struct {
	cfg      Config
	strategy Strategy
	chat     ChatCompleter
	logger   *zap.Logger
}

var _ Service = (*extractService)(nil)

// Option customizes service construction.
type Option func(*extractService)

// WithStrategy overrides the strategy chosen from Config.Strategy. Used by
// tests and by callers that assemble their own pooling.
func WithStrategy(s Strategy) Option {
	return func(svc *extractService) {
		svc.strategy = s
	}
}

// WithChatClient supplies the chat-completions client the "model" strategy
// needs. Ignored for the other strategies.
func WithChatClient(chat ChatCompleter) Option {
	return func(svc *extractService) {
		svc.chat = chat
	}
}

// NewService constructs an extraction service. Dependencies are explicit:
// no package-level state, so tests construct fresh isolated instances.
func NewService(cfg Config, logger *zap.Logger, opts ...Option) Service {
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = DefaultConfig().MinSimilarity
	}
	if cfg.DedupThreshold <= 0 {
		cfg.DedupThreshold = DefaultConfig().DedupThreshold
	}
	if cfg.MinTaskLength <= 0 {
		cfg.MinTaskLength = DefaultConfig().MinTaskLength
	}

	svc := &extractService{
		cfg:    cfg,
		logger: logger,
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.strategy == nil {
		svc.strategy = NewStrategy(cfg, logger, svc.chat)
	}

	return svc
}

// Extract runs the full pipeline: segment the transcript, extract candidates
// per clause, resolve each mention against the roster, clean and validate the
// task, classify, dedup, and sort by confidence descending (stable, so ties
// keep discovery order). Candidates whose mention resolves to nobody are
// dropped, never emitted as unassigned.
func (s *extractService) Extract(ctx context.Context, transcript string, roster []Participant) []ActionItem {
	items := []ActionItem{}

	if transcript == "" {
		return items
	}

	idx := buildRosterIndex(roster)
	if idx.isEmpty() {
		return items
	}

	clauses := segment(transcript)
	dedup := newDeduper(s.cfg.DedupThreshold)

	for _, clause := range clauses {
		if isNoise(clause) {
			continue
		}

		for _, cand := range s.extractClause(ctx, clause) {
			participant, ok := resolveParticipant(cand.Assignee, idx, s.cfg.MinSimilarity)
			if !ok {
				continue
			}

			task := cleanTask(cand.Task)
			if !validTask(task, participant, idx, s.cfg.MinTaskLength) {
				continue
			}

			item := ActionItem{
				Text:          task,
				Assignee:      participant.Name,
				AssigneeEmail: participant.Email,
				Priority:      scorePriority(clause),
				Category:      categorize(task),
				Status:        StatusPending,
				Completed:     false,
				Confidence:    cand.Confidence,
			}

			if dedup.add(item) && s.logger != nil {
				s.logger.Debug("action item extracted",
					zap.String("assignee", item.Assignee),
					zap.String("task", truncate(item.Text, 50)),
					zap.String("pattern", cand.Pattern),
				)
			}
		}
	}

	items = dedup.list()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Confidence > items[j].Confidence
	})

	if s.logger != nil {
		s.logger.Info("✅ Action item extraction completed",
			zap.Int("clauses", len(clauses)),
			zap.Int("items", len(items)),
			zap.String("strategy", s.strategy.Name()),
		)
	}

	return items
}

// extractClause contains strategy failures at clause scope: an error or a
// panic inside one strategy invocation yields zero candidates for that clause
// and never aborts the rest of the transcript.
func (s *extractService) extractClause(ctx context.Context, clause string) (candidates []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.Error("extraction panicked on clause",
					zap.Any("panic", r),
					zap.String("clause", truncate(clause, 80)),
				)
			}
			candidates = nil
		}
	}()

	candidates, err := s.strategy.Extract(ctx, clause)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("extraction failed on clause",
				zap.Error(err),
				zap.String("clause", truncate(clause, 80)),
			)
		}
		return nil
	}

	return candidates
}
