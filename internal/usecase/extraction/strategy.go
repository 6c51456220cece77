package extraction

import (
	"context"

	"go.uber.org/zap"
)

// Strategy produces assignment candidates from one clause. Implementations
// must be safe for concurrent use and must not hold per-call state.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, clause string) ([]Candidate, error)
}

var (
	_ Strategy = (*patternStrategy)(nil)
	_ Strategy = (*syntaxStrategy)(nil)
	_ Strategy = (*modelStrategy)(nil)
	_ Strategy = (*pooledStrategy)(nil)
)

// NewStrategy selects an extractor by Config.Strategy. The richer variants
// pool the pattern extractor with an additional one; their outputs are merged
// and left for dedup to arbitrate. Unknown names fall back to pattern with a
// warning, as does "model" without a chat client.
func NewStrategy(cfg Config, logger *zap.Logger, chat ChatCompleter) Strategy {
	pattern := NewPatternStrategy(logger)

	switch cfg.Strategy {
	case StrategyPattern, "":
		return pattern

	case StrategySyntax:
		return &pooledStrategy{
			name:       StrategySyntax,
			strategies: []Strategy{pattern, NewSyntaxStrategy(logger)},
			logger:     logger,
		}

	case StrategyModel:
		if chat == nil {
			if logger != nil {
				logger.Warn("model strategy selected but no chat client configured, falling back to pattern")
			}
			return pattern
		}
		return &pooledStrategy{
			name:       StrategyModel,
			strategies: []Strategy{pattern, NewModelStrategy(chat, logger)},
			logger:     logger,
		}

	default:
		if logger != nil {
			logger.Warn("unknown extraction strategy, falling back to pattern",
				zap.String("strategy", cfg.Strategy),
			)
		}
		return pattern
	}
}

// pooledStrategy runs several strategies over the same clause and merges
// their candidates. A failing member contributes zero candidates; it never
// aborts the clause.
type pooledStrategy struct {
	name       string
	strategies []Strategy
	logger     *zap.Logger
}

func (s *pooledStrategy) Name() string {
	return s.name
}

func (s *pooledStrategy) Extract(ctx context.Context, clause string) ([]Candidate, error) {
	var pooled []Candidate

	for _, strat := range s.strategies {
		candidates, err := strat.Extract(ctx, clause)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("extraction strategy failed for clause",
					zap.String("strategy", strat.Name()),
					zap.Error(err),
				)
			}
			continue
		}
		pooled = append(pooled, candidates...)
	}

	return pooled, nil
}
