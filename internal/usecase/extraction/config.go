package extraction

// Strategy names accepted by Config.Strategy
const (
	StrategyPattern = "pattern"
	StrategySyntax  = "syntax"
	StrategyModel   = "model"
)

// Config controls the extraction pipeline. Thresholds were tuned against the
// similarity ratio implemented in this package; changing one without the
// other shifts precision/recall.
type Config struct {
	// Strategy selects the extractor: "pattern" (default), "syntax"
	// (pattern + verb-phrase heuristics), or "model" (pattern + chat model).
	Strategy string

	// MinSimilarity is the fuzzy name-match floor for participant resolution.
	MinSimilarity float64

	// DedupThreshold is the task-similarity bar above which two items for the
	// same assignee are considered duplicates.
	DedupThreshold float64

	// MinTaskLength rejects cleaned tasks shorter than this many characters.
	MinTaskLength int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:       StrategyPattern,
		MinSimilarity:  0.65,
		DedupThreshold: 0.98,
		MinTaskLength:  3,
	}
}
