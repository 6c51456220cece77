package extraction

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// actionVerbs is the fixed vocabulary the syntax extractor anchors on.
var actionVerbs = map[string]struct{}{
	"doing": {}, "create": {}, "handle": {}, "update": {}, "review": {},
	"manage": {}, "prepare": {}, "finalize": {}, "coordinate": {}, "organize": {},
	"send": {}, "submit": {}, "deliver": {}, "working": {}, "develop": {},
	"build": {}, "design": {}, "test": {}, "document": {}, "write": {},
	"do": {}, "make": {}, "implement": {}, "complete": {}, "process": {},
	"analyze": {}, "check": {},
}

const (
	syntaxConfidence = 0.85
	syntaxLookback   = 4 // tokens scanned left of the verb for a name
)

// syntaxStrategy is a parser-free approximation of dependency extraction:
// find an action verb, walk left a small window for a capitalized name-like
// subject, take the span right of the verb as the object. It recovers
// assignments that transcript disfluency hides from the anchored patterns.
type syntaxStrategy struct {
	logger *zap.Logger
}

// NewSyntaxStrategy constructs the verb-phrase extractor.
func NewSyntaxStrategy(logger *zap.Logger) Strategy {
	return &syntaxStrategy{logger: logger}
}

func (s *syntaxStrategy) Name() string {
	return StrategySyntax
}

func (s *syntaxStrategy) Extract(_ context.Context, clause string) ([]Candidate, error) {
	tokens := strings.Fields(clause)
	if len(tokens) < 3 {
		return nil, nil
	}

	var candidates []Candidate

	for vi, tok := range tokens {
		verb := normalizeToken(tok)
		if _, ok := actionVerbs[verb]; !ok {
			continue
		}
		if vi == 0 || vi == len(tokens)-1 {
			continue
		}

		assignee := subjectBefore(tokens, vi)
		if assignee == "" {
			continue
		}

		task := strings.TrimSpace(strings.Join(tokens[vi+1:], " "))
		if task == "" {
			continue
		}

		candidates = append(candidates, Candidate{
			Assignee:   assignee,
			Task:       task,
			Confidence: syntaxConfidence,
			Pattern:    "syntax-verb-object",
		})

		// One candidate per clause keeps the heuristic conservative; the
		// first verb hit is the main predicate in short clauses.
		break
	}

	if len(candidates) > 0 && s.logger != nil {
		s.logger.Debug("syntax extraction matched",
			zap.String("clause", truncate(clause, 80)),
		)
	}

	return candidates, nil
}

// subjectBefore scans left of the verb for the nearest capitalized name-like
// token, extending one token left when two capitalized tokens are adjacent
// (first + last name).
func subjectBefore(tokens []string, verbIdx int) string {
	start := verbIdx - syntaxLookback
	if start < 0 {
		start = 0
	}

	for i := verbIdx - 1; i >= start; i-- {
		tok := normalizeToken(tokens[i])
		if !isNameLike(tokens[i]) {
			continue
		}
		if i > 0 && isNameLike(tokens[i-1]) {
			return normalizeToken(tokens[i-1]) + " " + tok
		}
		return tok
	}

	return ""
}

// normalizeToken strips surrounding punctuation from a token.
func normalizeToken(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// isNameLike reports whether a token looks like a proper-noun mention:
// capitalized first letter, letters only after punctuation stripping.
func isNameLike(tok string) bool {
	clean := normalizeToken(tok)
	if clean == "" {
		return false
	}
	runes := []rune(clean)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
