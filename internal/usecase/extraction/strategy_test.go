package extraction

import (
	"context"
	"errors"
	"testing"
)

func TestNewStrategySelection(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		chat     ChatCompleter
		want     string
	}{
		{"default", "", nil, StrategyPattern},
		{"pattern", StrategyPattern, nil, StrategyPattern},
		{"syntax pools", StrategySyntax, nil, StrategySyntax},
		{"model without client falls back", StrategyModel, nil, StrategyPattern},
		{"model with client", StrategyModel, fakeChat{reply: "[]"}, StrategyModel},
		{"unknown falls back", "quantum", nil, StrategyPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Strategy = tt.strategy
			s := NewStrategy(cfg, nil, tt.chat)
			if s.Name() != tt.want {
				t.Errorf("NewStrategy(%q).Name() = %q, want %q", tt.strategy, s.Name(), tt.want)
			}
		})
	}
}

func TestPatternStrategyMatchesTable(t *testing.T) {
	s := NewPatternStrategy(nil)
	ctx := context.Background()

	tests := []struct {
		clause       string
		wantAssignee string
		wantTask     string
		wantPattern  string
	}{
		{"Sneha, you will be doing the documentation", "Sneha", "documentation", "direct-address-future"},
		{"Mike will handle the deployment checklist", "Mike", "deployment checklist", "will-handle"},
		{"John, you need to finalize the budget", "John", "finalize the budget", "direct-address-need"},
		{"Dave, can you please check the pipeline", "Dave", "check the pipeline", "polite-request"},
		{"Sarah will be working on the client presentation", "Sarah", "client presentation", "will-work-on"},
		{"Emma will analyze the usage metrics", "Emma", "usage metrics", "will-verb"},
		{"Anna needs to update the onboarding docs", "Anna", "update the onboarding docs", "needs-to"},
		{"Lisa should review the mockups", "Lisa", "review the mockups", "should"},
	}

	for _, tt := range tests {
		t.Run(tt.wantPattern, func(t *testing.T) {
			candidates, err := s.Extract(ctx, tt.clause)
			if err != nil {
				t.Fatalf("Extract(%q) error: %v", tt.clause, err)
			}
			if len(candidates) == 0 {
				t.Fatalf("Extract(%q) matched nothing", tt.clause)
			}

			got := candidates[0]
			if got.Assignee != tt.wantAssignee || got.Task != tt.wantTask || got.Pattern != tt.wantPattern {
				t.Errorf("Extract(%q) = %+v, want assignee %q task %q pattern %q",
					tt.clause, got, tt.wantAssignee, tt.wantTask, tt.wantPattern)
			}
		})
	}
}

func TestPatternStrategyStopsAtConnector(t *testing.T) {
	s := NewPatternStrategy(nil)

	candidates, err := s.Extract(context.Background(),
		"Sneha, you will be doing the documentation and Ria, you will be doing the slides")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected a match")
	}
	if candidates[0].Task != "documentation" {
		t.Errorf("task capture swallowed the second assignment: %q", candidates[0].Task)
	}
}

func TestSyntaxStrategy(t *testing.T) {
	s := NewSyntaxStrategy(nil)
	ctx := context.Background()

	t.Run("verb with capitalized subject", func(t *testing.T) {
		candidates, err := s.Extract(ctx, "Sneha can prepare the agenda for tomorrow")
		if err != nil {
			t.Fatal(err)
		}
		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %+v", candidates)
		}
		if candidates[0].Assignee != "Sneha" {
			t.Errorf("assignee = %q, want Sneha", candidates[0].Assignee)
		}
		if candidates[0].Task != "the agenda for tomorrow" {
			t.Errorf("task = %q", candidates[0].Task)
		}
		if candidates[0].Confidence != syntaxConfidence {
			t.Errorf("confidence = %v", candidates[0].Confidence)
		}
	})

	t.Run("two token name", func(t *testing.T) {
		candidates, err := s.Extract(ctx, "Maybe John Smith should review the budget numbers")
		if err != nil {
			t.Fatal(err)
		}
		if len(candidates) != 1 || candidates[0].Assignee != "John Smith" {
			t.Fatalf("expected John Smith, got %+v", candidates)
		}
	})

	t.Run("no verb no candidate", func(t *testing.T) {
		candidates, err := s.Extract(ctx, "The weather was lovely this morning")
		if err != nil {
			t.Fatal(err)
		}
		if len(candidates) != 0 {
			t.Errorf("expected nothing, got %+v", candidates)
		}
	})

	t.Run("no subject no candidate", func(t *testing.T) {
		candidates, err := s.Extract(ctx, "we should just review everything again sometime")
		if err != nil {
			t.Fatal(err)
		}
		if len(candidates) != 0 {
			t.Errorf("expected nothing, got %+v", candidates)
		}
	})
}

type fakeChat struct {
	reply string
	err   error
}

func (f fakeChat) ChatJSON(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func TestModelStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("parses assignments", func(t *testing.T) {
		s := NewModelStrategy(fakeChat{reply: `[{"assignee":"Ria","task":"the slides"},{"assignee":"","task":"ignored"}]`}, nil)
		candidates, err := s.Extract(ctx, "whatever the clause was")
		if err != nil {
			t.Fatal(err)
		}
		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %+v", candidates)
		}
		if candidates[0].Assignee != "Ria" || candidates[0].Task != "the slides" {
			t.Errorf("unexpected candidate %+v", candidates[0])
		}
		if candidates[0].Confidence != modelConfidence {
			t.Errorf("confidence = %v", candidates[0].Confidence)
		}
	})

	t.Run("prose-wrapped array", func(t *testing.T) {
		s := NewModelStrategy(fakeChat{reply: "Sure! Here you go: [{\"assignee\":\"Ria\",\"task\":\"the slides\"}] Anything else?"}, nil)
		candidates, err := s.Extract(ctx, "clause")
		if err != nil {
			t.Fatal(err)
		}
		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %+v", candidates)
		}
	})

	t.Run("transport error surfaces", func(t *testing.T) {
		s := NewModelStrategy(fakeChat{err: errors.New("timeout")}, nil)
		if _, err := s.Extract(ctx, "clause"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("malformed reply surfaces", func(t *testing.T) {
		s := NewModelStrategy(fakeChat{reply: "I could not find any assignments."}, nil)
		if _, err := s.Extract(ctx, "clause"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestPooledStrategyContainsMemberFailure(t *testing.T) {
	pooled := &pooledStrategy{
		name: "test-pool",
		strategies: []Strategy{
			&failingStrategy{err: errors.New("member down")},
			NewPatternStrategy(nil),
		},
	}

	candidates, err := pooled.Extract(context.Background(), "Lisa should review the mockups")
	if err != nil {
		t.Fatalf("pooled strategy surfaced a member error: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("surviving member's candidates were lost")
	}
}
