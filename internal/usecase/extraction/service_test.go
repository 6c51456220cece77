package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestService(t *testing.T, opts ...Option) Service {
	t.Helper()
	return NewService(DefaultConfig(), nil, opts...)
}

func roster(names ...string) []Participant {
	ps := make([]Participant, 0, len(names))
	for _, n := range names {
		ps = append(ps, Participant{Name: n})
	}
	return ps
}

func findByAssignee(t *testing.T, items []ActionItem, assignee string) ActionItem {
	t.Helper()
	for _, it := range items {
		if it.Assignee == assignee {
			return it
		}
	}
	t.Fatalf("no item assigned to %q in %+v", assignee, items)
	return ActionItem{}
}

func TestExtractMultiAssignmentSentence(t *testing.T) {
	transcript := "Hello, so we will be starting with our meet now. " +
		"Sneha, you will be doing the documentation and Ria, you will be doing the power point presentation. " +
		"So yeah, that is the end of our meet. Thank you."

	svc := newTestService(t)
	items := svc.Extract(context.Background(), transcript, roster("Sneha", "Ria"))

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}

	sneha := findByAssignee(t, items, "Sneha")
	if !strings.Contains(strings.ToLower(sneha.Text), "documentation") {
		t.Errorf("Sneha's task should mention documentation, got %q", sneha.Text)
	}
	for _, leaked := range []string{"ria", "power point"} {
		if strings.Contains(strings.ToLower(sneha.Text), leaked) {
			t.Errorf("Sneha's task leaked %q: %q", leaked, sneha.Text)
		}
	}

	ria := findByAssignee(t, items, "Ria")
	lower := strings.ToLower(ria.Text)
	if !strings.Contains(lower, "power point") && !strings.Contains(lower, "presentation") {
		t.Errorf("Ria's task should mention the presentation, got %q", ria.Text)
	}
	for _, leaked := range []string{"sneha", "documentation"} {
		if strings.Contains(lower, leaked) {
			t.Errorf("Ria's task leaked %q: %q", leaked, ria.Text)
		}
	}
}

func TestExtractSeparateSentences(t *testing.T) {
	transcript := "John, you need to finalize the budget report by Friday. " +
		"Sarah will be working on the client presentation."

	svc := newTestService(t)
	items := svc.Extract(context.Background(), transcript, roster("John", "Sarah"))

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}

	john := findByAssignee(t, items, "John")
	if !strings.Contains(strings.ToLower(john.Text), "budget") {
		t.Errorf("John's task should mention the budget, got %q", john.Text)
	}
	if strings.Contains(strings.ToLower(john.Text), "sarah") {
		t.Errorf("John's task leaked Sarah: %q", john.Text)
	}

	sarah := findByAssignee(t, items, "Sarah")
	if !strings.Contains(strings.ToLower(sarah.Text), "presentation") {
		t.Errorf("Sarah's task should mention the presentation, got %q", sarah.Text)
	}
	if strings.Contains(strings.ToLower(sarah.Text), "john") {
		t.Errorf("Sarah's task leaked John: %q", sarah.Text)
	}
}

func TestExtractGreetingOnlyTranscript(t *testing.T) {
	svc := newTestService(t)
	items := svc.Extract(context.Background(),
		"Hello team, thank you, that's all for today.",
		roster("Sneha", "Ria"),
	)

	if len(items) != 0 {
		t.Fatalf("expected no items from a greeting-only transcript, got %+v", items)
	}
}

func TestExtractFuzzyNameResolution(t *testing.T) {
	svc := newTestService(t)
	items := svc.Extract(context.Background(),
		"Bria, you will be doing the documentation.",
		roster("Ria"),
	)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
	if items[0].Assignee != "Ria" {
		t.Errorf("expected fuzzy match Bria -> Ria, got assignee %q", items[0].Assignee)
	}
}

func TestExtractDedupsOverlappingPatterns(t *testing.T) {
	// "will do" is matched by both the will-handle and will-verb patterns;
	// only one item must survive.
	svc := newTestService(t)
	items := svc.Extract(context.Background(),
		"Mike will do the code review.",
		roster("Mike"),
	)

	if len(items) != 1 {
		t.Fatalf("expected 1 item after dedup, got %d: %+v", len(items), items)
	}
	if items[0].Confidence != 0.98 {
		t.Errorf("expected the first-seen (higher confidence) item to win, got %v", items[0].Confidence)
	}
}

func TestExtractUnresolvableAssigneesDropped(t *testing.T) {
	svc := newTestService(t)
	items := svc.Extract(context.Background(),
		"Bob will handle the deployment. Tom needs to update the website.",
		roster("Alice Chen"),
	)

	if len(items) != 0 {
		t.Fatalf("expected unresolvable assignees to be dropped, got %+v", items)
	}
}

func TestExtractEmptyInputs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if items := svc.Extract(ctx, "", nil); len(items) != 0 {
		t.Errorf("empty transcript and roster: expected no items, got %+v", items)
	}
	if items := svc.Extract(ctx, "", roster("Sneha")); len(items) != 0 {
		t.Errorf("empty transcript: expected no items, got %+v", items)
	}
	if items := svc.Extract(ctx, "Sneha will handle the report.", nil); len(items) != 0 {
		t.Errorf("empty roster: expected no items, got %+v", items)
	}
}

func TestExtractHonorificMention(t *testing.T) {
	svc := newTestService(t)
	items := svc.Extract(context.Background(),
		"Nurse Johnson will handle the lab results for ward three.",
		roster("Sarah Johnson"),
	)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
	if items[0].Assignee != "Sarah Johnson" {
		t.Errorf("expected honorific mention to resolve via last name, got %q", items[0].Assignee)
	}
}

func TestExtractPriorityFromUrgencyCues(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	high := svc.Extract(ctx, "John, you need to finalize the urgent budget numbers.", roster("John"))
	if len(high) != 1 || high[0].Priority != PriorityHigh {
		t.Errorf("expected high priority, got %+v", high)
	}

	low := svc.Extract(ctx, "Sarah should update the style guide later.", roster("Sarah"))
	if len(low) != 1 || low[0].Priority != PriorityLow {
		t.Errorf("expected low priority, got %+v", low)
	}

	medium := svc.Extract(ctx, "Mike will handle the release notes.", roster("Mike"))
	if len(medium) != 1 || medium[0].Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %+v", medium)
	}
}

// propertyCorpus exercises the pipeline-wide invariants across varied
// transcripts: multi-assignment chains, noise, misspellings, urgency cues.
var propertyCorpus = []struct {
	name       string
	transcript string
	roster     []Participant
}{
	{
		name: "team standup",
		transcript: "Hello, so we will be starting with our meet now. " +
			"Sneha, you will be doing the documentation and Ria, you will be doing the power point presentation. " +
			"So yeah, that is the end of our meet. Thank you.",
		roster: roster("Sneha", "Ria"),
	},
	{
		name: "corporate planning",
		transcript: "John, you need to finalize the budget report by Friday. " +
			"Sarah will be working on the client presentation. " +
			"Mike will handle the server deployment and Lisa should review the design mockups.",
		roster: roster("John", "Sarah", "Mike", "Lisa"),
	},
	{
		name: "chained assignments",
		transcript: "Tom will handle the backend migration and Jerry will handle the frontend cleanup " +
			"and Anna needs to update the onboarding docs.",
		roster: roster("Tom", "Jerry", "Anna"),
	},
	{
		name:       "misspelled mention",
		transcript: "Bria, you will be doing the documentation. Sneha should prepare the slides.",
		roster:     roster("Ria", "Sneha"),
	},
	{
		name:       "urgent work",
		transcript: "Dave, can you please check the critical pipeline failure? Emma will analyze the usage metrics later.",
		roster:     roster("Dave", "Emma"),
	},
}

func TestExtractProperties(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, tc := range propertyCorpus {
		t.Run(tc.name, func(t *testing.T) {
			items := svc.Extract(ctx, tc.transcript, tc.roster)

			rosterNames := make(map[string]Participant, len(tc.roster))
			for _, p := range tc.roster {
				rosterNames[p.Name] = p
			}

			for i, item := range items {
				// Assignee names a roster participant, roster casing preserved.
				if _, ok := rosterNames[item.Assignee]; !ok {
					t.Errorf("item %d assignee %q not in roster", i, item.Assignee)
				}

				// No other participant's name leaks into the text.
				textLower := strings.ToLower(item.Text)
				for _, p := range tc.roster {
					if p.Name == item.Assignee {
						continue
					}
					if strings.Contains(textLower, strings.ToLower(p.Name)) {
						t.Errorf("item %d text leaks %q: %q", i, p.Name, item.Text)
					}
				}

				// Confidence ordering is non-increasing.
				if i > 0 && items[i-1].Confidence < item.Confidence {
					t.Errorf("confidence not sorted at %d: %v < %v", i, items[i-1].Confidence, item.Confidence)
				}

				// Initial lifecycle state.
				if item.Status != StatusPending || item.Completed {
					t.Errorf("item %d not in initial state: %+v", i, item)
				}
				if item.Confidence < 0 || item.Confidence > 1 {
					t.Errorf("item %d confidence out of range: %v", i, item.Confidence)
				}

				// No near-duplicates per assignee.
				for j := i + 1; j < len(items); j++ {
					if !strings.EqualFold(items[j].Assignee, item.Assignee) {
						continue
					}
					sim := similarityRatio(strings.ToLower(item.Text), strings.ToLower(items[j].Text))
					if sim >= 0.98 {
						t.Errorf("near-duplicate items for %s: %q vs %q (%.3f)", item.Assignee, item.Text, items[j].Text, sim)
					}
				}
			}
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, tc := range propertyCorpus {
		first := svc.Extract(ctx, tc.transcript, tc.roster)
		second := svc.Extract(ctx, tc.transcript, tc.roster)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: repeated extraction differs (-first +second):\n%s", tc.name, diff)
		}
	}
}

type failingStrategy struct{ err error }

func (f *failingStrategy) Name() string { return "failing" }
func (f *failingStrategy) Extract(context.Context, string) ([]Candidate, error) {
	return nil, f.err
}

type panickingStrategy struct{}

func (panickingStrategy) Name() string { return "panicking" }
func (panickingStrategy) Extract(context.Context, string) ([]Candidate, error) {
	panic("boom")
}

func TestExtractContainsStrategyFailures(t *testing.T) {
	ctx := context.Background()
	participants := roster("Sneha")

	failing := NewService(DefaultConfig(), nil, WithStrategy(&failingStrategy{err: errors.New("bad clause")}))
	if items := failing.Extract(ctx, "Sneha will handle the report.", participants); len(items) != 0 {
		t.Errorf("failing strategy should yield zero items, got %+v", items)
	}

	panicking := NewService(DefaultConfig(), nil, WithStrategy(panickingStrategy{}))
	if items := panicking.Extract(ctx, "Sneha will handle the report.", participants); len(items) != 0 {
		t.Errorf("panicking strategy should be contained, got %+v", items)
	}
}
