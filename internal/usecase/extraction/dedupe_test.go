package extraction

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeduperExactKey(t *testing.T) {
	d := newDeduper(0.98)

	first := ActionItem{Assignee: "Sneha", Text: "finish the documentation", Confidence: 0.99}
	if !d.add(first) {
		t.Fatal("first item was suppressed")
	}

	// Same assignee and text from a second pattern, different casing.
	dup := ActionItem{Assignee: "sneha", Text: "Finish The Documentation", Confidence: 0.96}
	if d.add(dup) {
		t.Error("case-insensitive duplicate was not suppressed")
	}

	if got := len(d.list()); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
	if d.list()[0].Confidence != 0.99 {
		t.Error("first-seen item should win")
	}
}

func TestDeduperSimilarityBar(t *testing.T) {
	d := newDeduper(0.98)

	long := "coordinate the quarterly planning session with the regional leads and collect all the agenda topics"
	// Differs within the first 50 characters, so the exact key misses it,
	// but similarity is well above the bar.
	nearDup := "coordinate the quartely planning session with the regional leads and collect all the agenda topics"

	if !d.add(ActionItem{Assignee: "Mike", Text: long}) {
		t.Fatal("first item was suppressed")
	}
	if d.add(ActionItem{Assignee: "Mike", Text: nearDup}) {
		t.Error("near-identical text was not suppressed")
	}

	// Same assignee, genuinely different task: must survive.
	if !d.add(ActionItem{Assignee: "Mike", Text: "review the hiring plan"}) {
		t.Error("distinct task for same assignee was suppressed")
	}

	// Same text, different assignee: must survive.
	if !d.add(ActionItem{Assignee: "Lisa", Text: long}) {
		t.Error("same task for different assignee was suppressed")
	}

	if got := len(d.list()); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
}

func TestDedupKeyTruncatesOnRuneBoundary(t *testing.T) {
	// Multi-byte text longer than the key prefix: truncation must cut
	// between runes, never inside one.
	text := strings.Repeat("日", dedupKeyPrefixLen+10)

	key := dedupKey("Mike", text)

	if !utf8.ValidString(key) {
		t.Fatalf("key is not valid UTF-8: %q", key)
	}
	if want := "mike:" + strings.Repeat("日", dedupKeyPrefixLen); key != want {
		t.Errorf("key = %q, want %q", key, want)
	}
}

func TestDeduperKeepsFirstSeenOrder(t *testing.T) {
	d := newDeduper(0.98)
	d.add(ActionItem{Assignee: "A", Text: "first task here"})
	d.add(ActionItem{Assignee: "B", Text: "second task here"})
	d.add(ActionItem{Assignee: "C", Text: "third task here"})

	items := d.list()
	for i, want := range []string{"A", "B", "C"} {
		if items[i].Assignee != want {
			t.Fatalf("order not preserved: got %+v", items)
		}
	}
}
