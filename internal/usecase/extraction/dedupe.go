package extraction

import "strings"

const dedupKeyPrefixLen = 50

// deduper suppresses near-duplicate items per assignee, keeping first-seen
// order. Two checks: an exact composite key (assignee + task prefix) and a
// similarity bar against every earlier item of the same assignee. The bar is
// deliberately high: it catches the same clause matched by two patterns, not
// two genuinely different tasks for one person.
type deduper struct {
	threshold float64
	seenKeys  map[string]struct{}
	items     []ActionItem
}

func newDeduper(threshold float64) *deduper {
	return &deduper{
		threshold: threshold,
		seenKeys:  make(map[string]struct{}),
	}
}

// add appends the item unless it duplicates an earlier one. Returns false
// when the item was suppressed.
func (d *deduper) add(item ActionItem) bool {
	key := dedupKey(item.Assignee, item.Text)
	if _, seen := d.seenKeys[key]; seen {
		return false
	}

	assigneeLower := strings.ToLower(item.Assignee)
	textLower := strings.ToLower(item.Text)
	for _, existing := range d.items {
		if strings.ToLower(existing.Assignee) != assigneeLower {
			continue
		}
		if similarityRatio(textLower, strings.ToLower(existing.Text)) >= d.threshold {
			return false
		}
	}

	d.seenKeys[key] = struct{}{}
	d.items = append(d.items, item)
	return true
}

// list returns accepted items in first-seen order.
func (d *deduper) list() []ActionItem {
	return d.items
}

func dedupKey(assignee, text string) string {
	t := []rune(strings.ToLower(text))
	if len(t) > dedupKeyPrefixLen {
		t = t[:dedupKeyPrefixLen]
	}
	return strings.ToLower(assignee) + ":" + string(t)
}
