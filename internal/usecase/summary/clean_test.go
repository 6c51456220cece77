package summary

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace",
			in:   "Sarah   will\n\nreview the   doc",
			want: "Sarah will review the doc",
		},
		{
			name: "strips filler words",
			in:   "So um Sarah will uh review the doc",
			want: "So Sarah will review the doc",
		},
		{
			name: "filler before comma leaves no stray space",
			in:   "Okay um, let's begin",
			want: "Okay, let's begin",
		},
		{
			name: "expands spoken contractions",
			in:   "Mike is gonna review it and I wanna help",
			want: "Mike is going to review it and I want to help",
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTranscript(tt.in); got != tt.want {
				t.Errorf("cleanTranscript(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First point. Second point! Third?  ")
	want := []string{"First point", "Second point", "Third"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitSentences mismatch (-want +got):\n%s", diff)
	}
}
