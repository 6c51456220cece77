package extraction

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []string
	}{
		{
			name:       "terminal punctuation",
			transcript: "We reviewed the roadmap. Questions came up! Nothing was decided? Moving on.",
			want: []string{
				"We reviewed the roadmap",
				"Questions came up",
				"Nothing was decided",
				"Moving on.",
			},
		},
		{
			name:       "multi assignment sentence",
			transcript: "Sneha, you will be doing the documentation and Ria, you will be doing the presentation.",
			want: []string{
				"Sneha, you will be doing the documentation",
				"Ria, you will be doing the presentation.",
			},
		},
		{
			name: "three chained assignments",
			transcript: "Tom will handle the backend and Jerry will handle the frontend " +
				"and Anna needs to update the docs.",
			want: []string{
				"Tom will handle the backend",
				"Jerry will handle the frontend",
				"Anna needs to update the docs.",
			},
		},
		{
			name:       "short clauses dropped",
			transcript: "Hi. Ok. Moving on to the agenda.",
			want:       []string{"Moving on to the agenda."},
		},
		{
			name:       "plain and is not a connector",
			transcript: "Sarah will prepare the slides and the handout.",
			want:       []string{"Sarah will prepare the slides and the handout."},
		},
		{
			name:       "empty",
			transcript: "",
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segment(tt.transcript)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("segment() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsNoise(t *testing.T) {
	tests := []struct {
		clause string
		want   bool
	}{
		{"Hello team, welcome back", true},
		{"Thank you all for joining", true},
		{"that is the end of our meet", true},
		{"So yeah, moving on", true},
		{"Alright team, let's go", true},
		{"Sneha will handle the documentation", false},
		{"John, you need to finalize the budget", false},
	}

	for _, tt := range tests {
		if got := isNoise(tt.clause); got != tt.want {
			t.Errorf("isNoise(%q) = %v, want %v", tt.clause, got, tt.want)
		}
	}
}
