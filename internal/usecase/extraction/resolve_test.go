package extraction

import "testing"

func TestResolveParticipant(t *testing.T) {
	idx := buildRosterIndex([]Participant{
		{Name: "Sneha Kumar", Email: "sneha@example.com"},
		{Name: "Ria", Email: "ria@example.com"},
		{Name: "John Smith", Email: "john@example.com"},
	})

	tests := []struct {
		name     string
		mention  string
		want     string
		resolved bool
	}{
		{"exact full name", "sneha kumar", "Sneha Kumar", true},
		{"full name case insensitive", "JOHN SMITH", "John Smith", true},
		{"first name", "Sneha", "Sneha Kumar", true},
		{"last name", "Smith", "John Smith", true},
		{"honorific doctor", "Dr. Smith", "John Smith", true},
		{"honorific nurse", "nurse smith", "John Smith", true},
		{"fuzzy misspelling", "Bria", "Ria", true},
		{"below similarity floor", "Zorblatt", "", false},
		{"empty mention", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveParticipant(tt.mention, idx, 0.65)
			if ok != tt.resolved {
				t.Fatalf("resolveParticipant(%q) resolved = %v, want %v", tt.mention, ok, tt.resolved)
			}
			if ok && got.Name != tt.want {
				t.Errorf("resolveParticipant(%q) = %q, want %q", tt.mention, got.Name, tt.want)
			}
		})
	}
}

func TestResolveParticipantPreservesRosterRecord(t *testing.T) {
	idx := buildRosterIndex([]Participant{{Name: "Ria", Email: "ria@example.com"}})

	p, ok := resolveParticipant("bria", idx, 0.65)
	if !ok {
		t.Fatal("expected fuzzy resolution")
	}
	if p.Email != "ria@example.com" {
		t.Errorf("resolution lost the roster email: %+v", p)
	}
}

func TestBuildRosterIndexSkipsBlankNames(t *testing.T) {
	idx := buildRosterIndex([]Participant{
		{Name: "  "},
		{Name: "Ria"},
	})

	if len(idx.allNames) != 1 {
		t.Fatalf("expected 1 indexed name, got %v", idx.allNames)
	}
	if idx.isEmpty() {
		t.Error("index with one participant reported empty")
	}
}
