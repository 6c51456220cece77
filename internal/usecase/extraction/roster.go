package extraction

import "strings"

// rosterIndex is a read-only lookup view over one call's roster. It is
// rebuilt per extraction call; nothing in it survives across calls.
type rosterIndex struct {
	byFullName  map[string]Participant
	byFirstName map[string]Participant
	byLastName  map[string]Participant
	allNames    []string // lowercased full names, for fuzzy search
}

// buildRosterIndex builds the name lookup maps from a roster. Entries with a
// blank name are ignored. Later roster entries win first/last-name collisions,
// matching insertion order.
func buildRosterIndex(roster []Participant) *rosterIndex {
	idx := &rosterIndex{
		byFullName:  make(map[string]Participant, len(roster)),
		byFirstName: make(map[string]Participant, len(roster)),
		byLastName:  make(map[string]Participant, len(roster)),
		allNames:    make([]string, 0, len(roster)),
	}

	for _, p := range roster {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		p.Name = name

		nameLower := strings.ToLower(name)
		idx.byFullName[nameLower] = p
		idx.allNames = append(idx.allNames, nameLower)

		parts := strings.Fields(nameLower)
		if len(parts) > 0 {
			idx.byFirstName[parts[0]] = p
			if len(parts) > 1 {
				idx.byLastName[parts[len(parts)-1]] = p
			}
		}
	}

	return idx
}

// isEmpty reports whether the index holds no participants.
func (idx *rosterIndex) isEmpty() bool {
	return len(idx.allNames) == 0
}

// firstNameOf returns the first token of a lowercased full name.
func firstNameOf(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
