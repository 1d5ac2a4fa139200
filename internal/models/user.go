package models

import "strings"

// User is a trip participant. The display name is the whole identity.
type User struct {
	Name string
}

// DefaultParticipants is the roster a fresh trip starts with.
var DefaultParticipants = []string{"Iwa", "Caca", "Ciko", "Chris", "Dojeng", "Haneul", "Adrian"}

// Roster is an immutable, ordered set of participant names.
//
// Settlements are computed against a Roster passed by value. Adding a
// participant never mutates an existing Roster; Append returns a new one.
type Roster struct {
	names []string
}

// NewRoster builds a roster from names, trimming whitespace and dropping
// blanks and duplicates. Order of first appearance is kept.
func NewRoster(names ...string) Roster {
	var r Roster
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || r.Contains(n) {
			continue
		}
		r.names = append(r.names, n)
	}
	return r
}

// DefaultRoster returns a roster of DefaultParticipants.
func DefaultRoster() Roster {
	return NewRoster(DefaultParticipants...)
}

// Append returns a new roster with name added at the end.
// Appending a name already present returns an equal roster.
func (r Roster) Append(name string) (Roster, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r, Invalid("name", "is required")
	}
	if r.Contains(name) {
		return r, nil
	}
	names := make([]string, len(r.names), len(r.names)+1)
	copy(names, r.names)
	return Roster{names: append(names, name)}, nil
}

// Extend appends every name in order, skipping blanks.
func (r Roster) Extend(names ...string) Roster {
	for _, n := range names {
		if next, err := r.Append(n); err == nil {
			r = next
		}
	}
	return r
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// Len returns the number of participants.
func (r Roster) Len() int {
	return len(r.names)
}

// Names returns a copy of the participant names in roster order.
func (r Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
