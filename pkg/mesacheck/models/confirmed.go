package models

import "sort"

// ConfirmedSet is the set of item coordinates marked as present.
// The zero value is an empty set ready to use. A nil *ConfirmedSet reads
// as empty and ignores Remove and Clear; Add and Toggle need a non-nil set.
type ConfirmedSet struct {
	m map[Coord]struct{}
}

// NewConfirmedSet returns a set holding coords.
func NewConfirmedSet(coords ...Coord) *ConfirmedSet {
	s := &ConfirmedSet{}
	for _, c := range coords {
		s.Add(c)
	}
	return s
}

// Add inserts c.
func (s *ConfirmedSet) Add(c Coord) {
	if s.m == nil {
		s.m = make(map[Coord]struct{})
	}
	s.m[c] = struct{}{}
}

// Remove deletes c.
func (s *ConfirmedSet) Remove(c Coord) {
	if s == nil {
		return
	}
	delete(s.m, c)
}

// Toggle flips the membership of c and reports the new state.
func (s *ConfirmedSet) Toggle(c Coord) bool {
	if s.Contains(c) {
		s.Remove(c)
		return false
	}
	s.Add(c)
	return true
}

// Contains reports whether c is confirmed.
func (s *ConfirmedSet) Contains(c Coord) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[c]
	return ok
}

// Len returns the number of confirmed coordinates.
func (s *ConfirmedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Clear empties the set.
func (s *ConfirmedSet) Clear() {
	if s == nil {
		return
	}
	s.m = nil
}

// Coords returns the members in row-major order.
func (s *ConfirmedSet) Coords() []Coord {
	if s == nil {
		return nil
	}
	out := make([]Coord, 0, len(s.m))
	for c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Clone returns an independent copy.
func (s *ConfirmedSet) Clone() *ConfirmedSet {
	return NewConfirmedSet(s.Coords()...)
}
