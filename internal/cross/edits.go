package cross

import "fmt"

// Topology edits. Every successful edit rebuilds the beam from scratch:
// stiffness, distribution and carry-over coefficients, fixed-end moments,
// and rotations are re-derived, and the step history is cleared. A rejected
// edit applies no state change.

// InsertSupport splits member i at offset (measured from its left end) into
// two members whose lengths sum to the original, both inheriting the
// original load and stiffness. The offset must leave at least MinSpanLength
// on each side.
func (s *Solver) InsertSupport(i int, offset float64) error {
	if i < 0 || i >= len(s.members) {
		return fmt.Errorf("%w: member %d out of range", ErrInvalidTopologyEdit, i)
	}
	m := s.members[i]
	if offset < MinSpanLength || offset > m.L-MinSpanLength {
		return fmt.Errorf("%w: offset %.3f leaves a span shorter than %.3f", ErrInvalidTopologyEdit, offset, MinSpanLength)
	}

	spans := s.spans()
	split := []Span{
		{Length: offset, Load: m.Q, EI: m.EI},
		{Length: m.L - offset, Load: m.Q, EI: m.EI},
	}
	spans = append(spans[:i], append(split, spans[i+1:]...)...)
	return s.rebuild(spans)
}

// DeleteSupport removes interior node i, merging its two adjacent members
// into one: the length is the sum of the two, the load and stiffness are
// their arithmetic means. Refused when fewer than two interior nodes
// remain.
func (s *Solver) DeleteSupport(i int) error {
	if len(s.nodes) < 2 {
		return fmt.Errorf("%w: beam must keep at least one interior support", ErrInvalidTopologyEdit)
	}
	if i < 0 || i >= len(s.nodes) {
		return fmt.Errorf("%w: node %d out of range", ErrInvalidTopologyEdit, i)
	}

	l, r := s.members[i], s.members[i+1]
	merged := Span{
		Length: l.L + r.L,
		Load:   (l.Q + r.Q) / 2,
		EI:     (l.EI + r.EI) / 2,
	}

	spans := s.spans()
	spans[i] = merged
	spans = append(spans[:i+1], spans[i+2:]...)
	return s.rebuild(spans)
}

// MoveSupport shifts interior node i by transferring length between its two
// adjacent members: a positive shift lengthens the left member at the
// expense of the right. The shift is clamped so neither member drops below
// MinSpanLength.
func (s *Solver) MoveSupport(i int, shift float64) error {
	if i < 0 || i >= len(s.nodes) {
		return fmt.Errorf("%w: node %d out of range", ErrInvalidTopologyEdit, i)
	}

	l, r := s.members[i], s.members[i+1]
	if max := r.L - MinSpanLength; shift > max {
		shift = max
	}
	if min := -(l.L - MinSpanLength); shift < min {
		shift = min
	}

	spans := s.spans()
	spans[i].Length += shift
	spans[i+1].Length -= shift
	return s.rebuild(spans)
}

// SetMemberLoad replaces the uniform load on member i.
func (s *Solver) SetMemberLoad(i int, load float64) error {
	if i < 0 || i >= len(s.members) {
		return fmt.Errorf("%w: member %d out of range", ErrInvalidTopologyEdit, i)
	}
	spans := s.spans()
	spans[i].Load = load
	return s.rebuild(spans)
}
