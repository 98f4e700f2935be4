package cross

import (
	"fmt"
	"math"
)

// Boundary is the support condition at one of the two outer ends of the beam.
type Boundary int

const (
	Pinned Boundary = iota // simple support, no moment restraint
	Fixed                  // full rotational restraint
	Free                   // cantilever tip, no support
)

// String returns the lowercase name of the boundary condition.
func (b Boundary) String() string {
	switch b {
	case Pinned:
		return "pinned"
	case Fixed:
		return "fixed"
	case Free:
		return "free"
	}
	return fmt.Sprintf("boundary(%d)", int(b))
}

// ParseBoundary converts a name ("pinned", "fixed", "free") to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "pinned":
		return Pinned, nil
	case "fixed":
		return Fixed, nil
	case "free":
		return Free, nil
	}
	return 0, fmt.Errorf("cross: unknown boundary condition %q", s)
}

// BoundaryFromCode converts a persisted integer code (0, 1, 2) to a Boundary.
func BoundaryFromCode(c int) (Boundary, error) {
	if c < int(Pinned) || c > int(Free) {
		return 0, fmt.Errorf("cross: unknown boundary code %d", c)
	}
	return Boundary(c), nil
}

// Span is the topology input for one member: what an editor or a beam file
// supplies before the solver derives anything.
type Span struct {
	Length float64 // m
	Load   float64 // uniform load q (kN/m), signed
	EI     float64 // flexural stiffness (kN-m²)
}

// Member represents one beam span between two supports (or a support and a
// free tip), carrying its physical data and its current end moments.
type Member struct {
	// Input
	EI float64 // flexural stiffness (kN-m²)
	L  float64 // span length (m)
	Q  float64 // uniform distributed load (kN/m), signed

	// Current end moments (kN-m), set by initialization and mutated only
	// by balancing steps.
	ML float64
	MR float64

	// K is the rotational stiffness coefficient, derived from EI, L and
	// the restraint at the far end: 4EI/L between continuous ends or
	// toward a fixed boundary, 3EI/L toward a pinned boundary, 0 toward
	// a free boundary.
	K float64
}

// stiffnessFor returns the rotational stiffness of the member when its far
// end has the given boundary condition.
func (m *Member) stiffnessFor(far Boundary) float64 {
	switch far {
	case Fixed:
		return 4 * m.EI / m.L
	case Pinned:
		return 3 * m.EI / m.L
	case Free:
		return 0
	}
	return 4 * m.EI / m.L
}

// computeStiffness derives K for the member at position i of n members,
// given the two outer boundary conditions. Interior members use 4EI/L.
// A single-member beam is governed by both boundaries at once; its
// stiffness is zero only when both ends are free.
func (m *Member) computeStiffness(i, n int, left, right Boundary) {
	switch {
	case n == 1:
		m.K = math.Max(m.stiffnessFor(left), m.stiffnessFor(right))
	case i == 0:
		m.K = m.stiffnessFor(left)
	case i == n-1:
		m.K = m.stiffnessFor(right)
	default:
		m.K = 4 * m.EI / m.L
	}
}

// assignFixedEndMoments loads the member with the closed-form fixed-end
// moments for a uniform load, adjusted for the boundary role of its ends.
// Interior (and fixed-ended) spans take the classic ±qL²/12 pair; a span
// hinged at an outer end takes qL²/8 at its continuous end; a cantilever
// takes the static qL²/2 at its built-in end and zero at the free tip.
func (m *Member) assignFixedEndMoments(i, n int, left, right Boundary) {
	ql2 := m.Q * m.L * m.L

	m.ML = ql2 / 12
	m.MR = -ql2 / 12

	if n == 1 {
		// Both boundaries act on the same span.
		switch {
		case left == Free:
			m.ML = 0
			m.MR = ql2 / 2
		case right == Free:
			m.ML = -ql2 / 2
			m.MR = 0
		case left == Pinned && right == Pinned:
			m.ML = 0
			m.MR = 0
		case left == Pinned:
			m.ML = 0
			m.MR = -ql2 / 8
		case right == Pinned:
			m.ML = ql2 / 8
			m.MR = 0
		}
		return
	}

	if i == 0 {
		switch left {
		case Pinned:
			m.ML = 0
			m.MR = -ql2 / 8
		case Free:
			m.ML = 0
			m.MR = ql2 / 2
		}
	}
	if i == n-1 {
		switch right {
		case Pinned:
			m.MR = 0
			m.ML = ql2 / 8
		case Free:
			m.MR = 0
			m.ML = -ql2 / 2
		}
	}
}
