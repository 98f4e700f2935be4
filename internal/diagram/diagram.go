// Package diagram renders a solved continuous beam for the terminal and for
// image export. It consumes the solver's output surface only: member end
// moments, span geometry, and boundary conditions. No analysis happens
// here.
package diagram

import (
	"github.com/alexiusacademia/gocross/internal/cross"
)

// BeamData is the slice of solver output a diagram needs.
type BeamData struct {
	Members []cross.Member
	Left    cross.Boundary
	Right   cross.Boundary
}

// FromSolver captures the current solver state for drawing.
func FromSolver(s *cross.Solver) BeamData {
	left, right := s.Boundaries()
	return BeamData{Members: s.Members(), Left: left, Right: right}
}

// TotalLength returns the beam length.
func (d BeamData) TotalLength() float64 {
	var total float64
	for _, m := range d.Members {
		total += m.L
	}
	return total
}

// MomentAt evaluates the bending moment (sagging positive) within member m
// at distance x from its left end, superposing the end moments on the
// simple-beam parabola q·x·(L−x)/2.
func MomentAt(m cross.Member, x float64) float64 {
	return -m.ML*(1-x/m.L) + m.MR*(x/m.L) + m.Q*x*(m.L-x)/2
}

// SampleMoments samples the bending moment along the whole beam at
// perSpan+1 stations per member (span ends included), returning one
// flat series suitable for plotting.
func (d BeamData) SampleMoments(perSpan int) []float64 {
	if perSpan < 1 {
		perSpan = 1
	}
	out := make([]float64, 0, len(d.Members)*perSpan+1)
	for i, m := range d.Members {
		start := 0
		if i > 0 {
			start = 1 // shared station with the previous span
		}
		for j := start; j <= perSpan; j++ {
			x := m.L * float64(j) / float64(perSpan)
			out = append(out, MomentAt(m, x))
		}
	}
	return out
}
