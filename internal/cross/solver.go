// Package cross implements the moment-distribution (Hardy Cross) method for
// continuous beams under uniform loads. A Solver owns the beam as plain
// Member/Node/StepRecord slices addressed by index, derives all stiffness
// and distribution coefficients at initialization, and balances unbalanced
// interior joints one relaxation step at a time until every joint's residual
// is below tolerance.
//
// The solver is single-threaded: every operation is a finite in-memory
// computation, and callers driving one Solver from multiple goroutines must
// serialize access themselves.
package cross

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxSteps is the balancing step budget before a solve is
	// declared non-convergent.
	DefaultMaxSteps = 50

	// DefaultDecimals is the moment tolerance, in decimal places, used
	// when an out-of-range tolerance is requested.
	DefaultDecimals = 1

	// MinDecimals and MaxDecimals bound the supported tolerance range.
	MinDecimals = 0
	MaxDecimals = 2

	// DefaultEI is the flexural stiffness (kN-m²) applied to spans whose
	// stiffness is not known, e.g. when loading the plain-text beam
	// format, which does not persist EI.
	DefaultEI = 10000.0

	// MinSpanLength (m) is the shortest span a topology edit may leave
	// behind.
	MinSpanLength = 0.5
)

// Options holds tunable solver parameters.
type Options struct {
	// MaxSteps is the balancing step budget. Zero or negative selects
	// DefaultMaxSteps.
	MaxSteps int
}

// DefaultOptions returns the solver defaults: a step budget of
// DefaultMaxSteps.
func DefaultOptions() Options {
	return Options{MaxSteps: DefaultMaxSteps}
}

// Solver drives the moment-distribution method over one beam. All beam
// state lives in the solver's own slices; topology edits rebuild them
// wholesale, so no derived coefficient can survive a stale topology.
type Solver struct {
	members []Member
	nodes   []Node
	steps   []StepRecord

	left, right Boundary
	decimals    int
	threshold   float64
	maxSteps    int
}

// New returns an empty solver. Initialize must be called before stepping.
func New(opts Options) *Solver {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	return &Solver{
		decimals:  DefaultDecimals,
		threshold: toleranceThreshold(DefaultDecimals),
		maxSteps:  opts.MaxSteps,
	}
}

func toleranceThreshold(decimals int) float64 {
	return math.Pow(10, -float64(decimals+1))
}

// Initialize (re)builds the whole beam: member stiffness coefficients, node
// distribution and carry-over coefficients, fixed-end moments, an empty step
// history, and zeroed joint rotations.
//
// decimals is the moment tolerance in decimal places (0..2). An
// out-of-range value is replaced by DefaultDecimals and reported as
// ErrToleranceOutOfRange; the solver is nonetheless fully initialized and
// usable. Structural failures (no spans, non-positive length or stiffness,
// a degenerate joint) leave the previous state untouched.
func (s *Solver) Initialize(spans []Span, left, right Boundary, decimals int) error {
	var tolErr error
	if decimals < MinDecimals || decimals > MaxDecimals {
		tolErr = fmt.Errorf("%w: %d (using default of %d)", ErrToleranceOutOfRange, decimals, DefaultDecimals)
		decimals = DefaultDecimals
	}

	members, nodes, err := derive(spans, left, right)
	if err != nil {
		return err
	}

	s.members = members
	s.nodes = nodes
	s.steps = s.steps[:0]
	s.left = left
	s.right = right
	s.decimals = decimals
	s.threshold = toleranceThreshold(decimals)
	return tolErr
}

// derive builds fresh member and node slices from a topology description.
// It validates the spans, computes stiffness and fixed-end moments, and
// derives all node coefficients, failing before any division by a zero
// stiffness sum.
func derive(spans []Span, left, right Boundary) ([]Member, []Node, error) {
	n := len(spans)
	if n == 0 {
		return nil, nil, fmt.Errorf("cross: beam must have at least one span")
	}
	for i, sp := range spans {
		if sp.Length <= 0 {
			return nil, nil, fmt.Errorf("cross: span %d has non-positive length %.3f", i, sp.Length)
		}
		if sp.EI <= 0 {
			return nil, nil, fmt.Errorf("cross: span %d has non-positive stiffness %.3f", i, sp.EI)
		}
	}

	members := make([]Member, n)
	for i, sp := range spans {
		m := &members[i]
		m.EI = sp.EI
		m.L = sp.Length
		m.Q = sp.Load
		m.computeStiffness(i, n, left, right)
		m.assignFixedEndMoments(i, n, left, right)
	}

	if n == 1 && members[0].K == 0 {
		return nil, nil, fmt.Errorf("%w: single span with both ends free", ErrDegenerateStiffness)
	}

	nodes := make([]Node, n-1)
	for i := range nodes {
		kl := members[i].K
		kr := members[i+1].K
		sum := kl + kr
		if sum == 0 {
			return nil, nil, fmt.Errorf("%w: joint %d", ErrDegenerateStiffness, i)
		}
		nd := &nodes[i]
		nd.DL = kl / sum
		nd.DR = kr / sum
		nd.TL = 0.5
		nd.TR = 0.5
		if i == 0 && (left == Pinned || left == Free) {
			nd.TL = 0
		}
		if i == len(nodes)-1 && (right == Pinned || right == Free) {
			nd.TR = 0
		}
	}
	return members, nodes, nil
}

// reinitialize re-derives moments, coefficients, and rotations from the
// solver's current topology, clearing the step history. Used by topology
// edits and by RunToConvergence.
func (s *Solver) reinitialize() error {
	return s.rebuild(s.spans())
}

// rebuild replaces the beam topology, re-deriving everything. On failure
// the previous state is kept.
func (s *Solver) rebuild(spans []Span) error {
	members, nodes, err := derive(spans, s.left, s.right)
	if err != nil {
		return err
	}
	s.members = members
	s.nodes = nodes
	s.steps = s.steps[:0]
	return nil
}

// spans extracts the current topology description from the members.
func (s *Solver) spans() []Span {
	spans := make([]Span, len(s.members))
	for i, m := range s.members {
		spans[i] = Span{Length: m.L, Load: m.Q, EI: m.EI}
	}
	return spans
}

// UnbalancedMoment returns the continuity residual at a node: the sum of
// the adjacent member end moments. Returns 0 for an out-of-range index.
func (s *Solver) UnbalancedMoment(i int) float64 {
	if i < 0 || i >= len(s.nodes) {
		return 0
	}
	return s.members[i].MR + s.members[i+1].ML
}

// Unbalanced reports whether a node's residual exceeds the tolerance.
func (s *Solver) Unbalanced(i int) bool {
	return math.Abs(s.UnbalancedMoment(i)) > s.threshold
}

// MostUnbalancedNode scans all nodes in index order and returns the one
// with the largest absolute residual above tolerance. Ties keep the lowest
// index: only a strictly larger residual displaces the current best. The
// second return value is false when every node is within tolerance.
func (s *Solver) MostUnbalancedNode() (int, bool) {
	best := s.threshold
	idx := -1
	for i := range s.nodes {
		if u := math.Abs(s.UnbalancedMoment(i)); u > best {
			best = u
			idx = i
		}
	}
	return idx, idx >= 0
}

// HasMoreSteps reports whether any node still exceeds tolerance.
func (s *Solver) HasMoreSteps() bool {
	_, ok := s.MostUnbalancedNode()
	return ok
}

// ProcessNode performs one relaxation step at node i unconditionally: it
// distributes the negated residual between the two adjacent member ends in
// proportion to their stiffness, carries half of each correction to the far
// ends where permitted, accumulates the joint rotation, and appends a
// StepRecord. Callers decide whether the node is worth balancing.
//
// Fails with ErrStepOverflow, applying nothing, if the step budget is
// already exhausted.
func (s *Solver) ProcessNode(i int) error {
	if i < 0 || i >= len(s.nodes) {
		return fmt.Errorf("%w: %d", ErrInvalidNodeIndex, i)
	}
	if len(s.steps) >= s.maxSteps {
		return fmt.Errorf("%w after %d steps", ErrStepOverflow, s.maxSteps)
	}

	left := &s.members[i]
	right := &s.members[i+1]
	nd := &s.nodes[i]

	unbal := left.MR + right.ML
	bml := -unbal * nd.DL
	bmr := -unbal * nd.DR
	tml := bml * nd.TL
	tmr := bmr * nd.TR

	left.MR += bml
	left.ML += tml
	right.ML += bmr
	right.MR += tmr

	nd.Rot += -unbal / (left.K + right.K)

	s.steps = append(s.steps, StepRecord{Node: i, BML: bml, BMR: bmr, TML: tml, TMR: tmr})
	return nil
}

// StepAt balances node i if it exists and is currently unbalanced. An
// out-of-range index or a node already within tolerance is a no-op,
// reported through the boolean. The error is non-nil only for a fatal
// condition (step overflow).
func (s *Solver) StepAt(i int) (bool, error) {
	if i < 0 || i >= len(s.nodes) {
		return false, nil
	}
	if !s.Unbalanced(i) {
		return false, nil
	}
	if err := s.ProcessNode(i); err != nil {
		return false, err
	}
	return true, nil
}

// AutoStep balances the most unbalanced node, if any. Returns false when
// the beam is already converged.
func (s *Solver) AutoStep() (bool, error) {
	i, ok := s.MostUnbalancedNode()
	if !ok {
		return false, nil
	}
	if err := s.ProcessNode(i); err != nil {
		return false, err
	}
	return true, nil
}

// RunToConvergence re-initializes moments and rotations, then balances the
// most unbalanced node repeatedly until every node is within tolerance.
// When the beam is already converged it returns immediately without
// touching state, so a repeated call performs no steps. Fails with
// ErrStepOverflow when the step budget runs out first.
func (s *Solver) RunToConvergence() error {
	if !s.HasMoreSteps() {
		return nil
	}
	if err := s.reinitialize(); err != nil {
		return err
	}
	for {
		stepped, err := s.AutoStep()
		if err != nil {
			return err
		}
		if !stepped {
			return nil
		}
	}
}

// NumMembers returns the number of spans.
func (s *Solver) NumMembers() int { return len(s.members) }

// NumNodes returns the number of interior joints, always NumMembers-1.
func (s *Solver) NumNodes() int { return len(s.nodes) }

// Members returns a copy of the member states.
func (s *Solver) Members() []Member {
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// Nodes returns a copy of the node states.
func (s *Solver) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Steps returns a copy of the balancing history in execution order.
func (s *Solver) Steps() []StepRecord {
	out := make([]StepRecord, len(s.steps))
	copy(out, s.steps)
	return out
}

// Boundaries returns the outer boundary conditions.
func (s *Solver) Boundaries() (left, right Boundary) {
	return s.left, s.right
}

// Decimals returns the moment tolerance in decimal places.
func (s *Solver) Decimals() int { return s.decimals }

// Threshold returns the numeric unbalance threshold, 10^-(decimals+1).
func (s *Solver) Threshold() float64 { return s.threshold }

// TotalLength returns the sum of all member lengths.
func (s *Solver) TotalLength() float64 {
	var total float64
	for _, m := range s.members {
		total += m.L
	}
	return total
}

// FormatMoment renders a moment value at the configured tolerance.
func (s *Solver) FormatMoment(v float64) string {
	return fmt.Sprintf("%.*f", s.decimals, v)
}
