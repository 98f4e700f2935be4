package cross_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocross/internal/cross"
)

// goldenSpans is the textbook three-span beam used throughout: EI=10000,
// lengths 8/6/6, loads 8/38/28, pinned left, fixed right, tolerance one
// decimal place.
func goldenSpans() []cross.Span {
	return []cross.Span{
		{Length: 8, Load: 8, EI: 10000},
		{Length: 6, Load: 38, EI: 10000},
		{Length: 6, Load: 28, EI: 10000},
	}
}

func goldenSolver(t *testing.T) *cross.Solver {
	t.Helper()
	s := cross.New(cross.DefaultOptions())
	require.NoError(t, s.Initialize(goldenSpans(), cross.Pinned, cross.Fixed, 1))
	return s
}

func TestInitialize_FixedEndMoments(t *testing.T) {
	s := goldenSolver(t)
	members := s.Members()
	require.Len(t, members, 3)

	want := []struct{ ml, mr float64 }{
		{0, -64},    // pinned outer end: hinge moment 0, continuous end -qL²/8
		{114, -114}, // interior: ±qL²/12
		{84, -84},   // fixed outer end: ±qL²/12
	}
	for i, w := range want {
		assert.InDelta(t, w.ml, members[i].ML, 1e-9, "member %d ML", i)
		assert.InDelta(t, w.mr, members[i].MR, 1e-9, "member %d MR", i)
	}
}

func TestInitialize_NodeCoefficients(t *testing.T) {
	s := goldenSolver(t)
	nodes := s.Nodes()
	require.Len(t, nodes, 2)

	// k = 3EI/L toward the pinned end, 4EI/L elsewhere.
	k0 := 3.0 * 10000 / 8
	k1 := 4.0 * 10000 / 6

	assert.InDelta(t, k0/(k0+k1), nodes[0].DL, 1e-12)
	assert.InDelta(t, k1/(k0+k1), nodes[0].DR, 1e-12)
	assert.InDelta(t, 0.5, nodes[1].DL, 1e-12)
	assert.InDelta(t, 0.5, nodes[1].DR, 1e-12)

	for i, n := range nodes {
		assert.InDelta(t, 1.0, n.DL+n.DR, 1e-12, "node %d distribution sum", i)
		assert.Zero(t, n.Rot, "node %d rotation after init", i)
	}

	// No carry-over toward the pinned outer end; half elsewhere.
	assert.Equal(t, 0.0, nodes[0].TL)
	assert.Equal(t, 0.5, nodes[0].TR)
	assert.Equal(t, 0.5, nodes[1].TL)
	assert.Equal(t, 0.5, nodes[1].TR)
}

func TestInitialize_ToleranceFallback(t *testing.T) {
	for _, decimals := range []int{-1, 3, 7} {
		s := cross.New(cross.DefaultOptions())
		err := s.Initialize(goldenSpans(), cross.Pinned, cross.Fixed, decimals)
		require.ErrorIs(t, err, cross.ErrToleranceOutOfRange, "decimals=%d", decimals)

		// The solver recovers with the default and stays usable.
		assert.Equal(t, cross.DefaultDecimals, s.Decimals())
		assert.Equal(t, 3, s.NumMembers())
		assert.True(t, s.HasMoreSteps())
	}
}

func TestInitialize_RejectsBadSpans(t *testing.T) {
	cases := []struct {
		name  string
		spans []cross.Span
	}{
		{"NoSpans", nil},
		{"ZeroLength", []cross.Span{{Length: 0, Load: 5, EI: 10000}}},
		{"ZeroStiffness", []cross.Span{{Length: 4, Load: 5, EI: 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := goldenSolver(t)
			before := s.Members()

			err := s.Initialize(tc.spans, cross.Pinned, cross.Pinned, 1)
			require.Error(t, err)

			// A failed initialization leaves the previous beam intact.
			assert.Equal(t, before, s.Members())
		})
	}
}

func TestUnbalancedMoment(t *testing.T) {
	s := goldenSolver(t)

	assert.InDelta(t, 50, s.UnbalancedMoment(0), 1e-9)  // -64 + 114
	assert.InDelta(t, -30, s.UnbalancedMoment(1), 1e-9) // -114 + 84
	assert.True(t, s.Unbalanced(0))
	assert.True(t, s.Unbalanced(1))

	assert.Zero(t, s.UnbalancedMoment(-1))
	assert.Zero(t, s.UnbalancedMoment(2))
}

func TestProcessNode_RestoresLocalBalance(t *testing.T) {
	s := goldenSolver(t)
	for _, node := range []int{0, 1} {
		require.NoError(t, s.ProcessNode(node))
		assert.InDelta(t, 0, s.UnbalancedMoment(node), 1e-9,
			"node %d residual immediately after balancing", node)
	}
	assert.Len(t, s.Steps(), 2)
}

func TestProcessNode_UpdatesRotation(t *testing.T) {
	s := goldenSolver(t)
	unbal := s.UnbalancedMoment(0)
	k0 := 3.0 * 10000 / 8
	k1 := 4.0 * 10000 / 6

	require.NoError(t, s.ProcessNode(0))
	assert.InDelta(t, -unbal/(k0+k1), s.Nodes()[0].Rot, 1e-15)
}

func TestProcessNode_InvalidIndex(t *testing.T) {
	s := goldenSolver(t)
	require.ErrorIs(t, s.ProcessNode(-1), cross.ErrInvalidNodeIndex)
	require.ErrorIs(t, s.ProcessNode(2), cross.ErrInvalidNodeIndex)
	assert.Empty(t, s.Steps())
}

func TestMostUnbalancedNode_TieBreak(t *testing.T) {
	// Equal loads on the outer spans of a symmetric fixed-fixed beam give
	// two joints with residuals of equal magnitude (+30 and -30); the
	// lowest index must win.
	spans := []cross.Span{
		{Length: 6, Load: 10, EI: 10000},
		{Length: 6, Load: 20, EI: 10000},
		{Length: 6, Load: 10, EI: 10000},
	}
	s := cross.New(cross.DefaultOptions())
	require.NoError(t, s.Initialize(spans, cross.Fixed, cross.Fixed, 1))

	require.InDelta(t, 30, s.UnbalancedMoment(0), 1e-9)
	require.InDelta(t, -30, s.UnbalancedMoment(1), 1e-9)

	idx, ok := s.MostUnbalancedNode()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMostUnbalancedNode_Converged(t *testing.T) {
	// A symmetric fixed-fixed beam with equal spans and loads starts
	// perfectly balanced.
	spans := []cross.Span{
		{Length: 6, Load: 12, EI: 10000},
		{Length: 6, Load: 12, EI: 10000},
	}
	s := cross.New(cross.DefaultOptions())
	require.NoError(t, s.Initialize(spans, cross.Fixed, cross.Fixed, 1))

	_, ok := s.MostUnbalancedNode()
	assert.False(t, ok)
	assert.False(t, s.HasMoreSteps())
}

func TestStepAt(t *testing.T) {
	s := goldenSolver(t)

	// Out of range is a quiet no-op, not an error.
	stepped, err := s.StepAt(-1)
	require.NoError(t, err)
	assert.False(t, stepped)
	stepped, err = s.StepAt(5)
	require.NoError(t, err)
	assert.False(t, stepped)

	// An unbalanced joint gets processed.
	stepped, err = s.StepAt(0)
	require.NoError(t, err)
	assert.True(t, stepped)
	require.Len(t, s.Steps(), 1)
	assert.Equal(t, 0, s.Steps()[0].Node)

	// Balancing the same joint again is a no-op while it sits within
	// tolerance.
	stepped, err = s.StepAt(0)
	require.NoError(t, err)
	assert.False(t, stepped)
}

func TestAutoStep_PicksLargestResidual(t *testing.T) {
	s := goldenSolver(t)

	// Node 0 starts at +50, node 1 at -30.
	stepped, err := s.AutoStep()
	require.NoError(t, err)
	require.True(t, stepped)
	assert.Equal(t, 0, s.Steps()[0].Node)
}

func TestRunToConvergence_Golden(t *testing.T) {
	s := goldenSolver(t)
	require.NoError(t, s.RunToConvergence())

	steps := s.Steps()
	require.NotEmpty(t, steps)
	assert.LessOrEqual(t, len(steps), cross.DefaultMaxSteps)

	for i := 0; i < s.NumNodes(); i++ {
		assert.Less(t, math.Abs(s.UnbalancedMoment(i)), 0.01, "node %d residual", i)
	}
	assert.False(t, s.HasMoreSteps())

	// The final moments satisfy joint continuity: adjacent member ends
	// agree to within tolerance.
	members := s.Members()
	assert.InDelta(t, -members[1].ML, members[0].MR, 0.01)
	assert.InDelta(t, -members[2].ML, members[1].MR, 0.01)
}

func TestRunToConvergence_Idempotent(t *testing.T) {
	s := goldenSolver(t)
	require.NoError(t, s.RunToConvergence())
	first := s.Steps()

	// A second run on a converged beam performs no steps and changes
	// nothing.
	membersBefore := s.Members()
	require.NoError(t, s.RunToConvergence())
	assert.Equal(t, first, s.Steps())
	assert.Equal(t, membersBefore, s.Members())
}

func TestRunToConvergence_Determinism(t *testing.T) {
	a := goldenSolver(t)
	b := goldenSolver(t)
	require.NoError(t, a.RunToConvergence())
	require.NoError(t, b.RunToConvergence())

	// Same topology, same greedy policy: bit-identical histories,
	// moments, and rotations.
	assert.Equal(t, a.Steps(), b.Steps())
	assert.Equal(t, a.Members(), b.Members())
	assert.Equal(t, a.Nodes(), b.Nodes())
}

func TestStepOverflow(t *testing.T) {
	s := cross.New(cross.Options{MaxSteps: 1})
	require.NoError(t, s.Initialize(goldenSpans(), cross.Pinned, cross.Fixed, 1))

	stepped, err := s.AutoStep()
	require.NoError(t, err)
	require.True(t, stepped)

	// The budget is spent; the next step must fail without touching
	// state.
	membersBefore := s.Members()
	_, err = s.AutoStep()
	require.ErrorIs(t, err, cross.ErrStepOverflow)
	assert.Len(t, s.Steps(), 1)
	assert.Equal(t, membersBefore, s.Members())
}

func TestRunToConvergence_Overflow(t *testing.T) {
	s := cross.New(cross.Options{MaxSteps: 2})
	require.NoError(t, s.Initialize(goldenSpans(), cross.Pinned, cross.Fixed, 2))
	require.ErrorIs(t, s.RunToConvergence(), cross.ErrStepOverflow)
}

func TestFreeBoundary(t *testing.T) {
	// A cantilever on the left: zero stiffness toward the free tip, no
	// carry-over into it, and the static qL²/2 as its support moment.
	spans := []cross.Span{
		{Length: 3, Load: 5, EI: 10000},
		{Length: 6, Load: 10, EI: 10000},
	}
	s := cross.New(cross.DefaultOptions())
	require.NoError(t, s.Initialize(spans, cross.Free, cross.Fixed, 1))

	members := s.Members()
	assert.Zero(t, members[0].K)
	assert.InDelta(t, 0, members[0].ML, 1e-12)
	assert.InDelta(t, 5.0*3*3/2, members[0].MR, 1e-9)

	node := s.Nodes()[0]
	assert.Zero(t, node.DL)
	assert.Equal(t, 1.0, node.DR)
	assert.Zero(t, node.TL)

	// The cantilever moment is statically determinate and must survive
	// the solve unchanged.
	require.NoError(t, s.RunToConvergence())
	assert.InDelta(t, 5.0*3*3/2, s.Members()[0].MR, 1e-9)
}

func TestDegenerateStiffness(t *testing.T) {
	cases := []struct {
		name        string
		spans       []cross.Span
		left, right cross.Boundary
	}{
		{
			"SingleSpanBothFree",
			[]cross.Span{{Length: 4, Load: 5, EI: 10000}},
			cross.Free, cross.Free,
		},
		{
			"JointBetweenTwoCantilevers",
			[]cross.Span{
				{Length: 4, Load: 5, EI: 10000},
				{Length: 4, Load: 5, EI: 10000},
			},
			cross.Free, cross.Free,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := cross.New(cross.DefaultOptions())
			err := s.Initialize(tc.spans, tc.left, tc.right, 1)
			require.ErrorIs(t, err, cross.ErrDegenerateStiffness)
		})
	}
}

func TestSingleSpan(t *testing.T) {
	cases := []struct {
		name        string
		left, right cross.Boundary
		ml, mr      float64 // for q=12, L=4: qL²=192
	}{
		{"FixedFixed", cross.Fixed, cross.Fixed, 16, -16},
		{"PinnedFixed", cross.Pinned, cross.Fixed, 0, -24},
		{"FixedPinned", cross.Fixed, cross.Pinned, 24, 0},
		{"PinnedPinned", cross.Pinned, cross.Pinned, 0, 0},
		{"FreeFixed", cross.Free, cross.Fixed, 0, 96},
		{"FixedFree", cross.Fixed, cross.Free, -96, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := cross.New(cross.DefaultOptions())
			spans := []cross.Span{{Length: 4, Load: 12, EI: 10000}}
			require.NoError(t, s.Initialize(spans, tc.left, tc.right, 1))

			m := s.Members()[0]
			assert.InDelta(t, tc.ml, m.ML, 1e-9)
			assert.InDelta(t, tc.mr, m.MR, 1e-9)

			// No interior joints: nothing to balance, already converged.
			assert.Zero(t, s.NumNodes())
			assert.False(t, s.HasMoreSteps())
			require.NoError(t, s.RunToConvergence())
			assert.Empty(t, s.Steps())
		})
	}
}

func TestFormatMoment(t *testing.T) {
	s := goldenSolver(t)
	assert.Equal(t, "-64.0", s.FormatMoment(-64))

	s2 := cross.New(cross.DefaultOptions())
	require.NoError(t, s2.Initialize(goldenSpans(), cross.Pinned, cross.Fixed, 2))
	assert.Equal(t, "114.00", s2.FormatMoment(114))
	assert.InDelta(t, 1e-3, s2.Threshold(), 1e-15)
}

func TestParseBoundary(t *testing.T) {
	for name, want := range map[string]cross.Boundary{
		"pinned": cross.Pinned,
		"fixed":  cross.Fixed,
		"free":   cross.Free,
	} {
		got, err := cross.ParseBoundary(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}
	_, err := cross.ParseBoundary("roller")
	assert.Error(t, err)

	_, err = cross.BoundaryFromCode(3)
	assert.Error(t, err)
	b, err := cross.BoundaryFromCode(1)
	require.NoError(t, err)
	assert.Equal(t, cross.Fixed, b)
}

func TestDeterminism_ManualSequence(t *testing.T) {
	// An identical sequence of manual step requests yields identical
	// records on two independent solvers, errors included.
	sequence := []int{1, 0, 1, 0, 0, 1}

	run := func() *cross.Solver {
		s := goldenSolver(t)
		for _, n := range sequence {
			_, err := s.StepAt(n)
			require.NoError(t, err)
		}
		return s
	}

	a, b := run(), run()
	assert.Equal(t, a.Steps(), b.Steps())
	assert.Equal(t, a.Members(), b.Members())
	assert.Equal(t, a.Nodes(), b.Nodes())
}
