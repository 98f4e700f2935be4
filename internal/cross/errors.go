package cross

import "errors"

// Sentinel errors for solver operations.
var (
	// ErrInvalidNodeIndex indicates a step request for a node that does
	// not exist.
	ErrInvalidNodeIndex = errors.New("cross: node index out of range")
	// ErrToleranceOutOfRange indicates a requested decimal-place count
	// outside the supported 0..2 range; the solver falls back to
	// DefaultDecimals and remains usable.
	ErrToleranceOutOfRange = errors.New("cross: tolerance decimal places out of range")
	// ErrStepOverflow indicates the balancing step budget was exhausted
	// before convergence.
	ErrStepOverflow = errors.New("cross: step budget exhausted without convergence")
	// ErrDegenerateStiffness indicates both members at a joint (or a
	// single-member beam with both ends free) have zero rotational
	// stiffness, so distribution coefficients are undefined.
	ErrDegenerateStiffness = errors.New("cross: zero rotational stiffness on both sides of a joint")
	// ErrInvalidTopologyEdit indicates an edit that would leave the beam
	// below its minimum topology; no state change is applied.
	ErrInvalidTopologyEdit = errors.New("cross: topology edit rejected")
)
