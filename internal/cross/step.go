package cross

// StepRecord is one entry of the balancing history: a single relaxation
// operation at one node. The ordered sequence of records is sufficient to
// replay or audit a whole solve.
type StepRecord struct {
	Node int // index of the balanced node

	// Balancing moments applied at the node's two member ends.
	BML float64
	BMR float64

	// Carry-over moments transmitted to the far ends.
	TML float64
	TMR float64
}
