package cross

// Node holds the derived moment-distribution coefficients of one interior
// joint, between member i and member i+1. There are always exactly
// numMembers-1 nodes. All coefficients are computed by the solver during
// initialization and never set directly.
type Node struct {
	// Distribution coefficients: the share of an unbalanced moment
	// assigned to the left and right member. DL+DR = 1 whenever the two
	// adjacent stiffnesses are not both zero.
	DL float64
	DR float64

	// Carry-over factors toward the far end of the left and right member.
	// 0.5 between continuous ends; 0 toward an outer end that is pinned
	// or free, since such an end cannot receive a carried-over moment.
	TL float64
	TR float64

	// Rot is the accumulated joint rotation, in units of moment over
	// rotational stiffness. Reset to zero whenever moments are
	// re-initialized.
	Rot float64
}
