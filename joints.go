package ur_arm

// JointAngles is one joint-space configuration for the six UR10 axes, in
// radians: base, shoulder, elbow, wrist 1, wrist 2, wrist 3.
type JointAngles [6]float64

// DefaultHomePosture is the center of oscillation every pattern moves
// around: base forward, shoulder raised, elbow bent 90°, wrist 2 upright.
var DefaultHomePosture = JointAngles{0.0, -1.57, 1.57, 0.0, 1.57, 0.0}

// Joint limits for the UR10 in radians. Every joint except the elbow gets a
// symmetric ±180° interval. The elbow is restricted to a bent-forward range
// so patterns cannot straighten the arm into itself.
var ur10JointLimits = [6][2]float64{
	{-3.14, 3.14}, // base rotation
	{-3.14, 3.14}, // shoulder lift
	{0.5, 2.5},    // elbow
	{-3.14, 3.14}, // wrist 1
	{-3.14, 3.14}, // wrist 2
	{-3.14, 3.14}, // wrist 3
}

// add returns the posture offset by the given per-joint deltas.
func (j JointAngles) add(deltas JointAngles) JointAngles {
	var out JointAngles
	for i := range j {
		out[i] = j[i] + deltas[i]
	}
	return out
}

// clampToLimits saturates every joint value to its admissible interval.
// Values beyond a bound are pinned to the bound, never wrapped or rejected,
// so an oversized pattern flattens against the limit instead of failing.
func clampToLimits(j JointAngles) JointAngles {
	for i := range j {
		lo, hi := ur10JointLimits[i][0], ur10JointLimits[i][1]
		if j[i] < lo {
			j[i] = lo
		} else if j[i] > hi {
			j[i] = hi
		}
	}
	return j
}

// withinLimits reports whether every joint value already satisfies its
// admissible interval.
func withinLimits(j JointAngles) bool {
	for i := range j {
		if j[i] < ur10JointLimits[i][0] || j[i] > ur10JointLimits[i][1] {
			return false
		}
	}
	return true
}
