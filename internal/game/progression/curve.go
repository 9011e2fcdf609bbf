// Package progression maps accumulated experience to character levels.
//
// The curve is piecewise: a cubic segment covers the early game and a quartic
// segment takes over past 540500 xp. Both segments use truncating integer
// arithmetic; the thresholds are load-bearing for every stored xp value, so
// the formulas must not be "fixed" for continuity at the seam.
package progression

// LateCurveXP is the highest xp value still resolved by the cubic segment.
const LateCurveXP = 540500

// cubicThreshold returns the xp required to pass level n on the early curve.
func cubicThreshold(n int) int {
	return 10*n*n*n + 500
}

// quarticThreshold returns the xp required to pass level n on the late curve.
// Integer division truncates toward zero, matching the reference curve.
func quarticThreshold(n int) int {
	return n*n*n*n/5 + 108500
}

// Level returns the level for the given accumulated xp.
//
// Precondition: xp >= 0.
// Postcondition: Returns a level >= 0, monotonically non-decreasing in xp.
func Level(xp int) int {
	if xp <= LateCurveXP {
		n := 0
		for xp >= cubicThreshold(n) {
			n++
		}
		if n > 0 {
			return n - 1
		}
		return 0
	}

	n := 31
	for xp >= quarticThreshold(n) {
		n++
	}
	return n - 1
}

// NextLevel returns the level for the given xp together with the xp still
// needed to reach the next level. The gap uses the cubic threshold below
// level 30 and the quartic threshold at or above it.
//
// Precondition: xp >= 0.
// Postcondition: remaining > 0, except at levels 30 through 37, which are
// reached on the cubic segment while the gap is already quartic; there the
// quartic threshold can sit at or below the current xp and remaining may be
// zero or negative. Callers displaying remaining must tolerate that band.
func NextLevel(xp int) (level, remaining int) {
	level = Level(xp)
	if level >= 30 {
		return level, quarticThreshold(level+1) - xp
	}
	return level, cubicThreshold(level+1) - xp
}
