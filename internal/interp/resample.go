package interp

// FindClosest returns the sample whose timestamp is nearest t. Ties go to
// the earlier sample. It reports false for an empty history.
func FindClosest[M Sample[M]](history []M, t int64) (M, bool) {
	var best M
	var bestDist uint64
	found := false
	for _, m := range history {
		d := distance(m.Time(), t)
		if !found || d < bestDist || (d == bestDist && m.Time() < best.Time()) {
			best, bestDist, found = m, d, true
		}
	}
	return best, found
}

// Resample writes the sample at t, reconstructed from history, into dst.
//
// The history may be unordered and is searched in full on every call. A
// query before the earliest or after the latest sample returns that
// boundary sample re-stamped with t; otherwise the two samples bracketing t
// are interpolated exactly as Linear does. It returns false only for an
// empty history, in which case dst is untouched.
func Resample[M Sample[M]](history []M, t int64, dst *M) bool {
	if len(history) == 0 {
		return false
	}

	var prev, next M
	havePrev, haveNext := false, false
	for _, m := range history {
		mt := m.Time()
		if mt <= t && (!havePrev || mt > prev.Time()) {
			prev, havePrev = m, true
		}
		if mt >= t && (!haveNext || mt < next.Time()) {
			next, haveNext = m, true
		}
	}

	switch {
	case !havePrev:
		*dst = next.Retimed(t)
	case !haveNext:
		*dst = prev.Retimed(t)
	case prev.Time() == next.Time():
		*dst = prev.Retimed(t)
	default:
		*dst = lerpAt(prev, next, t)
	}
	return true
}

func distance(a, b int64) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}
