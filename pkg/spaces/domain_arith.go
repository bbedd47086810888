// Package spaces: domain_arith.go implements interval arithmetic on
// domains. All operations are bounds-based: the result of Times and DivBy
// may contain values no pair of operands produces, which is sufficient for
// the bounds-consistent propagators built on top.
package spaces

// clampHi limits a produced bound to the representable band. Lower bounds
// are nonnegative by construction everywhere they are not clamped
// explicitly.
func clampHi(v int) int {
	if v > Sup {
		return Sup
	}
	return v
}

// smallestIntervalWidth returns the width of the narrowest interval, or 0
// for the empty domain.
func smallestIntervalWidth(d Domain) int {
	if len(d) == 0 {
		return 0
	}
	min := d[0].width()
	for _, iv := range d[1:] {
		if w := iv.width(); w < min {
			min = w
		}
	}
	return min
}

// closeGaps merges adjacent intervals separated by fewer than gap missing
// values. The input must be canonical; the output is canonical.
func closeGaps(d Domain, gap int) Domain {
	if gap <= 0 || len(d) < 2 {
		return d
	}
	out := make(Domain, 0, len(d))
	out = append(out, d[0])
	for _, iv := range d[1:] {
		last := &out[len(out)-1]
		if iv.Lo-last.Hi-1 < gap {
			last.Hi = iv.Hi
			continue
		}
		out = append(out, iv)
	}
	return out
}

// closeGaps2 pre-simplifies a pair of operands before Plus or Minus:
// gaps narrower than the other operand's smallest interval width would be
// filled by the expansion anyway, so merging them first caps the
// fragmentation of the result without changing it. Repeats until neither
// operand shrinks.
func closeGaps2(a, b Domain) (Domain, Domain) {
	for {
		a2 := closeGaps(a, smallestIntervalWidth(b))
		b2 := closeGaps(b, smallestIntervalWidth(a2))
		if len(a2) == len(a) && len(b2) == len(b) {
			return a2, b2
		}
		a, b = a2, b2
	}
}

// Plus returns the domain of pairwise sums, clamped to [Inf, Sup].
func (d Domain) Plus(other Domain) Domain {
	a, b := closeGaps2(d, other)
	out := make(Domain, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, Interval{clampHi(x.Lo + y.Lo), clampHi(x.Hi + y.Hi)})
		}
	}
	return Canonicalize(out)
}

// Minus returns the domain of pairwise differences, dropping pairs that
// cannot produce a nonnegative result and clamping the rest at zero.
func (d Domain) Minus(other Domain) Domain {
	a, b := closeGaps2(d, other)
	out := make(Domain, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			if x.Hi < y.Lo {
				continue
			}
			lo := x.Lo - y.Hi
			if lo < 0 {
				lo = 0
			}
			out = append(out, Interval{lo, x.Hi - y.Lo})
		}
	}
	return Canonicalize(out)
}

// Times returns the bounds product domain. Not domain-consistent: each
// result interval covers every product of bounds, which may include values
// no pair of members produces.
func (d Domain) Times(other Domain) Domain {
	out := make(Domain, 0, len(d)*len(other))
	for _, x := range d {
		for _, y := range other {
			out = append(out, Interval{clampHi(x.Lo * y.Lo), clampHi(x.Hi * y.Hi)})
		}
	}
	return Canonicalize(out)
}

// DivBy returns the bounds quotient domain using floor division. Divisor
// intervals that are wholly zero contribute nothing; an interval whose low
// end is zero contributes with Sup as its upper bound.
func (d Domain) DivBy(other Domain) Domain {
	out := make(Domain, 0, len(d)*len(other))
	for _, x := range d {
		for _, y := range other {
			if y.Hi <= 0 {
				continue
			}
			lo := x.Lo / y.Hi
			hi := Sup
			if y.Lo > 0 {
				hi = x.Hi / y.Lo
			}
			out = append(out, Interval{lo, clampHi(hi)})
		}
	}
	return Canonicalize(out)
}

// scaleUp returns the domain {[k*lo, k*hi]} for each interval, clamped.
// k must be positive.
func scaleUp(d Domain, k int) Domain {
	out := make(Domain, 0, len(d))
	for _, iv := range d {
		out = append(out, Interval{clampHi(iv.Lo * k), clampHi(iv.Hi * k)})
	}
	return Canonicalize(out)
}

// scaleDown returns the domain {[lo/k, hi/k]} (floor division) for each
// interval. k must be positive.
func scaleDown(d Domain, k int) Domain {
	out := make(Domain, 0, len(d))
	for _, iv := range d {
		out = append(out, Interval{iv.Lo / k, iv.Hi / k})
	}
	return Canonicalize(out)
}
