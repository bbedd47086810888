package spaces

// reified.go: reified comparisons. A reified constraint ties the truth of
// op(x, y) to a boolean variable b ∈ {0, 1}. When b is determined, the
// matching propagator (positive for 1, negative for 0) runs directly.
// While b is open, both directions are stepped speculatively against a
// snapshot: if one direction is infeasible, b collapses to the other.

// Reified posts a reified comparison over x and y for op in eq, neq, lt,
// lte, gt, gte, returning the boolean variable. When b is omitted a
// temporary with domain {0, 1} is allocated; a supplied b is constrained
// to {0, 1}.
func (sp *Space) Reified(op string, x, y VarName, b ...VarName) (VarName, error) {
	kind, ok := opNames[op]
	if !ok {
		return nil, ErrUnknownOperator
	}
	var bn VarName
	if len(b) > 0 && b[0] != nil {
		bn = b[0]
		if _, err := sp.ensure(bn).Constrain(RangeDomain(0, 1)); err != nil {
			return nil, err
		}
	} else {
		bn = sp.Temp(RangeDomain(0, 1))
	}
	sp.ensure(x)
	sp.ensure(y)
	sp.addPropagator(newReified(kind, x, y, bn))
	return bn, nil
}

// reifiedProp holds per-space positive and negative sub-propagators,
// built lazily on first use so each clone gets private instances with
// private change-detection state.
type reifiedProp struct {
	base
	op       compOp
	x, y, b  VarName
	pos, neg propagator
}

func newReified(op compOp, x, y, b VarName) *reifiedProp {
	names := []VarName{x, y, b}
	return &reifiedProp{base: newBase(names, names), op: op, x: x, y: y, b: b}
}

func (p *reifiedProp) posProp() propagator {
	if p.pos == nil {
		p.pos = newComparison(p.op, p.x, p.y)
	}
	return p.pos
}

func (p *reifiedProp) negProp() propagator {
	if p.neg == nil {
		p.neg = newComparison(complementOf(p.op), p.x, p.y)
	}
	return p.neg
}

func (p *reifiedProp) Step(sp *Space) (int, error) {
	return step(sp, &p.base, p.narrow)
}

func (p *reifiedProp) narrow(sp *Space) (int, error) {
	total := 0
	for {
		before := p.revSum(sp)
		bv := sp.variable(p.b)

		if bv.IsDetermined() {
			var dir propagator
			if bv.Value() == 1 {
				dir = p.posProp()
			} else {
				dir = p.negProp()
			}
			n, err := dir.narrow(sp)
			total += n
			if err != nil {
				return total, err
			}
		} else {
			refuted, err := p.speculate(sp, p.posProp())
			if err != nil {
				return total, err
			}
			if refuted {
				n, err := bv.Constrain(SingletonDomain(0))
				total += n
				if err != nil {
					return total, err
				}
			}

			if !bv.IsDetermined() {
				refuted, err := p.speculate(sp, p.negProp())
				if err != nil {
					return total, err
				}
				if refuted {
					n, err := bv.Constrain(SingletonDomain(1))
					total += n
					if err != nil {
						return total, err
					}
				}
			}
		}

		if p.revSum(sp) == before {
			return total, nil
		}
	}
}

// speculate runs a direction against a snapshot of the referenced
// variables. The snapshot is restored on every exit path; refuted reports
// whether the direction failed, err carries any non-Fail error.
func (p *reifiedProp) speculate(sp *Space, dir propagator) (refuted bool, err error) {
	snap := takeSnapshot(sp, p.all)
	defer snap.restore()
	if _, nerr := dir.narrow(sp); nerr != nil {
		if IsFail(nerr) {
			return true, nil
		}
		return false, nerr
	}
	return false, nil
}

func (p *reifiedProp) Rebuild() propagator {
	np := *p
	np.base = p.rebuildBase()
	np.pos, np.neg = nil, nil
	return &np
}

// varSnapshot saves (domain, revision) pairs so a speculative narrowing
// can be undone without trace.
type varSnapshot struct {
	sp    *Space
	names []VarName
	doms  []Domain
	revs  []int
}

func takeSnapshot(sp *Space, names []VarName) *varSnapshot {
	s := &varSnapshot{
		sp:    sp,
		names: names,
		doms:  make([]Domain, len(names)),
		revs:  make([]int, len(names)),
	}
	for i, n := range names {
		v := sp.variable(n)
		s.doms[i] = v.dom
		s.revs[i] = v.rev
	}
	return s
}

func (s *varSnapshot) restore() {
	for i, n := range s.names {
		v := s.sp.variable(n)
		v.dom = s.doms[i]
		v.rev = s.revs[i]
	}
}
