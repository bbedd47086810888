package spaces

// constraints.go: comparison propagators (eq, neq, and the order family)
// plus the pairwise distinct decomposition.

// compOp identifies a binary comparison.
type compOp int

const (
	opEq compOp = iota
	opNeq
	opLt
	opLte
	opGt
	opGte
)

// opNames maps the external operator spelling to its compOp.
var opNames = map[string]compOp{
	"eq":  opEq,
	"neq": opNeq,
	"lt":  opLt,
	"lte": opLte,
	"gt":  opGt,
	"gte": opGte,
}

// complementOf pairs each comparison with its negation.
func complementOf(op compOp) compOp {
	switch op {
	case opEq:
		return opNeq
	case opNeq:
		return opEq
	case opLt:
		return opGte
	case opLte:
		return opGt
	case opGt:
		return opLte
	default:
		return opLt
	}
}

// newComparison builds the propagator for op(x, y). The greater-than forms
// are normalized to their less-than duals with the operands swapped.
func newComparison(op compOp, x, y VarName) propagator {
	switch op {
	case opEq:
		return newEq(x, y)
	case opNeq:
		return newNeq(x, y)
	case opLt:
		return newOrder(x, y, true)
	case opLte:
		return newOrder(x, y, false)
	case opGt:
		return newOrder(y, x, true)
	default: // opGte
		return newOrder(y, x, false)
	}
}

// Eq posts x = y.
func (sp *Space) Eq(x, y VarName) *Space {
	sp.addPropagator(newEq(x, y))
	return sp
}

// Neq posts x ≠ y.
func (sp *Space) Neq(x, y VarName) *Space {
	sp.addPropagator(newNeq(x, y))
	return sp
}

// Lt posts x < y.
func (sp *Space) Lt(x, y VarName) *Space {
	sp.addPropagator(newOrder(x, y, true))
	return sp
}

// Lte posts x ≤ y.
func (sp *Space) Lte(x, y VarName) *Space {
	sp.addPropagator(newOrder(x, y, false))
	return sp
}

// Gt posts x > y, the dual of y < x.
func (sp *Space) Gt(x, y VarName) *Space {
	sp.addPropagator(newOrder(y, x, true))
	return sp
}

// Gte posts x ≥ y.
func (sp *Space) Gte(x, y VarName) *Space {
	sp.addPropagator(newOrder(y, x, false))
	return sp
}

// Distinct posts pairwise ≠ over all pairs of the given variables.
func (sp *Space) Distinct(vars []VarName) *Space {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			sp.Neq(vars[i], vars[j])
		}
	}
	return sp
}

// eqProp narrows both variables to the intersection of their domains.
type eqProp struct {
	base
	x, y VarName
}

func newEq(x, y VarName) *eqProp {
	names := []VarName{x, y}
	return &eqProp{base: newBase(names, names), x: x, y: y}
}

func (p *eqProp) Step(sp *Space) (int, error) {
	return step(sp, &p.base, p.narrow)
}

func (p *eqProp) narrow(sp *Space) (int, error) {
	xv, yv := sp.variable(p.x), sp.variable(p.y)
	d := xv.Domain().Intersect(yv.Domain())
	if d.IsEmpty() {
		return 0, ErrFail
	}
	return xv.SetDomain(d) + yv.SetDomain(d), nil
}

func (p *eqProp) Rebuild() propagator {
	np := *p
	np.base = p.rebuildBase()
	return &np
}

// orderProp enforces x < y (strict) or x ≤ y. Bounds reasoning only: it
// trims x from above and y from below until the involved bounds quiesce,
// and marks itself solved once the bounds prove the relation permanently.
type orderProp struct {
	base
	x, y   VarName
	strict bool
}

func newOrder(x, y VarName, strict bool) *orderProp {
	names := []VarName{x, y}
	return &orderProp{base: newBase(names, names), x: x, y: y, strict: strict}
}

func (p *orderProp) Step(sp *Space) (int, error) {
	return step(sp, &p.base, p.narrow)
}

func (p *orderProp) narrow(sp *Space) (int, error) {
	xv, yv := sp.variable(p.x), sp.variable(p.y)
	total := 0
	for {
		xLo, xHi, err := xv.Domain().Bounds()
		if err != nil {
			return total, err
		}
		yLo, yHi, err := yv.Domain().Bounds()
		if err != nil {
			return total, err
		}

		if p.strict {
			if yLo > xHi {
				p.solved = true
				return total, nil
			}
			xHi, yLo = yHi-1, xLo+1
		} else {
			if yLo >= xHi {
				p.solved = true
				return total, nil
			}
			xHi, yLo = yHi, xLo
		}

		changed := 0
		if xHi < xv.Max() {
			n, err := xv.Constrain(RangeDomain(xLo, xHi))
			if err != nil {
				return total, err
			}
			changed += n
		}
		if yLo > yv.Min() {
			n, err := yv.Constrain(RangeDomain(yLo, yHi))
			if err != nil {
				return total, err
			}
			changed += n
		}
		if changed == 0 {
			return total, nil
		}
		total += changed
	}
}

func (p *orderProp) Rebuild() propagator {
	np := *p
	np.base = p.rebuildBase()
	return &np
}

// neqProp enforces x ≠ y. It becomes solved as soon as the domains are
// provably disjoint, and prunes only when one side is determined: the
// singleton is removed from the other side via complement intersection.
type neqProp struct {
	base
	x, y VarName
}

func newNeq(x, y VarName) *neqProp {
	names := []VarName{x, y}
	return &neqProp{base: newBase(names, names), x: x, y: y}
}

func (p *neqProp) Step(sp *Space) (int, error) {
	return step(sp, &p.base, p.narrow)
}

func (p *neqProp) narrow(sp *Space) (int, error) {
	xv, yv := sp.variable(p.x), sp.variable(p.y)
	xd, yd := xv.Domain(), yv.Domain()
	if xd.IsEmpty() || yd.IsEmpty() {
		return 0, ErrFail
	}

	if xd.Max() < yd.Min() || yd.Max() < xd.Min() || xd.Intersect(yd).IsEmpty() {
		p.solved = true
		return 0, nil
	}

	total := 0
	if xd.IsSingleton() {
		n, err := yv.Constrain(SingletonDomain(xd.SingletonValue()).Complement())
		if err != nil {
			return total, err
		}
		total += n
	}
	if yd.IsSingleton() {
		n, err := xv.Constrain(SingletonDomain(yd.SingletonValue()).Complement())
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (p *neqProp) Rebuild() propagator {
	np := *p
	np.base = p.rebuildBase()
	return &np
}
