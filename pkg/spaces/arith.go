package spaces

// arith.go: arithmetic constraints. Plus and Times share a generic ring of
// three directed propagators, one per direction of s = x ⊕ y:
//
//	s ← s ∩ (x ⊕ y)
//	x ← x ∩ (s ⊖ y)
//	y ← y ∩ (s ⊖ x)
//
// where (⊕, ⊖) is (plus, minus) or (times, divby). Composite constraints
// (sum, product, wsum, timesPlus) decompose into rings over temporaries.

// domainBinOp combines two domains into the candidate domain for a ring
// target.
type domainBinOp func(Domain, Domain) Domain

// ringProp narrows target to target ∩ op(a, b). Only a and b trigger
// recomputation; the sibling ring members cover the other directions.
type ringProp struct {
	base
	target, a, b VarName
	op           domainBinOp
}

func newRing(target, a, b VarName, op domainBinOp) *ringProp {
	return &ringProp{
		base:   newBase([]VarName{target, a, b}, []VarName{a, b}),
		target: target,
		a:      a,
		b:      b,
		op:     op,
	}
}

func (p *ringProp) Step(sp *Space) (int, error) {
	return step(sp, &p.base, p.narrow)
}

func (p *ringProp) narrow(sp *Space) (int, error) {
	av, bv := sp.variable(p.a), sp.variable(p.b)
	return sp.variable(p.target).Constrain(p.op(av.Domain(), bv.Domain()))
}

func (p *ringProp) Rebuild() propagator {
	np := *p
	np.base = p.rebuildBase()
	return &np
}

// resultName returns the caller-supplied result variable or a fresh
// temporary, the shared convention of all composite constructors.
func (sp *Space) resultName(out []VarName) VarName {
	if len(out) > 0 && out[0] != nil {
		sp.ensure(out[0])
		return out[0]
	}
	return sp.Temp()
}

// Plus posts s = x + y and returns s, allocating a temporary when the
// result name is omitted.
func (sp *Space) Plus(x, y VarName, out ...VarName) VarName {
	s := sp.resultName(out)
	sp.ensure(x)
	sp.ensure(y)
	sp.addPropagator(newRing(s, x, y, Domain.Plus))
	sp.addPropagator(newRing(x, s, y, Domain.Minus))
	sp.addPropagator(newRing(y, s, x, Domain.Minus))
	return s
}

// Times posts p = x * y (bounds consistency) and returns p.
func (sp *Space) Times(x, y VarName, out ...VarName) VarName {
	p := sp.resultName(out)
	sp.ensure(x)
	sp.ensure(y)
	sp.addPropagator(newRing(p, x, y, Domain.Times))
	sp.addPropagator(newRing(x, p, y, Domain.DivBy))
	sp.addPropagator(newRing(y, p, x, Domain.DivBy))
	return p
}

// scaleProp is one direction of p = k * v: either the image direction
// (p from v) or the preimage direction (v from p, floor division).
type scaleProp struct {
	base
	target, src VarName
	k           int
	up          bool
}

func newScale(target, src VarName, k int, up bool) *scaleProp {
	return &scaleProp{
		base:   newBase([]VarName{target, src}, []VarName{src}),
		target: target,
		src:    src,
		k:      k,
		up:     up,
	}
}

func (p *scaleProp) Step(sp *Space) (int, error) {
	return step(sp, &p.base, p.narrow)
}

func (p *scaleProp) narrow(sp *Space) (int, error) {
	src := sp.variable(p.src).Domain()
	var d Domain
	if p.up {
		d = scaleUp(src, p.k)
	} else {
		d = scaleDown(src, p.k)
	}
	return sp.variable(p.target).Constrain(d)
}

func (p *scaleProp) Rebuild() propagator {
	np := *p
	np.base = p.rebuildBase()
	return &np
}

// Scale posts p = k * v for a nonnegative constant k and returns p.
// k == 0 degenerates to p = 0 and k == 1 to p = v; a negative k is a
// usage error.
func (sp *Space) Scale(k int, v VarName, out ...VarName) (VarName, error) {
	if k < 0 {
		return nil, ErrNegativeScale
	}
	p := sp.resultName(out)
	sp.ensure(v)
	switch k {
	case 0:
		zero := sp.Temp(SingletonDomain(0))
		sp.Eq(zero, p)
	case 1:
		sp.Eq(v, p)
	default:
		sp.addPropagator(newScale(p, v, k, true))
		sp.addPropagator(newScale(v, p, k, false))
	}
	return p, nil
}

// Sum posts s = Σ vars via balanced binary decomposition over temporaries
// and returns s. An empty variable list is a usage error.
func (sp *Space) Sum(vars []VarName, out ...VarName) (VarName, error) {
	if len(vars) == 0 {
		return nil, ErrEmptyInput
	}
	switch len(vars) {
	case 1:
		s := sp.resultName(out)
		sp.Eq(vars[0], s)
		return s, nil
	case 2:
		return sp.Plus(vars[0], vars[1], out...), nil
	}
	mid := len(vars) / 2
	left, err := sp.Sum(vars[:mid])
	if err != nil {
		return nil, err
	}
	right, err := sp.Sum(vars[mid:])
	if err != nil {
		return nil, err
	}
	return sp.Plus(left, right, out...), nil
}

// Product posts p = Π vars via balanced binary decomposition and returns p.
func (sp *Space) Product(vars []VarName, out ...VarName) (VarName, error) {
	if len(vars) == 0 {
		return nil, ErrEmptyInput
	}
	switch len(vars) {
	case 1:
		p := sp.resultName(out)
		sp.Eq(vars[0], p)
		return p, nil
	case 2:
		return sp.Times(vars[0], vars[1], out...), nil
	}
	mid := len(vars) / 2
	left, err := sp.Product(vars[:mid])
	if err != nil {
		return nil, err
	}
	right, err := sp.Product(vars[mid:])
	if err != nil {
		return nil, err
	}
	return sp.Times(left, right, out...), nil
}

// WSum posts s = Σ ks[i] * vars[i] and returns s. The coefficient and
// variable lists must have equal length.
func (sp *Space) WSum(ks []int, vars []VarName, out ...VarName) (VarName, error) {
	if len(vars) == 0 {
		return nil, ErrEmptyInput
	}
	if len(ks) != len(vars) {
		return nil, ErrInvalidArgument
	}
	terms := make([]VarName, len(vars))
	for i, v := range vars {
		t, err := sp.Scale(ks[i], v)
		if err != nil {
			return nil, err
		}
		terms[i] = t
	}
	return sp.Sum(terms, out...)
}

// TimesPlus posts r = k1*v1 + k2*v2 and returns r.
func (sp *Space) TimesPlus(k1 int, v1 VarName, k2 int, v2 VarName, out ...VarName) (VarName, error) {
	t1, err := sp.Scale(k1, v1)
	if err != nil {
		return nil, err
	}
	t2, err := sp.Scale(k2, v2)
	if err != nil {
		return nil, err
	}
	return sp.Plus(t1, t2, out...), nil
}
