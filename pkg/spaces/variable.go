package spaces

// Variable pairs a current domain with a revision counter. The revision
// increments exactly when the domain is replaced by a non-equal domain,
// which gives propagators a cheap change-detection signal: the sum of the
// revisions of the variables they watch.
type Variable struct {
	dom Domain
	rev int
}

func newVariable(dom Domain) *Variable {
	return &Variable{dom: Canonicalize(dom)}
}

// Domain returns the variable's current domain.
func (v *Variable) Domain() Domain { return v.dom }

// Revision returns the number of effective domain replacements so far.
func (v *Variable) Revision() int { return v.rev }

// IsDetermined reports whether the domain is a singleton.
func (v *Variable) IsDetermined() bool { return v.dom.IsSingleton() }

// IsUndetermined reports whether the variable still has more than one
// candidate value. A failed (empty) variable is not undetermined.
func (v *Variable) IsUndetermined() bool {
	return !v.dom.IsEmpty() && !v.dom.IsSingleton()
}

// IsFailed reports whether the domain is empty.
func (v *Variable) IsFailed() bool { return v.dom.IsEmpty() }

// Value returns the single value of a determined variable.
// Panics if the variable is not determined.
func (v *Variable) Value() int { return v.dom.SingletonValue() }

// SetDomain replaces the domain, bumping the revision only if the new
// domain differs from the current one. Returns the revision delta (0 or 1).
func (v *Variable) SetDomain(d Domain) int {
	if v.dom.Equal(d) {
		return 0
	}
	v.dom = d
	v.rev++
	return 1
}

// Constrain intersects the current domain with d. It returns the revision
// delta, or ErrFail if the intersection is empty.
func (v *Variable) Constrain(d Domain) (int, error) {
	next := v.dom.Intersect(d)
	if next.IsEmpty() {
		return 0, ErrFail
	}
	return v.SetDomain(next), nil
}

// Size, Min, Max, Mid, and RoughMid delegate to the domain.

func (v *Variable) Size() int     { return v.dom.Size() }
func (v *Variable) Min() int      { return v.dom.Min() }
func (v *Variable) Max() int      { return v.dom.Max() }
func (v *Variable) Mid() int      { return v.dom.Mid() }
func (v *Variable) RoughMid() int { return v.dom.RoughMid() }
