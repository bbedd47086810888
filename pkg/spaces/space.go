package spaces

import "strconv"

// space.go: the computation space. A space owns its variables and
// propagators; the brancher queue is shared by reference across a family
// of spaces, each member holding its own cursor.

// Space is a self-contained constraint-solving state: variables,
// propagators, and a branching position. Spaces are cheap to clone; the
// search drivers explore the tree of clones that commit to alternative
// branches.
type Space struct {
	vars  map[VarName]*Variable
	order []VarName
	props []propagator

	brancher *Brancher
	parent   *Space

	// nextTemp is shared across the whole family so temporaries created
	// in any member never collide.
	nextTemp *int

	// Accounting, rolled up to the parent by Done.
	succeededChildren int
	failedChildren    int
	stableChildren    int
	failed            bool

	// Search bookkeeping, private to the drivers.
	commit         *Choice
	nextChoice     int
	committed      bool
	constrainedFor int
}

// New creates an empty root space.
func New() *Space {
	counter := 0
	return &Space{
		vars:     make(map[VarName]*Variable),
		brancher: &Brancher{queue: &branchQueue{}},
		nextTemp: &counter,
	}
}

// Clone creates a child space: independent copies of every variable (same
// domain, revision reset), rebuilt instances of every not-yet-solved
// propagator, and a brancher sharing the parent's queue with a cursor
// starting at the parent's position.
func (sp *Space) Clone() *Space {
	child := &Space{
		vars:           make(map[VarName]*Variable, len(sp.vars)),
		order:          append([]VarName(nil), sp.order...),
		brancher:       &Brancher{queue: sp.brancher.queue, next: sp.brancher.next},
		parent:         sp,
		nextTemp:       sp.nextTemp,
		constrainedFor: sp.constrainedFor,
	}
	for _, name := range sp.order {
		child.vars[name] = newVariable(sp.vars[name].dom)
	}
	child.props = make([]propagator, 0, len(sp.props))
	for _, p := range sp.props {
		if p.Solved() {
			continue
		}
		child.props = append(child.props, p.Rebuild())
	}
	return child
}

// variable returns the named variable. The name must have been declared;
// propagators only ever reference declared names.
func (sp *Space) variable(n VarName) *Variable {
	v, ok := sp.vars[n]
	if !ok {
		panic("spaces: undeclared variable " + n.String())
	}
	return v
}

// ensure returns the named variable, declaring it with the full range if
// it does not exist yet. Constraint posting routes through ensure so a
// script may reference names before declaring them.
func (sp *Space) ensure(n VarName) *Variable {
	if v, ok := sp.vars[n]; ok {
		return v
	}
	v := newVariable(FullRange())
	sp.vars[n] = v
	sp.order = append(sp.order, n)
	return v
}

// Decl creates the named variable if absent, with the given domain or the
// full range. If the variable already exists and a domain is supplied, it
// is constrained to that domain; an empty intersection fails with ErrFail.
func (sp *Space) Decl(name string, dom ...Domain) error {
	n := UserName(name)
	if v, ok := sp.vars[n]; ok {
		if len(dom) > 0 {
			if _, err := v.Constrain(Canonicalize(dom[0])); err != nil {
				return err
			}
		}
		return nil
	}
	d := FullRange()
	if len(dom) > 0 {
		d = Canonicalize(dom[0])
	}
	sp.vars[n] = newVariable(d)
	sp.order = append(sp.order, n)
	return nil
}

// DeclAll declares a batch of variables with the full range.
func (sp *Space) DeclAll(names ...string) *Space {
	for _, name := range names {
		sp.ensure(UserName(name))
	}
	return sp
}

// Temp allocates a fresh temporary variable with the given domain or the
// full range. Temporaries are omitted from solutions.
func (sp *Space) Temp(dom ...Domain) VarName {
	n := TempName(*sp.nextTemp)
	*sp.nextTemp++
	d := FullRange()
	if len(dom) > 0 {
		d = Canonicalize(dom[0])
	}
	sp.vars[n] = newVariable(d)
	sp.order = append(sp.order, n)
	return n
}

// Temps allocates n temporaries.
func (sp *Space) Temps(n int, dom ...Domain) []VarName {
	out := make([]VarName, n)
	for i := range out {
		out[i] = sp.Temp(dom...)
	}
	return out
}

// Num declares name as the constant n. The value must lie in [Inf, Sup].
func (sp *Space) Num(name string, n int) error {
	if n < Inf || n > Sup {
		return ErrValueOutOfRange
	}
	return sp.Decl(name, SingletonDomain(n))
}

// Konst allocates a temporary holding the constant n.
func (sp *Space) Konst(n int) (VarName, error) {
	if n < Inf || n > Sup {
		return nil, ErrValueOutOfRange
	}
	return sp.Temp(SingletonDomain(n)), nil
}

// Inject runs a problem script against the space.
func (sp *Space) Inject(script func(*Space) error) error {
	return script(sp)
}

// addPropagator appends a propagator after ensuring its variables exist.
func (sp *Space) addPropagator(p propagator) {
	for _, n := range p.AllVars() {
		sp.ensure(n)
	}
	sp.props = append(sp.props, p)
}

// Propagate runs the fixpoint loop: full passes over the propagators in
// insertion order until a pass produces zero revision increments. Any
// propagator raising ErrFail aborts the loop and marks the space failed.
// Termination is guaranteed because domains only shrink and revisions
// only advance when a domain shrinks.
func (sp *Space) Propagate() error {
	for {
		total := 0
		for _, p := range sp.props {
			if p.Solved() {
				continue
			}
			n, err := p.Step(sp)
			if err != nil {
				sp.failed = true
				return err
			}
			total += n
		}
		if total == 0 {
			return nil
		}
	}
}

// IsSolved reports whether every variable, temporaries included, is
// determined.
func (sp *Space) IsSolved() bool {
	for _, n := range sp.order {
		if !sp.vars[n].IsDetermined() {
			return false
		}
	}
	return true
}

// Failed reports whether propagation emptied a domain in this space.
func (sp *Space) Failed() bool { return sp.failed }

// Value is one entry of a solution: an integer when the variable is
// determined, the remaining domain when it is not, or a failure marker.
type Value struct {
	// Int is the assigned value when Determined.
	Int int

	// Dom is the remaining domain when the variable is undetermined.
	Dom Domain

	// Determined reports whether Int is meaningful.
	Determined bool

	// Failed marks entries of a failed space.
	Failed bool
}

// String renders the entry for logs and CLI output.
func (v Value) String() string {
	switch {
	case v.Failed:
		return "failed"
	case v.Determined:
		return strconv.Itoa(v.Int)
	default:
		return v.Dom.String()
	}
}

// Solution maps user variable names to their values. Temporaries never
// appear.
type Solution map[string]Value

// Solution extracts the current assignment over all user-named variables.
func (sp *Space) Solution() Solution {
	out := make(Solution)
	for _, n := range sp.order {
		name, ok := n.(UserName)
		if !ok {
			continue
		}
		v := sp.vars[n]
		switch {
		case sp.failed:
			out[string(name)] = Value{Failed: true}
		case v.IsDetermined():
			out[string(name)] = Value{Int: v.Value(), Determined: true}
		default:
			out[string(name)] = Value{Dom: v.dom}
		}
	}
	return out
}

// Int returns the determined value for name, with ok reporting whether the
// entry exists and is determined.
func (s Solution) Int(name string) (int, bool) {
	v, ok := s[name]
	if !ok || !v.Determined {
		return 0, false
	}
	return v.Int, true
}

// Done rolls the accounting counters up to the parent and discards the
// space from the search. A space none of whose children succeeded, while
// at least one failed, is itself marked failed.
func (sp *Space) Done() {
	if sp.succeededChildren == 0 && sp.failedChildren > 0 {
		sp.failed = true
	}
	p := sp.parent
	if p == nil {
		return
	}
	p.succeededChildren += sp.succeededChildren
	p.failedChildren += sp.failedChildren
	p.stableChildren += sp.stableChildren
	switch {
	case sp.failed:
		p.failedChildren++
	case sp.IsSolved():
		p.succeededChildren++
	default:
		p.stableChildren++
	}
}
