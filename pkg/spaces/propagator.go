package spaces

// propagator is a constraint-specific narrowing operator over a space's
// variables. Step performs one gated narrowing round and returns the
// number of revision increments it produced; a zero-sum full pass over all
// propagators is the fixpoint condition.
//
// Propagators are per-space: Rebuild produces a fresh instance bound to a
// clone, with private change-detection state. A propagator whose Solved
// flag is set is never rebuilt and never re-run; the flag is monotonic.
type propagator interface {
	// AllVars lists every variable the propagator references, used to
	// decide when it is permanently solved.
	AllVars() []VarName

	// DepVars lists the subset of variables whose change triggers
	// recomputation.
	DepVars() []VarName

	// Solved reports whether the propagator can never narrow again.
	Solved() bool

	// Step runs the change-detection gate and, if anything changed since
	// the last run, the narrowing body. Returns the revision delta.
	Step(sp *Space) (int, error)

	// narrow is the gate-free narrowing body. The reified propagator
	// drives its sub-propagators through narrow directly, so a
	// speculative run is never skipped by a stale gate.
	narrow(sp *Space) (int, error)

	// Rebuild returns a fresh instance for a cloned space.
	Rebuild() propagator
}

// base carries the bookkeeping shared by all propagators: the referenced
// variable sets, the change-detection cache, and the solved flag.
type base struct {
	all      []VarName
	dep      []VarName
	lastStep int
	solved   bool
}

func newBase(all, dep []VarName) base {
	return base{all: all, dep: dep, lastStep: -1}
}

func (b *base) AllVars() []VarName { return b.all }
func (b *base) DepVars() []VarName { return b.dep }
func (b *base) Solved() bool       { return b.solved }

// revSum sums the revisions of the watched variables.
func (b *base) revSum(sp *Space) int {
	sum := 0
	for _, n := range b.dep {
		sum += sp.variable(n).Revision()
	}
	return sum
}

// unchanged reports whether nothing the propagator watches has changed
// since its last run.
func (b *base) unchanged(sp *Space) bool {
	return b.revSum(sp) == b.lastStep
}

// finish records the post-run revision sum and memoizes the solved flag
// once every referenced variable is determined. The memoization is
// conservative: never before full determination, permanent after.
func (b *base) finish(sp *Space) {
	b.lastStep = b.revSum(sp)
	if b.solved {
		return
	}
	for _, n := range b.all {
		if !sp.variable(n).IsDetermined() {
			return
		}
	}
	b.solved = true
}

// rebuildBase returns a copy with private change-detection state.
func (b *base) rebuildBase() base {
	nb := *b
	nb.lastStep = -1
	return nb
}

// step wraps a narrowing body with the change-detection gate and the
// post-run bookkeeping. All concrete propagators route Step through it.
func step(sp *Space, b *base, body func(*Space) (int, error)) (int, error) {
	if b.solved || b.unchanged(sp) {
		return 0, nil
	}
	n, err := body(sp)
	if err != nil {
		return n, err
	}
	b.finish(sp)
	return n, nil
}
