package spaces

// distribute.go: branching. A branch strategy turns a stable-but-unsolved
// space into a finite sequence of child spaces. It is assembled from three
// pluggable pieces: a filter selecting the variables of interest, an
// ordering picking the variable to branch on, and a value heuristic
// producing the actual two-way choice.

// FilterFunc selects the subsequence of candidate variables.
type FilterFunc func(sp *Space, names []VarName) []VarName

// OrderFunc reports whether a should be branched before b.
type OrderFunc func(sp *Space, a, b VarName) bool

// ValueFunc builds the choice for the selected variable.
type ValueFunc func(name VarName) *Choice

// Choice is a committable branching decision with a known number of
// alternatives. Commit applies alternative n to a freshly cloned space.
type Choice struct {
	numChoices int
	commit     func(sp *Space, n int) error
}

// NumChoices returns the number of alternatives.
func (c *Choice) NumChoices() int { return c.numChoices }

// Commit applies alternative n to the space. An index outside
// [0, NumChoices) is a usage error.
func (c *Choice) Commit(sp *Space, n int) error {
	if n < 0 || n >= c.numChoices {
		return ErrInvalidChoice
	}
	return c.commit(sp, n)
}

// FilterUndetermined keeps the variables whose domains are not singletons.
// This is the default filter.
func FilterUndetermined(sp *Space, names []VarName) []VarName {
	var out []VarName
	for _, n := range names {
		if sp.variable(n).IsUndetermined() {
			out = append(out, n)
		}
	}
	return out
}

// OrderNaive keeps the script's order: the first candidate wins.
func OrderNaive(sp *Space, a, b VarName) bool { return true }

// OrderBySize prefers the variable with the smaller domain (first-fail).
func OrderBySize(sp *Space, a, b VarName) bool {
	return sp.variable(a).Size() <= sp.variable(b).Size()
}

// OrderByMin prefers the variable with the smaller minimum.
func OrderByMin(sp *Space, a, b VarName) bool {
	return sp.variable(a).Min() <= sp.variable(b).Min()
}

// OrderByMax prefers the variable with the larger maximum.
func OrderByMax(sp *Space, a, b VarName) bool {
	return sp.variable(a).Max() >= sp.variable(b).Max()
}

// ValueMin tries the minimum first, then the rest of the range.
func ValueMin(name VarName) *Choice {
	return &Choice{numChoices: 2, commit: func(sp *Space, n int) error {
		v := sp.variable(name)
		var d Domain
		if n == 0 {
			d = SingletonDomain(v.Min())
		} else {
			d = RangeDomain(v.Min()+1, v.Max())
		}
		_, err := v.Constrain(d)
		return err
	}}
}

// ValueMax tries the maximum first, then the rest of the range.
func ValueMax(name VarName) *Choice {
	return &Choice{numChoices: 2, commit: func(sp *Space, n int) error {
		v := sp.variable(name)
		var d Domain
		if n == 0 {
			d = SingletonDomain(v.Max())
		} else {
			d = RangeDomain(v.Min(), v.Max()-1)
		}
		_, err := v.Constrain(d)
		return err
	}}
}

// ValueMid tries the exact middle element first, then the domain without
// that element.
func ValueMid(name VarName) *Choice {
	return &Choice{numChoices: 2, commit: func(sp *Space, n int) error {
		v := sp.variable(name)
		mid := v.Mid()
		var d Domain
		if n == 0 {
			d = SingletonDomain(mid)
		} else {
			d = SingletonDomain(mid).Complement()
		}
		_, err := v.Constrain(d)
		return err
	}}
}

// ValueSplitMin bisects on the extreme bounds, lower half first.
func ValueSplitMin(name VarName) *Choice {
	return &Choice{numChoices: 2, commit: func(sp *Space, n int) error {
		v := sp.variable(name)
		lo, hi := v.Min(), v.Max()
		m := (lo + hi) / 2
		var d Domain
		if n == 0 {
			d = RangeDomain(lo, m)
		} else {
			d = RangeDomain(m+1, hi)
		}
		_, err := v.Constrain(d)
		return err
	}}
}

// ValueSplitMax bisects on the extreme bounds, upper half first.
func ValueSplitMax(name VarName) *Choice {
	return &Choice{numChoices: 2, commit: func(sp *Space, n int) error {
		v := sp.variable(name)
		lo, hi := v.Min(), v.Max()
		m := (lo + hi) / 2
		var d Domain
		if n == 0 {
			d = RangeDomain(m+1, hi)
		} else {
			d = RangeDomain(lo, m)
		}
		_, err := v.Constrain(d)
		return err
	}}
}

// GenericOptions configures DistributeGeneric. Nil fields fall back to the
// defaults: undetermined filter, naive ordering, minimum-value choices.
type GenericOptions struct {
	Filter FilterFunc
	Order  OrderFunc
	Value  ValueFunc
}

// Strategy is a queued branch strategy over a fixed set of variables.
type Strategy struct {
	names  []VarName
	filter FilterFunc
	order  OrderFunc
	value  ValueFunc
}

// branch filters the candidates against the space; with none remaining it
// returns nil so the brancher can fall through to the next queued
// strategy. Otherwise it picks the first candidate per the ordering and
// returns that variable's choice.
func (st *Strategy) branch(sp *Space) *Choice {
	cands := st.filter(sp, st.names)
	if len(cands) == 0 {
		return nil
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if !st.order(sp, best, c) {
			best = c
		}
	}
	return st.value(best)
}

// branchQueue is the strategy FIFO shared by reference across a family of
// spaces. It is append-only during problem construction and read-only
// during search.
type branchQueue struct {
	strategies []*Strategy
}

// Brancher walks the shared queue on behalf of one space. The cursor lets
// a child skip strategies whose variables were all determined before it
// was cloned.
type Brancher struct {
	queue *branchQueue
	next  int
}

// branch returns the next available choice, advancing the cursor past
// exhausted strategies, or nil when the queue is spent.
func (b *Brancher) branch(sp *Space) *Choice {
	for b.next < len(b.queue.strategies) {
		if c := b.queue.strategies[b.next].branch(sp); c != nil {
			return c
		}
		b.next++
	}
	return nil
}

// DistributeGeneric queues a branch strategy over the named variables,
// assembled from the given options.
func (sp *Space) DistributeGeneric(names []VarName, opts GenericOptions) *Space {
	st := &Strategy{
		names:  append([]VarName(nil), names...),
		filter: opts.Filter,
		order:  opts.Order,
		value:  opts.Value,
	}
	if st.filter == nil {
		st.filter = FilterUndetermined
	}
	if st.order == nil {
		st.order = OrderNaive
	}
	if st.value == nil {
		st.value = ValueMin
	}
	for _, n := range st.names {
		sp.ensure(n)
	}
	sp.brancher.queue.strategies = append(sp.brancher.queue.strategies, st)
	return sp
}

// DistributeNaive queues the naive strategy: first undetermined variable
// in script order, minimum value first.
func (sp *Space) DistributeNaive(names []VarName) *Space {
	return sp.DistributeGeneric(names, GenericOptions{})
}

// DistributeFailFirst queues the first-fail strategy: smallest domain
// first, minimum value first.
func (sp *Space) DistributeFailFirst(names []VarName) *Space {
	return sp.DistributeGeneric(names, GenericOptions{Order: OrderBySize})
}

// DistributeSplit queues the domain-splitting strategy: smallest domain
// first, lower half first.
func (sp *Space) DistributeSplit(names []VarName) *Space {
	return sp.DistributeGeneric(names, GenericOptions{Order: OrderBySize, Value: ValueSplitMin})
}

// Named strategy pieces for callers that configure branching from text.
var (
	orderingsByName = map[string]OrderFunc{
		"naive": OrderNaive,
		"size":  OrderBySize,
		"min":   OrderByMin,
		"max":   OrderByMax,
	}
	valuesByName = map[string]ValueFunc{
		"min":      ValueMin,
		"max":      ValueMax,
		"mid":      ValueMid,
		"splitMin": ValueSplitMin,
		"splitMax": ValueSplitMax,
	}
)

// OrderingByName resolves one of naive, size, min, max.
func OrderingByName(name string) (OrderFunc, error) {
	f, ok := orderingsByName[name]
	if !ok {
		return nil, ErrInvalidArgument
	}
	return f, nil
}

// ValueByName resolves one of min, max, mid, splitMin, splitMax.
func ValueByName(name string) (ValueFunc, error) {
	f, ok := valuesByName[name]
	if !ok {
		return nil, ErrInvalidArgument
	}
	return f, nil
}
