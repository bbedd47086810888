package spaces

// search.go: search drivers. Both drivers run the same skeleton: propagate
// the top of the stack, report or discard it, otherwise ask its brancher
// for a choice, clone, commit, push. Branch-and-bound additionally
// constrains every explored space to be strictly better than the best
// solution found so far.

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Status is the outcome of one driver invocation.
type Status int

const (
	// StatusUnknown is the zero state before any driver ran.
	StatusUnknown Status = iota

	// StatusSolved reports that Space holds a solved space.
	StatusSolved

	// StatusEnd reports an exhausted search tree.
	StatusEnd
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusEnd:
		return "end"
	default:
		return "unknown"
	}
}

// SolvedTest decides whether a stable space counts as solved.
type SolvedTest func(sp *Space) bool

// SolveForVariables builds a solved test that requires the named variables
// to be determined, ignoring everything else.
func SolveForVariables(names []VarName) SolvedTest {
	return func(sp *Space) bool {
		for _, n := range names {
			v, ok := sp.vars[n]
			if !ok || !v.IsDetermined() {
				return false
			}
		}
		return true
	}
}

// SolveForPropagators is a solved test that requires every propagator to
// report solved.
func SolveForPropagators(sp *Space) bool {
	for _, p := range sp.props {
		if !p.Solved() {
			return false
		}
	}
	return true
}

// State carries a search across driver invocations. Populate Space and
// call a driver; after a StatusSolved return, Space holds the solved
// space and calling the driver again resumes from the remaining stack
// while More is true.
type State struct {
	// Space is the root on the first call and the most recent solved
	// space after a StatusSolved return.
	Space *Space

	// Stack is the driver's working stack of unexplored spaces.
	Stack []*Space

	// IsSolved is the solved test; nil means Space.IsSolved.
	IsSolved SolvedTest

	// SingleStep makes BranchAndBound return after every improving
	// solution instead of only at exhaustion.
	SingleStep bool

	// Best is the best solution found by BranchAndBound so far.
	Best *Space

	// NeedsConstraining marks that spaces still on the stack predate
	// Best; every child cloned from them receives the better-than-best
	// constraint before it is explored.
	NeedsConstraining bool

	// Status and More report the outcome: whether a solution was found
	// and whether the stack can still yield more.
	Status Status
	More   bool

	// Stats collects search statistics; allocated on first use.
	Stats *SearchStats

	// Log receives Debug-level node events; nil disables logging.
	Log *logrus.Logger

	bestGen int
}

func (s *State) init() {
	if s.Stats == nil {
		s.Stats = NewSearchStats()
	}
	if s.IsSolved == nil {
		s.IsSolved = func(sp *Space) bool { return sp.IsSolved() }
	}
	if len(s.Stack) == 0 && s.Status == StatusUnknown && s.Space != nil {
		s.Stack = append(s.Stack, s.Space)
	}
}

func (s *State) debugf(format string, args ...interface{}) {
	if s.Log != nil {
		s.Log.Debugf(format, args...)
	}
}

func (s *State) pop() *Space {
	sp := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return sp
}

// expand asks the top space's brancher for its choice on first contact,
// then clones and commits the next alternative. It returns the child to
// push, or nil when the space has no alternatives left.
func (s *State) expand(sp *Space) *Space {
	if !sp.committed {
		sp.commit = sp.brancher.branch(sp)
		sp.committed = true
		sp.nextChoice = 0
	}
	for sp.commit != nil && sp.nextChoice < sp.commit.NumChoices() {
		n := sp.nextChoice
		sp.nextChoice++
		child := sp.Clone()
		if err := sp.commit.Commit(child, n); err != nil {
			// Commit with a valid index only fails with ErrFail: the
			// branch is infeasible before propagation even starts.
			child.failed = true
			child.Done()
			s.Stats.recordFailure()
			s.debugf("branch %d infeasible at commit", n)
			continue
		}
		s.debugf("branch %d committed, depth %d", n, len(s.Stack)+1)
		return child
	}
	return nil
}

// DepthFirst explores the space tree depth-first and returns after the
// first solved space (StatusSolved, with More reporting whether the stack
// can be resumed) or exhaustion (StatusEnd). Call it again with the same
// state to enumerate further solutions.
func DepthFirst(state *State) *State {
	state.init()
	state.Stats.begin()
	defer state.Stats.end()

	for len(state.Stack) > 0 {
		sp := state.Stack[len(state.Stack)-1]
		state.Stats.recordNode()
		state.Stats.recordDepth(len(state.Stack))

		if err := sp.Propagate(); err != nil {
			state.pop()
			sp.Done()
			state.Stats.recordFailure()
			state.debugf("space failed: %v", err)
			continue
		}

		if state.IsSolved(sp) {
			state.pop()
			sp.Done()
			state.Stats.recordSolution()
			state.Space = sp
			state.Status = StatusSolved
			state.More = len(state.Stack) > 0
			state.debugf("solution found, %d spaces pending", len(state.Stack))
			return state
		}

		if child := state.expand(sp); child != nil {
			state.Stack = append(state.Stack, child)
			continue
		}

		state.pop()
		sp.Done()
		state.Stats.recordStable()
	}

	state.Status = StatusEnd
	state.More = false
	return state
}

// Ordering constrains a space to be strictly better than a previously
// recorded solution. It is supplied by the caller of BranchAndBound and
// posts whatever constraints define "better".
type Ordering func(sp *Space, best Solution) error

// BranchAndBound explores the tree like DepthFirst while keeping the best
// solution found so far and constraining every subsequently explored
// space, via ordering, to improve on it. With SingleStep set it returns
// after each improving solution; otherwise it runs to exhaustion and
// returns the best (StatusSolved), or StatusEnd if no solution was ever
// found.
func BranchAndBound(state *State, ordering Ordering) *State {
	state.init()
	state.Stats.begin()
	defer state.Stats.end()

	for len(state.Stack) > 0 {
		sp := state.Stack[len(state.Stack)-1]
		state.Stats.recordNode()
		state.Stats.recordDepth(len(state.Stack))

		// Spaces pushed before the current best was found still need
		// the better-than-best constraint. A space that has already
		// committed children is left as it is: its remaining choices are
		// taken against its own domain, and each child cloned from it
		// receives the constraint here when it reaches the top.
		if state.Best != nil && !sp.committed && sp.constrainedFor < state.bestGen {
			sp.constrainedFor = state.bestGen
			if err := ordering(sp, state.Best.Solution()); err != nil {
				sp.failed = true
				state.pop()
				sp.Done()
				state.Stats.recordFailure()
				continue
			}
		}

		if err := sp.Propagate(); err != nil {
			state.pop()
			sp.Done()
			state.Stats.recordFailure()
			state.debugf("space failed: %v", err)
			continue
		}

		if state.IsSolved(sp) {
			state.pop()
			sp.Done()
			state.Stats.recordSolution()
			state.Best = sp
			state.bestGen++
			state.NeedsConstraining = len(state.Stack) > 0
			state.debugf("improving solution found, %d spaces pending", len(state.Stack))
			if state.SingleStep {
				state.Space = sp
				state.Status = StatusSolved
				state.More = len(state.Stack) > 0
				return state
			}
			continue
		}

		if child := state.expand(sp); child != nil {
			state.Stack = append(state.Stack, child)
			continue
		}

		state.pop()
		sp.Done()
		state.Stats.recordStable()
	}

	state.More = false
	state.NeedsConstraining = false
	if state.Best != nil {
		state.Space = state.Best
		state.Status = StatusSolved
	} else {
		state.Status = StatusEnd
	}
	return state
}

// SolveN runs DepthFirst until limit solutions are collected (limit <= 0
// means all) or the tree is exhausted. The context is checked between
// driver invocations, so cancellation takes effect at space granularity.
func SolveN(ctx context.Context, sp *Space, limit int) ([]Solution, error) {
	state := &State{Space: sp}
	var out []Solution
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		DepthFirst(state)
		if state.Status != StatusSolved {
			return out, nil
		}
		out = append(out, state.Space.Solution())
		if limit > 0 && len(out) >= limit {
			return out, nil
		}
		if !state.More {
			return out, nil
		}
	}
}

// SolveAll collects every solution of the space.
func SolveAll(ctx context.Context, sp *Space) ([]Solution, error) {
	return SolveN(ctx, sp, 0)
}
