// Package spaces implements a finite-domain constraint programming engine
// built around cloneable computation spaces.
//
// A Space holds integer variables over finite domains, a list of constraint
// propagators that narrow those domains, and a queue of branching strategies.
// Solving alternates two phases: Propagate runs every propagator to a
// fixpoint, and the search drivers (DepthFirst, BranchAndBound) clone a
// stable-but-unsolved space and commit each clone to one branch of a choice.
//
// Domains are canonical sorted interval sequences over [Inf, Sup]. They are
// immutable value objects: every operation returns a new domain, so a cloned
// space can share interval storage with its parent without copying.
//
// Typical usage:
//
//	sp := spaces.New()
//	X, Y, Z := spaces.Name("X"), spaces.Name("Y"), spaces.Name("Z")
//	sp.Num("X", 3)
//	sp.Num("Z", 10)
//	sp.Decl("Y")
//	sp.Plus(X, Y, Z)
//	sp.DistributeFailFirst([]spaces.VarName{X, Y, Z})
//
//	state := spaces.DepthFirst(&spaces.State{Space: sp})
//	if state.Status == spaces.StatusSolved {
//		fmt.Println(state.Space.Solution())
//	}
package spaces
