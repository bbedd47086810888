package spaces

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustSolveAll enumerates every solution of the space.
func mustSolveAll(t *testing.T, sp *Space) []Solution {
	t.Helper()
	sols, err := SolveAll(context.Background(), sp)
	require.NoError(t, err)
	return sols
}

func TestDepthFirstSimplePlus(t *testing.T) {
	sp := New()
	X, Y, Z := Name("X"), Name("Y"), Name("Z")
	require.NoError(t, sp.Num("X", 3))
	require.NoError(t, sp.Num("Z", 10))
	require.NoError(t, sp.Decl("Y"))
	sp.Plus(X, Y, Z)

	state := DepthFirst(&State{Space: sp})
	require.Equal(t, StatusSolved, state.Status)

	sol := state.Space.Solution()
	for name, want := range map[string]int{"X": 3, "Y": 7, "Z": 10} {
		got, ok := sol.Int(name)
		require.True(t, ok, "%s undetermined", name)
		require.Equal(t, want, got, "%s", name)
	}
}

func TestDepthFirstInfeasiblePlus(t *testing.T) {
	sp := New()
	X, Y, Z := Name("X"), Name("Y"), Name("Z")
	require.NoError(t, sp.Num("X", 13))
	require.NoError(t, sp.Num("Z", 10))
	require.NoError(t, sp.Decl("Y"))
	sp.Plus(X, Y, Z)

	state := DepthFirst(&State{Space: sp})
	require.Equal(t, StatusEnd, state.Status)
	require.False(t, state.More)
}

func TestDepthFirstEnumeratesDistinctSum(t *testing.T) {
	sp, err := NewDistinctSum()
	require.NoError(t, err)

	sols := mustSolveAll(t, sp)
	require.NotEmpty(t, sols)
	seen := make(map[[2]int]bool)
	for _, sol := range sols {
		a, _ := sol.Int("A")
		b, _ := sol.Int("B")
		c, _ := sol.Int("C")
		require.NotEqual(t, a, b, "distinct violated")
		require.Equal(t, a+b, c, "sum violated")
		require.False(t, seen[[2]int{a, b}], "duplicate solution (%d, %d)", a, b)
		seen[[2]int{a, b}] = true
	}
	// 11 * 11 pairs minus the 11 diagonal ones.
	require.Len(t, sols, 110)
}

func TestDepthFirstResume(t *testing.T) {
	sp, err := NewDistinctSum()
	require.NoError(t, err)

	state := &State{Space: sp}
	DepthFirst(state)
	require.Equal(t, StatusSolved, state.Status)
	require.True(t, state.More)
	first := state.Space.Solution()

	DepthFirst(state)
	require.Equal(t, StatusSolved, state.Status)
	second := state.Space.Solution()
	require.NotEqual(t, first, second)
}

func TestSolveForVariables(t *testing.T) {
	sp := New()
	X, Y := Name("X"), Name("Y")
	require.NoError(t, sp.Decl("X", RangeDomain(1, 3)))
	require.NoError(t, sp.Decl("Y", RangeDomain(1, 9)))
	sp.Lt(X, Y)
	sp.DistributeNaive([]VarName{X})

	state := DepthFirst(&State{Space: sp, IsSolved: SolveForVariables([]VarName{X})})
	require.Equal(t, StatusSolved, state.Status)
	x, ok := state.Space.Solution().Int("X")
	require.True(t, ok)
	require.Equal(t, 1, x)
	// Y may stay undetermined under the custom test.
	require.False(t, state.Space.Solution()["Y"].Determined)
}

func TestSolveForPropagators(t *testing.T) {
	sp := New()
	X, Y := Name("X"), Name("Y")
	require.NoError(t, sp.Decl("X", RangeDomain(1, 3)))
	require.NoError(t, sp.Decl("Y", RangeDomain(5, 9)))
	sp.Lt(X, Y)

	state := DepthFirst(&State{Space: sp, IsSolved: SolveForPropagators})
	require.Equal(t, StatusSolved, state.Status)
}

func TestBranchAndBoundMaximize(t *testing.T) {
	sp, err := NewMaximizeSum()
	require.NoError(t, err)

	state := BranchAndBound(&State{Space: sp}, MaximizeOrdering("Z"))
	require.Equal(t, StatusSolved, state.Status)
	require.False(t, state.More)

	z, ok := state.Space.Solution().Int("Z")
	require.True(t, ok)
	require.Equal(t, 10, z)
}

func TestBranchAndBoundSingleStep(t *testing.T) {
	sp, err := NewMaximizeSum()
	require.NoError(t, err)

	state := &State{Space: sp, SingleStep: true}
	best := 0
	for {
		BranchAndBound(state, MaximizeOrdering("Z"))
		if state.Status != StatusSolved {
			break
		}
		z, ok := state.Space.Solution().Int("Z")
		require.True(t, ok)
		// The exhaustion call re-reports the best; every earlier call
		// must strictly improve.
		require.GreaterOrEqual(t, z, best)
		best = z
		if !state.More {
			break
		}
	}
	require.Equal(t, 10, best)
}

func TestBranchAndBoundInfeasible(t *testing.T) {
	sp := New()
	X := Name("X")
	require.NoError(t, sp.Decl("X", RangeDomain(1, 3)))
	sp.Lt(X, X)

	state := BranchAndBound(&State{Space: sp}, MaximizeOrdering("X"))
	require.Equal(t, StatusEnd, state.Status)
}

func TestSolveNLimit(t *testing.T) {
	sp, err := NewDistinctSum()
	require.NoError(t, err)

	sols, err := SolveN(context.Background(), sp, 5)
	require.NoError(t, err)
	require.Len(t, sols, 5)
}

func TestSolveCancellation(t *testing.T) {
	sp, err := NewDistinctSum()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = SolveAll(ctx, sp)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearchStats(t *testing.T) {
	sp, err := NewDistinctSum()
	require.NoError(t, err)

	state := &State{Space: sp}
	for {
		DepthFirst(state)
		if state.Status != StatusSolved || !state.More {
			break
		}
	}
	require.Equal(t, 110, state.Stats.SolutionsFound)
	require.Positive(t, state.Stats.NodesExplored)
	require.Positive(t, state.Stats.MaxDepth)
	require.NotEmpty(t, state.Stats.String())
}
