package spaces

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// declRange is a test helper declaring name over [lo, hi].
func declRange(t *testing.T, sp *Space, name string, lo, hi int) VarName {
	t.Helper()
	require.NoError(t, sp.Decl(name, RangeDomain(lo, hi)))
	return Name(name)
}

func TestEqPropagator(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 1, 6)
	y := declRange(t, sp, "Y", 4, 9)
	sp.Eq(x, y)

	require.NoError(t, sp.Propagate())
	require.True(t, sp.variable(x).Domain().Equal(RangeDomain(4, 6)))
	require.True(t, sp.variable(y).Domain().Equal(RangeDomain(4, 6)))
}

func TestLtPropagator(t *testing.T) {
	tests := []struct {
		name       string
		xLo, xHi   int
		yLo, yHi   int
		wantX      Domain
		wantY      Domain
		wantFailed bool
	}{
		{
			name: "both trimmed",
			xLo:  1, xHi: 10, yLo: 1, yHi: 10,
			wantX: RangeDomain(1, 9),
			wantY: RangeDomain(2, 10),
		},
		{
			name: "already satisfied",
			xLo:  1, xHi: 3, yLo: 5, yHi: 9,
			wantX: RangeDomain(1, 3),
			wantY: RangeDomain(5, 9),
		},
		{
			name: "infeasible",
			xLo:  7, xHi: 9, yLo: 1, yHi: 3,
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := New()
			x := declRange(t, sp, "X", tt.xLo, tt.xHi)
			y := declRange(t, sp, "Y", tt.yLo, tt.yHi)
			sp.Lt(x, y)

			err := sp.Propagate()
			if tt.wantFailed {
				require.ErrorIs(t, err, ErrFail)
				return
			}
			require.NoError(t, err)
			require.True(t, sp.variable(x).Domain().Equal(tt.wantX), "X = %v", sp.variable(x).Domain())
			require.True(t, sp.variable(y).Domain().Equal(tt.wantY), "Y = %v", sp.variable(y).Domain())
		})
	}
}

func TestLtMarksSolved(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 1, 3)
	y := declRange(t, sp, "Y", 5, 9)
	sp.Lt(x, y)

	require.NoError(t, sp.Propagate())
	require.True(t, sp.props[0].Solved(), "satisfied lt should memoize solved")
}

func TestLtePropagator(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 1, 10)
	y := declRange(t, sp, "Y", 1, 4)
	sp.Lte(x, y)

	require.NoError(t, sp.Propagate())
	require.True(t, sp.variable(x).Domain().Equal(RangeDomain(1, 4)))
	require.True(t, sp.variable(y).Domain().Equal(RangeDomain(1, 4)))
}

func TestGtGtePropagators(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 1, 10)
	y := declRange(t, sp, "Y", 4, 8)
	sp.Gt(x, y)
	require.NoError(t, sp.Propagate())
	require.True(t, sp.variable(x).Domain().Equal(RangeDomain(5, 10)), "X = %v", sp.variable(x).Domain())

	sp2 := New()
	a := declRange(t, sp2, "A", 1, 10)
	b := declRange(t, sp2, "B", 4, 8)
	sp2.Gte(a, b)
	require.NoError(t, sp2.Propagate())
	require.True(t, sp2.variable(a).Domain().Equal(RangeDomain(4, 10)), "A = %v", sp2.variable(a).Domain())
}

func TestNeqPropagator(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 3, 3)
	y := declRange(t, sp, "Y", 1, 5)
	sp.Neq(x, y)

	require.NoError(t, sp.Propagate())
	require.True(t, sp.variable(y).Domain().Equal(Domain{{1, 2}, {4, 5}}), "Y = %v", sp.variable(y).Domain())
}

func TestNeqDisjointSolved(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 1, 3)
	y := declRange(t, sp, "Y", 7, 9)
	sp.Neq(x, y)

	require.NoError(t, sp.Propagate())
	require.True(t, sp.props[0].Solved())
}

func TestNeqBothSingletonEqualFails(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 4, 4)
	y := declRange(t, sp, "Y", 4, 4)
	sp.Neq(x, y)

	require.ErrorIs(t, sp.Propagate(), ErrFail)
}

func TestDistinct(t *testing.T) {
	sp := New()
	a := declRange(t, sp, "A", 1, 1)
	b := declRange(t, sp, "B", 1, 2)
	c := declRange(t, sp, "C", 1, 3)
	sp.Distinct([]VarName{a, b, c})

	require.NoError(t, sp.Propagate())
	require.Equal(t, 2, sp.variable(b).Value())
	require.Equal(t, 3, sp.variable(c).Value())
}

func TestChangeDetectionGate(t *testing.T) {
	sp := New()
	x := declRange(t, sp, "X", 1, 6)
	y := declRange(t, sp, "Y", 4, 9)
	sp.Eq(x, y)
	require.NoError(t, sp.Propagate())

	// Nothing changed since the fixpoint: the gate must skip the body
	// and report zero revisions.
	n, err := sp.props[0].Step(sp)
	require.NoError(t, err)
	require.Zero(t, n)
}
