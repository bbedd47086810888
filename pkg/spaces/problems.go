package spaces

import "strconv"

// problems.go: bundled models used by the CLI and the end-to-end tests.

// Problem is a bundled constraint model: a root-space builder plus the
// variables worth branching on and reporting.
type Problem struct {
	Name        string
	Description string

	// Build populates a fresh root space and queues its distribution.
	Build func() (*Space, error)

	// Maximize names the variable a branch-and-bound run should
	// maximize; empty for pure satisfaction problems.
	Maximize string
}

// Problems lists the bundled models.
func Problems() []Problem {
	return []Problem{
		{
			Name:        "send-more-money",
			Description: "SEND + MORE = MONEY cryptarithm, eight distinct digits",
			Build:       NewSendMoreMoney,
		},
		{
			Name:        "n-queens",
			Description: "8 queens on an 8x8 board, one per column",
			Build:       func() (*Space, error) { return NewQueens(8) },
		},
		{
			Name:        "distinct-sum",
			Description: "A + B = C with A and B distinct in [0, 10]",
			Build:       NewDistinctSum,
		},
		{
			Name:        "maximize-sum",
			Description: "maximize Z = X + Y with X, Y in [1, 5] and X != A",
			Build:       NewMaximizeSum,
			Maximize:    "Z",
		},
	}
}

// ProblemByName looks up a bundled model.
func ProblemByName(name string) (Problem, bool) {
	for _, p := range Problems() {
		if p.Name == name {
			return p, true
		}
	}
	return Problem{}, false
}

// NewSendMoreMoney builds the classic cryptarithm: distinct digits
// S,E,N,D,M,O,R,Y with S and M nonzero such that SEND + MORE = MONEY.
// The column sums are modeled as weighted sums over the digit variables.
func NewSendMoreMoney() (*Space, error) {
	sp := New()
	letters := Names("S", "E", "N", "D", "M", "O", "R", "Y")
	for _, n := range letters {
		if err := sp.Decl(n.String(), RangeDomain(0, 9)); err != nil {
			return nil, err
		}
	}
	// Leading digits cannot be zero.
	if err := sp.Decl("S", RangeDomain(1, 9)); err != nil {
		return nil, err
	}
	if err := sp.Decl("M", RangeDomain(1, 9)); err != nil {
		return nil, err
	}
	sp.Distinct(letters)

	S, E, N, D := Name("S"), Name("E"), Name("N"), Name("D")
	M, O, R, Y := Name("M"), Name("O"), Name("R"), Name("Y")

	send, err := sp.WSum([]int{1000, 100, 10, 1}, []VarName{S, E, N, D})
	if err != nil {
		return nil, err
	}
	more, err := sp.WSum([]int{1000, 100, 10, 1}, []VarName{M, O, R, E})
	if err != nil {
		return nil, err
	}
	money, err := sp.WSum([]int{10000, 1000, 100, 10, 1}, []VarName{M, O, N, E, Y})
	if err != nil {
		return nil, err
	}
	sp.Eq(sp.Plus(send, more), money)

	sp.DistributeFailFirst(letters)
	return sp, nil
}

// NewQueens builds the n-queens model: Ri in [1, n] is the row of the
// queen in column i, all distinct, and no two queens share a diagonal.
// The diagonal constraints are Ri + (i-j) != Rj and Rj + (i-j) != Ri for
// i > j, using constant-offset temporaries.
func NewQueens(n int) (*Space, error) {
	sp := New()
	rows := make([]VarName, n)
	for i := range rows {
		rows[i] = UserName("R" + strconv.Itoa(i+1))
		if err := sp.Decl(rows[i].String(), RangeDomain(1, n)); err != nil {
			return nil, err
		}
	}
	sp.Distinct(rows)

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			offset, err := sp.Konst(i - j)
			if err != nil {
				return nil, err
			}
			sp.Neq(sp.Plus(rows[i], offset), rows[j])
			sp.Neq(sp.Plus(rows[j], offset), rows[i])
		}
	}

	sp.DistributeFailFirst(rows)
	return sp, nil
}

// NewDistinctSum builds A, B in [0, 10], A != B, C = A + B.
func NewDistinctSum() (*Space, error) {
	sp := New()
	A, B, C := Name("A"), Name("B"), Name("C")
	if err := sp.Decl("A", RangeDomain(0, 10)); err != nil {
		return nil, err
	}
	if err := sp.Decl("B", RangeDomain(0, 10)); err != nil {
		return nil, err
	}
	sp.Distinct([]VarName{A, B})
	sp.Plus(A, B, C)
	sp.DistributeFailFirst([]VarName{A, B, C})
	return sp, nil
}

// NewMaximizeSum builds the branch-and-bound demo: X, Y, A in [1, 5],
// Z = X + Y, X != A. Maximizing Z reaches 10.
func NewMaximizeSum() (*Space, error) {
	sp := New()
	X, Y, Z, A := Name("X"), Name("Y"), Name("Z"), Name("A")
	for _, name := range []string{"X", "Y", "A"} {
		if err := sp.Decl(name, RangeDomain(1, 5)); err != nil {
			return nil, err
		}
	}
	sp.Plus(X, Y, Z)
	sp.Neq(X, A)
	sp.DistributeNaive([]VarName{X, Y, Z, A})
	return sp, nil
}

// MaximizeOrdering builds the branch-and-bound ordering that requires the
// named variable to strictly exceed its value in the best solution.
func MaximizeOrdering(name string) Ordering {
	return func(sp *Space, best Solution) error {
		bound, ok := best.Int(name)
		if !ok {
			return nil
		}
		_, err := sp.ensure(UserName(name)).Constrain(RangeDomain(bound+1, Sup))
		return err
	}
}
