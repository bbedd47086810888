package spaces

import (
	"math/rand"
	"testing"
)

func TestDomainPlus(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Domain
		expected Domain
	}{
		{
			name:     "singletons",
			a:        Domain{{3, 3}},
			b:        Domain{{7, 7}},
			expected: Domain{{10, 10}},
		},
		{
			name:     "ranges",
			a:        Domain{{1, 2}},
			b:        Domain{{10, 20}},
			expected: Domain{{11, 22}},
		},
		{
			name:     "narrow gaps close",
			a:        Domain{{0, 0}, {2, 2}},
			b:        Domain{{0, 1}},
			expected: Domain{{0, 3}},
		},
		{
			name:     "clamped at sup",
			a:        Domain{{Sup - 1, Sup}},
			b:        Domain{{5, 5}},
			expected: Domain{{Sup, Sup}},
		},
		{
			name:     "empty operand",
			a:        nil,
			b:        Domain{{1, 5}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Plus(tt.b)
			if !got.Equal(tt.expected) {
				t.Errorf("%v.Plus(%v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDomainMinus(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Domain
		expected Domain
	}{
		{
			name:     "singletons",
			a:        Domain{{10, 10}},
			b:        Domain{{3, 3}},
			expected: Domain{{7, 7}},
		},
		{
			name:     "clamped at zero",
			a:        Domain{{2, 5}},
			b:        Domain{{4, 4}},
			expected: Domain{{0, 1}},
		},
		{
			name:     "impossible pair dropped",
			a:        Domain{{2, 3}},
			b:        Domain{{10, 12}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Minus(tt.b)
			if !got.Equal(tt.expected) {
				t.Errorf("%v.Minus(%v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDomainTimes(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Domain
		expected Domain
	}{
		{
			name:     "singletons",
			a:        Domain{{3, 3}},
			b:        Domain{{5, 5}},
			expected: Domain{{15, 15}},
		},
		{
			name:     "bounds only",
			a:        Domain{{2, 3}},
			b:        Domain{{4, 5}},
			expected: Domain{{8, 15}},
		},
		{
			name:     "zero factor",
			a:        Domain{{0, 0}},
			b:        Domain{{7, 9}},
			expected: Domain{{0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Times(tt.b)
			if !got.Equal(tt.expected) {
				t.Errorf("%v.Times(%v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDomainDivBy(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Domain
		expected Domain
	}{
		{
			name:     "exact",
			a:        Domain{{15, 15}},
			b:        Domain{{5, 5}},
			expected: Domain{{3, 3}},
		},
		{
			name:     "floor bounds",
			a:        Domain{{7, 9}},
			b:        Domain{{2, 2}},
			expected: Domain{{3, 4}},
		},
		{
			name:     "zero divisor skipped",
			a:        Domain{{4, 8}},
			b:        Domain{{0, 0}},
			expected: nil,
		},
		{
			name:     "divisor touching zero keeps sup",
			a:        Domain{{4, 8}},
			b:        Domain{{0, 2}},
			expected: Domain{{2, Sup}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.DivBy(tt.b)
			if !got.Equal(tt.expected) {
				t.Errorf("%v.DivBy(%v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCloseGaps2(t *testing.T) {
	a := Domain{{0, 0}, {10, 14}}
	b := Domain{{0, 2}, {20, 24}}
	a2, b2 := closeGaps2(a, b)

	// Outputs must cover the originals.
	for _, v := range a.ToSlice() {
		if !a2.Has(v) {
			t.Fatalf("closeGaps2 dropped %d from %v", v, a)
		}
	}
	for _, v := range b.ToSlice() {
		if !b2.Has(v) {
			t.Fatalf("closeGaps2 dropped %d from %v", v, b)
		}
	}

	// And be stable under a second application.
	a3, b3 := closeGaps2(a2, b2)
	if len(a3) != len(a2) || len(b3) != len(b2) {
		t.Errorf("closeGaps2 not stable: (%v, %v) -> (%v, %v)", a2, b2, a3, b3)
	}
}

// TestPlusMatchesPairwiseSums checks Plus against brute-forced pairwise
// sums on randomized small domains.
func TestPlusMatchesPairwiseSums(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a, b := randomDomain(r), randomDomain(r)
		got := a.Plus(b)

		want := make(map[int]bool)
		for _, x := range a.ToSlice() {
			for _, y := range b.ToSlice() {
				want[x+y] = true
			}
		}
		for v := range want {
			if !got.Has(v) {
				t.Fatalf("Plus missing %d: %v + %v = %v", v, a, b, got)
			}
		}
	}
}

// TestMinusMatchesPairwiseDiffs checks that every nonnegative pairwise
// difference is present in Minus.
func TestMinusMatchesPairwiseDiffs(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		a, b := randomDomain(r), randomDomain(r)
		got := a.Minus(b)
		for _, x := range a.ToSlice() {
			for _, y := range b.ToSlice() {
				if x-y >= 0 && !got.Has(x-y) {
					t.Fatalf("Minus missing %d: %v - %v = %v", x-y, a, b, got)
				}
			}
		}
	}
}
