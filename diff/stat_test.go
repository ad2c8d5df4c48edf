package diff

import (
	"math"
	"testing"
)

func TestFisherExactP(t *testing.T) {
	// 2 of 10 methylated versus 8 of 10: both tails sum to 4252/184756.
	p := fisherExactP(2, 8, 8, 2)
	if math.Abs(p-0.023014) > 1e-5 {
		t.Error("problem with two-sided fisher exact p-value:", p)
	}
	p = fisherExactP(5, 5, 5, 5)
	if math.Abs(p-1) > 1e-9 {
		t.Error("identical groups should give p of 1, got:", p)
	}
	// a zero margin pins the table, leaving nothing to test
	p = fisherExactP(0, 10, 0, 10)
	if p != 1 {
		t.Error("problem with degenerate margin:", p)
	}
}

func TestFisherExactPSymmetry(t *testing.T) {
	a := fisherExactP(3, 17, 12, 8)
	b := fisherExactP(12, 8, 3, 17)
	if math.Abs(a-b) > 1e-12 {
		t.Error("fisher exact should not depend on group order:", a, b)
	}
	if a <= 0 || a >= 1 {
		t.Error("fisher exact p-value out of range:", a)
	}
}

func TestChiSquareP(t *testing.T) {
	// deviance drop for 2/10 versus 8/10 is 2*(4*ln(0.4)+16*ln(1.6)) = 7.7098
	p := chiSquareP(2, 8, 8, 2)
	if p < 0.0053 || p > 0.0057 {
		t.Error("problem with likelihood ratio p-value:", p)
	}
	p = chiSquareP(5, 5, 5, 5)
	if math.Abs(p-1) > 1e-9 {
		t.Error("identical rates should give p of 1, got:", p)
	}
	p = chiSquareP(10, 0, 0, 10)
	if p > 1e-4 {
		t.Error("complete separation should give a tiny p-value:", p)
	}
}

func TestBenjaminiHochberg(t *testing.T) {
	q := benjaminiHochberg([]float64{0.01, 0.02, 0.03, 0.04})
	for i := range q {
		if math.Abs(q[i]-0.04) > 1e-12 {
			t.Error("problem with evenly spaced q-values:", q)
		}
	}

	q = benjaminiHochberg([]float64{0.05, math.NaN(), 0.01})
	if !math.IsNaN(q[1]) {
		t.Error("NaN p-value should stay NaN after correction:", q[1])
	}
	if math.Abs(q[0]-0.05) > 1e-12 || math.Abs(q[2]-0.02) > 1e-12 {
		t.Error("NaN entries should not count as tests:", q)
	}

	q = benjaminiHochberg([]float64{1.0})
	if q[0] != 1.0 {
		t.Error("q-values should cap at 1:", q[0])
	}
}
