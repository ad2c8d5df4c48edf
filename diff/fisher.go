package diff

import (
	"math"

	"github.com/vertgenlab/gonomics/numbers"
)

// fisherExactP computes the two-sided Fisher's exact test p-value for the
// 2x2 table [[a, b], [c, d]], with rows as treatment groups and columns as
// methylated/unmethylated counts. The two-sided p-value sums every table at
// least as extreme as the observed one, meaning every table whose
// probability under the hypergeometric null does not exceed the observed
// table's. Probabilities are computed in log space so large counts do not
// overflow.
func fisherExactP(a int, b int, c int, d int) float64 {
	row1 := a + b
	col1 := a + c
	n := a + b + c + d
	if n == 0 {
		return math.NaN()
	}
	kMin := numbers.Max(0, col1-(n-row1))
	kMax := numbers.Min(row1, col1)
	if kMin == kMax {
		// only one table satisfies the margins
		return 1
	}
	// relative tolerance absorbs float error when a tied table's log
	// probability lands a hair above the observed one
	logObs := logHyperProb(a, row1, col1, n)
	var p float64
	for k := kMin; k <= kMax; k++ {
		lp := logHyperProb(k, row1, col1, n)
		if lp <= logObs+1e-7 {
			p += math.Exp(lp)
		}
	}
	if p > 1 {
		p = 1
	}
	return p
}

// logHyperProb is the log probability of drawing k from the hypergeometric
// distribution fixed by the table margins.
func logHyperProb(k int, row1 int, col1 int, n int) float64 {
	return logChoose(row1, k) + logChoose(n-row1, col1-k) - logChoose(n, col1)
}

func logChoose(n int, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
