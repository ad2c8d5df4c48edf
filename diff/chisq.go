package diff

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquareP computes the p-value of the logistic regression likelihood
// ratio test for a methylation difference between the two groups. The full
// model fits one methylation rate per group, the null model a single shared
// rate. With a single two-level covariate the binomial MLE rates are the
// pooled per-group rates, so the deviance drop comes straight from the
// pooled counts and the test statistic is chi-square with one degree of
// freedom.
func chiSquareP(m1 int, u1 int, m0 int, u0 int) float64 {
	n1 := m1 + u1
	n0 := m0 + u0
	if n1 == 0 || n0 == 0 {
		return math.NaN()
	}
	rate1 := float64(m1) / float64(n1)
	rate0 := float64(m0) / float64(n0)
	rateNull := float64(m1+m0) / float64(n1+n0)

	lrt := 2 * (xLogRatio(m1, rate1, rateNull) +
		xLogRatio(u1, 1-rate1, 1-rateNull) +
		xLogRatio(m0, rate0, rateNull) +
		xLogRatio(u0, 1-rate0, 1-rateNull))
	if lrt < 0 {
		// float error near a zero deviance drop
		lrt = 0
	}
	chi := distuv.ChiSquared{K: 1}
	return chi.Survival(lrt)
}

// xLogRatio returns k*log(p/q), taking 0*log(0/q) as 0.
func xLogRatio(k int, p float64, q float64) float64 {
	if k == 0 {
		return 0
	}
	return float64(k) * math.Log(p/q)
}
