package methyl

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// FilterCoverage returns the records with coverage of at least loCount and no
// more than the hiPerc percentile of the sample's coverage distribution.
// The percentile is taken over the distribution before either bound is
// applied, so the two bounds do not interact. A record exactly at either
// bound is kept. hiPerc of 100 disables the upper bound.
func FilterCoverage(records []Record, loCount int, hiPerc float64) []Record {
	if len(records) == 0 {
		return nil
	}
	covs := make([]float64, len(records))
	for i := range records {
		covs[i] = float64(records[i].Coverage())
	}
	slices.Sort(covs)
	hiCount := stat.Quantile(hiPerc/100, stat.LinInterp, covs, nil)
	var ans []Record
	for i := range records {
		cov := records[i].Coverage()
		if cov >= loCount && float64(cov) <= hiCount {
			ans = append(ans, records[i])
		}
	}
	return ans
}
