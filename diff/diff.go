// Package diff computes per-region differential methylation statistics
// between two treatment groups and selects significant regions.
package diff

import (
	"errors"
	"fmt"
	"math"

	"github.com/latchbio/methyldmr/methyl"
	"github.com/latchbio/methyldmr/unite"
)

// Test selects the per-region significance test.
type Test byte

const (
	// Auto picks Fisher's exact test for one sample per group and the
	// logistic regression chi-square test otherwise.
	Auto Test = iota
	// Fisher is Fisher's exact test on the pooled per-group counts.
	Fisher
	// ChiSq is the logistic regression likelihood ratio test.
	ChiSq
)

// ParseTest maps a user-facing test name to its Test value.
func ParseTest(s string) (Test, error) {
	switch s {
	case "auto":
		return Auto, nil
	case "fisher":
		return Fisher, nil
	case "chisq":
		return ChiSq, nil
	default:
		return 0, fmt.Errorf("unrecognized significance test: %q (must be auto, fisher, or chisq)", s)
	}
}

func (t Test) String() string {
	switch t {
	case Auto:
		return "auto"
	case Fisher:
		return "fisher"
	case ChiSq:
		return "chisq"
	default:
		return "unknown"
	}
}

// Region is one united region's differential methylation result. MethDiff is
// the group 1 mean percent methylation minus the group 0 mean. Regions where
// either group has no coverage carry NaN statistics as a sentinel; they stay
// in the output so region counts remain auditable, and never pass Select.
type Region struct {
	Chrom    string
	Start    int
	End      int
	Strand   methyl.Strand
	PValue   float64
	QValue   float64
	MethDiff float64
}

// Calculate runs the significance test on every region of the united matrix
// and corrects the p-values across all regions at once. Regions come out in
// matrix order. Samples must be labeled with treatment groups 0 and 1 and
// each group needs at least one sample.
func Calculate(m unite.Matrix, test Test) ([]Region, error) {
	var idx0, idx1 []int
	for j := range m.Treatments {
		switch m.Treatments[j] {
		case 0:
			idx0 = append(idx0, j)
		case 1:
			idx1 = append(idx1, j)
		default:
			return nil, fmt.Errorf("sample %s has treatment group %d: only groups 0 and 1 are supported", m.Names[j], m.Treatments[j])
		}
	}
	if len(idx0) == 0 || len(idx1) == 0 {
		return nil, errors.New("both treatment groups need at least one sample")
	}
	chosen := test
	if chosen == Auto {
		if len(idx0) == 1 && len(idx1) == 1 {
			chosen = Fisher
		} else {
			chosen = ChiSq
		}
	}

	ans := make([]Region, m.Len())
	pvals := make([]float64, m.Len())
	for i := 0; i < m.Len(); i++ {
		ans[i] = Region{Chrom: m.Regions[i].Chrom, Start: m.Regions[i].Start, End: m.Regions[i].End, Strand: m.Regions[i].Strand}
		mean0, covered0 := groupMean(m, i, idx0)
		mean1, covered1 := groupMean(m, i, idx1)
		if covered0 == 0 || covered1 == 0 {
			ans[i].MethDiff = math.NaN()
			ans[i].PValue = math.NaN()
			pvals[i] = math.NaN()
			continue
		}
		ans[i].MethDiff = mean1 - mean0
		m0, u0 := pooledCounts(m, i, idx0)
		m1, u1 := pooledCounts(m, i, idx1)
		switch chosen {
		case Fisher:
			pvals[i] = fisherExactP(m1, u1, m0, u0)
		case ChiSq:
			pvals[i] = chiSquareP(m1, u1, m0, u0)
		}
		ans[i].PValue = pvals[i]
	}

	qvals := benjaminiHochberg(pvals)
	for i := range ans {
		ans[i].QValue = qvals[i]
	}
	return ans, nil
}

// Select keeps the regions with an absolute methylation difference at or
// above diffCutoff and a q-value at or below qCutoff. Both boundaries are
// inclusive. Sentinel regions with NaN statistics never pass. Zero matches
// is a valid outcome.
func Select(regions []Region, diffCutoff float64, qCutoff float64) []Region {
	var ans []Region
	for i := range regions {
		if math.IsNaN(regions[i].MethDiff) || math.IsNaN(regions[i].QValue) {
			continue
		}
		if math.Abs(regions[i].MethDiff) >= diffCutoff && regions[i].QValue <= qCutoff {
			ans = append(ans, regions[i])
		}
	}
	return ans
}

// groupMean averages percent methylation over the group's covered samples.
func groupMean(m unite.Matrix, i int, idx []int) (float64, int) {
	var sum float64
	var covered int
	for _, j := range idx {
		p := m.Percent(i, j)
		if !math.IsNaN(p) {
			sum += p
			covered++
		}
	}
	if covered == 0 {
		return math.NaN(), 0
	}
	return sum / float64(covered), covered
}

func pooledCounts(m unite.Matrix, i int, idx []int) (int, int) {
	var methylated, unmethylated int
	for _, j := range idx {
		methylated += m.Counts[i][j].Methylated
		unmethylated += m.Counts[i][j].Unmethylated
	}
	return methylated, unmethylated
}
