package diff

import (
	"math"
	"testing"

	"github.com/latchbio/methyldmr/methyl"
	"github.com/latchbio/methyldmr/unite"
)

func twoSampleMatrix(counts ...[]unite.Counts) unite.Matrix {
	m := unite.Matrix{
		Names:      []string{"control", "treated"},
		Treatments: []int{0, 1},
	}
	for i := range counts {
		m.Regions = append(m.Regions, unite.Region{Chrom: "chr1", Start: 1 + i*1000, End: (i + 1) * 1000, Strand: methyl.NoStrand})
		m.Counts = append(m.Counts, counts[i])
	}
	return m
}

func TestCalculateOneVersusOne(t *testing.T) {
	m := twoSampleMatrix([]unite.Counts{{Methylated: 8, Unmethylated: 2}, {Methylated: 2, Unmethylated: 8}})
	regions, err := Calculate(m, Auto)
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 1 {
		t.Fatal("problem with region count:", len(regions))
	}
	r := regions[0]
	// treated mean 20 minus control mean 80
	if r.MethDiff != -60 {
		t.Error("problem with methylation difference:", r.MethDiff)
	}
	// one sample per group, so Auto runs the exact test
	if math.Abs(r.PValue-0.023014) > 1e-5 {
		t.Error("problem with p-value:", r.PValue)
	}
	// a single region corrects to itself
	if r.QValue != r.PValue {
		t.Error("problem with q-value:", r.QValue)
	}
}

func TestCalculateMultiSampleUsesChiSquare(t *testing.T) {
	m := unite.Matrix{
		Names:      []string{"c1", "c2", "t1", "t2"},
		Treatments: []int{0, 0, 1, 1},
		Regions:    []unite.Region{{Chrom: "chr1", Start: 1, End: 1000, Strand: methyl.NoStrand}},
		Counts: [][]unite.Counts{{
			{Methylated: 8, Unmethylated: 2},
			{Methylated: 9, Unmethylated: 1},
			{Methylated: 2, Unmethylated: 8},
			{Methylated: 1, Unmethylated: 9},
		}},
	}
	regions, err := Calculate(m, Auto)
	if err != nil {
		t.Fatal(err)
	}
	r := regions[0]
	// treated mean (20+10)/2 minus control mean (80+90)/2
	if r.MethDiff != -70 {
		t.Error("problem with multi-sample methylation difference:", r.MethDiff)
	}
	expected := chiSquareP(3, 17, 17, 3)
	if r.PValue != expected {
		t.Error("problem with pooled counts for the chi-square test:", r.PValue, expected)
	}
}

func TestCalculateSentinel(t *testing.T) {
	m := twoSampleMatrix(
		[]unite.Counts{{Methylated: 5, Unmethylated: 5}, {}},
		[]unite.Counts{{Methylated: 8, Unmethylated: 2}, {Methylated: 2, Unmethylated: 8}},
	)
	regions, err := Calculate(m, Fisher)
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 2 {
		t.Fatal("sentinel regions must stay in the output, got:", len(regions))
	}
	if !math.IsNaN(regions[0].PValue) || !math.IsNaN(regions[0].QValue) || !math.IsNaN(regions[0].MethDiff) {
		t.Error("uncovered group should give NaN statistics:", regions[0])
	}
	// the sentinel does not count as a test, so the real region corrects alone
	if regions[1].QValue != regions[1].PValue {
		t.Error("problem with q-value when a sentinel is present:", regions[1].QValue)
	}
}

func TestCalculateRejectsBadGroups(t *testing.T) {
	m := twoSampleMatrix()
	m.Treatments = []int{0, 2}
	_, err := Calculate(m, Auto)
	if err == nil {
		t.Error("expected an error for a treatment group other than 0 or 1")
	}
	m.Treatments = []int{0, 0}
	_, err = Calculate(m, Auto)
	if err == nil {
		t.Error("expected an error when one group is empty")
	}
}

func TestSelectBoundaries(t *testing.T) {
	regions := []Region{
		{Chrom: "chr1", Start: 1, MethDiff: 25, QValue: 0.05},
		{Chrom: "chr1", Start: 2, MethDiff: -25, QValue: 0.05},
		{Chrom: "chr1", Start: 3, MethDiff: 24.999, QValue: 0.01},
		{Chrom: "chr1", Start: 4, MethDiff: 60, QValue: 0.050001},
		{Chrom: "chr1", Start: 5, MethDiff: math.NaN(), QValue: math.NaN()},
	}
	kept := Select(regions, 25, 0.05)
	if len(kept) != 2 {
		t.Fatal("problem with selector boundaries, kept:", len(kept))
	}
	// both inclusive boundaries survive, on either sign of the difference
	if kept[0].Start != 1 || kept[1].Start != 2 {
		t.Error("problem with selector boundaries:", kept)
	}
}

func TestParseTest(t *testing.T) {
	tt, err := ParseTest("chisq")
	if err != nil || tt != ChiSq {
		t.Error("problem parsing test name chisq")
	}
	_, err = ParseTest("anova")
	if err == nil {
		t.Error("expected an error for an unknown test name")
	}
}
