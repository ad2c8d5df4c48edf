package methyl

import (
	"math"
	"testing"
)

func covRecord(start int, methylated int, unmethylated int) Record {
	return Record{Chrom: "chr1", Start: start, End: start, Strand: NoStrand, Methylated: methylated, Unmethylated: unmethylated}
}

func TestFilterCoverageLowBound(t *testing.T) {
	records := []Record{
		covRecord(10, 4, 5),  // coverage 9
		covRecord(20, 5, 5),  // coverage 10
		covRecord(30, 10, 1), // coverage 11
	}
	kept := FilterCoverage(records, 10, 100)
	if len(kept) != 2 {
		t.Fatal("problem with low coverage bound, wrong record count:", len(kept))
	}
	// A record exactly at the minimum stays in.
	if kept[0].Coverage() != 10 || kept[1].Coverage() != 11 {
		t.Error("problem with low coverage bound:", kept)
	}
}

func TestFilterCoverageHighPercentile(t *testing.T) {
	var records []Record
	for i := 0; i < 99; i++ {
		records = append(records, covRecord(i+1, 10, 10))
	}
	records = append(records, covRecord(1000, 900, 100))
	kept := FilterCoverage(records, 1, 99)
	if len(kept) != 99 {
		t.Fatal("problem with high percentile bound, wrong record count:", len(kept))
	}
	for i := range kept {
		if kept[i].Coverage() != 20 {
			t.Error("outlier coverage survived the percentile bound:", kept[i])
		}
	}
}

func TestFilterCoverageEmpty(t *testing.T) {
	kept := FilterCoverage(nil, 10, 99.9)
	if len(kept) != 0 {
		t.Error("problem filtering an empty record set")
	}
}

func TestRecordDerivedValues(t *testing.T) {
	r := covRecord(1, 10, 30)
	if r.Coverage() != 40 {
		t.Error("problem with coverage:", r.Coverage())
	}
	if r.PercentMethylation() != 25 {
		t.Error("problem with percent methylation:", r.PercentMethylation())
	}
	empty := covRecord(1, 0, 0)
	if !math.IsNaN(empty.PercentMethylation()) {
		t.Error("percent methylation of an uncovered record should be NaN")
	}
}
