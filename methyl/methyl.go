// Package methyl holds the per-cytosine methylation data model shared by the
// rest of the pipeline: reading the three supported call formats into records,
// and coverage-based record filtering.
package methyl

import (
	"fmt"
	"math"
)

// Strand of a methylation call. Bismark coverage files are unstranded and
// default to NoStrand.
type Strand byte

const (
	Plus     Strand = '+'
	Minus    Strand = '-'
	NoStrand Strand = '.'
)

func (s Strand) String() string {
	return string(byte(s))
}

// Record is a single methylation observation for one sample: one cytosine, or
// one interval for region-level input. Coordinates are 1-based and closed
// regardless of the source format; parsers normalize on the way in.
type Record struct {
	Chrom        string
	Start        int
	End          int
	Strand       Strand
	Methylated   int
	Unmethylated int
}

// Coverage is the total read support for the record.
func (r Record) Coverage() int {
	return r.Methylated + r.Unmethylated
}

// PercentMethylation returns the methylated fraction as a 0-100 percentage,
// or NaN when the record has no coverage.
func (r Record) PercentMethylation() float64 {
	cov := r.Coverage()
	if cov == 0 {
		return math.NaN()
	}
	return 100 * float64(r.Methylated) / float64(cov)
}

func (r Record) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%d", r.Chrom, r.Start, r.End, r.Strand, r.Methylated, r.Unmethylated)
}

// Sample pairs a named input with its treatment group and parsed records.
// Records are kept sorted by (chrom, start, end).
type Sample struct {
	Name      string
	Treatment int
	Records   []Record
}

// Coverages extracts the per-record coverage vector, in record order.
func (s Sample) Coverages() []float64 {
	ans := make([]float64, len(s.Records))
	for i := range s.Records {
		ans[i] = float64(s.Records[i].Coverage())
	}
	return ans
}

// Percents extracts per-record percent methylation, skipping records with no
// coverage.
func (s Sample) Percents() []float64 {
	ans := make([]float64, 0, len(s.Records))
	for i := range s.Records {
		if s.Records[i].Coverage() > 0 {
			ans = append(ans, s.Records[i].PercentMethylation())
		}
	}
	return ans
}
