// Package unite intersects per-sample tile sets onto the common set of
// regions covered in every sample, producing the count matrix the
// differential stage runs on.
package unite

import (
	"math"
	"sort"

	"github.com/latchbio/methyldmr/methyl"
	"github.com/latchbio/methyldmr/tile"
)

// Region is a united genomic window, the coordinate key shared by all
// samples after intersection.
type Region struct {
	Chrom  string
	Start  int
	End    int
	Strand methyl.Strand
}

// Counts is one sample's methylation evidence within one region.
type Counts struct {
	Methylated   int
	Unmethylated int
}

// Coverage is the total read support for the region in this sample.
func (c Counts) Coverage() int {
	return c.Methylated + c.Unmethylated
}

// PercentMethylation returns the methylated fraction as a 0-100 percentage,
// or NaN when the sample has no coverage in the region.
func (c Counts) PercentMethylation() float64 {
	cov := c.Coverage()
	if cov == 0 {
		return math.NaN()
	}
	return 100 * float64(c.Methylated) / float64(cov)
}

// Sample is one sample's tiled methylation data entering the unite step.
type Sample struct {
	Name      string
	Treatment int
	Tiles     []tile.Tile
}

// Matrix is the united dataset: every region covered in all samples, with one
// Counts entry per region per sample. Counts is indexed [region][sample],
// with samples in the same order as Names and Treatments.
type Matrix struct {
	Names      []string
	Treatments []int
	Regions    []Region
	Counts     [][]Counts
}

// Len returns the number of united regions.
func (m Matrix) Len() int {
	return len(m.Regions)
}

// Percent returns the percent methylation of sample j within region i.
func (m Matrix) Percent(i int, j int) float64 {
	return m.Counts[i][j].PercentMethylation()
}

// PercentRow returns the per-sample percent methylation vector of region i.
func (m Matrix) PercentRow(i int) []float64 {
	ans := make([]float64, len(m.Counts[i]))
	for j := range m.Counts[i] {
		ans[j] = m.Counts[i][j].PercentMethylation()
	}
	return ans
}

// Unite intersects the samples' tile sets: a region survives only when every
// sample has a tile there. This is a strict inner join, regions covered in
// just a subset of samples are dropped entirely. With destrand set, plus and
// minus tiles sharing coordinates merge into one unstranded region, counts
// summed per sample, before the intersection. Regions come out sorted by
// (chrom, start, end, strand) regardless of input order.
func Unite(samples []Sample, destrand bool) Matrix {
	m := Matrix{
		Names:      make([]string, len(samples)),
		Treatments: make([]int, len(samples)),
	}
	for i := range samples {
		m.Names[i] = samples[i].Name
		m.Treatments[i] = samples[i].Treatment
	}
	if len(samples) == 0 {
		return m
	}

	maps := make([]map[Region]Counts, len(samples))
	for i := range samples {
		maps[i] = collapse(samples[i].Tiles, destrand)
	}

	candidates := make([]Region, 0, len(maps[0]))
	for r := range maps[0] {
		candidates = append(candidates, r)
	}
	sortRegions(candidates)

	for _, r := range candidates {
		counts := make([]Counts, len(samples))
		shared := true
		for i := range maps {
			c, ok := maps[i][r]
			if !ok {
				shared = false
				break
			}
			counts[i] = c
		}
		if shared {
			m.Regions = append(m.Regions, r)
			m.Counts = append(m.Counts, counts)
		}
	}
	return m
}

func collapse(tiles []tile.Tile, destrand bool) map[Region]Counts {
	ans := make(map[Region]Counts, len(tiles))
	for _, t := range tiles {
		key := Region{Chrom: t.Chrom, Start: t.Start, End: t.End, Strand: t.Strand}
		if destrand {
			key.Strand = methyl.NoStrand
		}
		c := ans[key]
		c.Methylated += t.Methylated
		c.Unmethylated += t.Unmethylated
		ans[key] = c
	}
	return ans
}

func sortRegions(regions []Region) {
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Chrom != regions[j].Chrom {
			return regions[i].Chrom < regions[j].Chrom
		}
		if regions[i].Start != regions[j].Start {
			return regions[i].Start < regions[j].Start
		}
		if regions[i].End != regions[j].End {
			return regions[i].End < regions[j].End
		}
		return regions[i].Strand < regions[j].Strand
	})
}
