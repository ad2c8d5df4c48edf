// Package tile aggregates per-cytosine methylation records into fixed-width
// genomic windows, one tile per window and strand per sample.
package tile

import (
	"math"

	"github.com/latchbio/methyldmr/methyl"
	"github.com/vertgenlab/gonomics/chromInfo"
)

// Tile is one genomic window's methylation aggregate on one strand: summed
// methylated and unmethylated counts plus the number of contributing
// cytosines. Coordinates are 1-based closed. Tiles are never mutated once
// built.
type Tile struct {
	Chrom        string
	Start        int
	End          int
	Strand       methyl.Strand
	Methylated   int
	Unmethylated int
	Cytosines    int
}

// Coverage is the total read support summed over the tile's cytosines.
func (t Tile) Coverage() int {
	return t.Methylated + t.Unmethylated
}

// PercentMethylation returns the tile's methylated fraction as a 0-100
// percentage, or NaN when the tile has no coverage.
func (t Tile) PercentMethylation() float64 {
	cov := t.Coverage()
	if cov == 0 {
		return math.NaN()
	}
	return 100 * float64(t.Methylated) / float64(cov)
}

// Windows aggregates sorted records into fixed windows of the given size laid
// out from coordinate 1 every step bases, so window boundaries line up across
// samples no matter where each sample's coverage begins. Window k covers
// [1+k*step, k*step+size] and a record belongs to the window computed from
// its start coordinate, so a record exactly on a boundary goes to the window
// starting there. Windows on different strands aggregate separately. Windows
// with fewer than minCytosines contributing records are dropped. When sizes
// has an entry for a chromosome, the terminal window is clipped to the
// chromosome end.
func Windows(records []methyl.Record, size int, step int, minCytosines int, sizes map[string]chromInfo.ChromInfo) []Tile {
	var ans []Tile
	var plus, minus, none Tile
	curChrom := ""
	curWin := -1

	flush := func() {
		for _, t := range []Tile{plus, minus, none} {
			if t.Cytosines == 0 || t.Cytosines < minCytosines {
				continue
			}
			if ci, ok := sizes[t.Chrom]; ok && t.End > ci.Size {
				t.End = ci.Size
			}
			ans = append(ans, t)
		}
		plus, minus, none = Tile{}, Tile{}, Tile{}
	}

	for i := range records {
		r := records[i]
		k := (r.Start - 1) / step
		winStart := 1 + k*step
		winEnd := k*step + size
		if r.Start > winEnd {
			// step larger than size leaves gaps between windows
			continue
		}
		if r.Chrom != curChrom || k != curWin {
			flush()
			curChrom = r.Chrom
			curWin = k
		}
		var acc *Tile
		switch r.Strand {
		case methyl.Plus:
			acc = &plus
		case methyl.Minus:
			acc = &minus
		default:
			acc = &none
		}
		if acc.Cytosines == 0 {
			acc.Chrom = r.Chrom
			acc.Start = winStart
			acc.End = winEnd
			acc.Strand = r.Strand
		}
		acc.Methylated += r.Methylated
		acc.Unmethylated += r.Unmethylated
		acc.Cytosines++
	}
	flush()
	return ans
}
