package methyl

import "fmt"

// Format identifies the on-disk layout of a methylation call file.
type Format byte

const (
	// BismarkCoverage is the 6 column bismark2bedGraph coverage format:
	// chrom, start, end, percent methylation, count methylated, count
	// unmethylated. Coordinates are 1-based and closed, strand is absent.
	BismarkCoverage Format = iota
	// BismarkCytosineReport is the 7 column genome-wide cytosine report:
	// chrom, position, strand, count methylated, count unmethylated,
	// context, trinucleotide. Coordinates are 1-based single positions.
	BismarkCytosineReport
	// BedMethyl is the ENCODE bed9+2 format: the 9 standard BED columns
	// followed by coverage and percent methylation. Coordinates are
	// 0-based half-open and get shifted to 1-based closed when read.
	BedMethyl
)

// ParseFormat maps a user-facing format name to its Format value.
// Recognized names match the upstream aligner documentation.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "bismark_coverage":
		return BismarkCoverage, nil
	case "bismark_cytosine_report":
		return BismarkCytosineReport, nil
	case "bedmethyl":
		return BedMethyl, nil
	default:
		return 0, fmt.Errorf("unrecognized methylation file format: %q (must be bismark_coverage, bismark_cytosine_report, or bedmethyl)", s)
	}
}

func (f Format) String() string {
	switch f {
	case BismarkCoverage:
		return "bismark_coverage"
	case BismarkCytosineReport:
		return "bismark_cytosine_report"
	case BedMethyl:
		return "bedmethyl"
	default:
		return "unknown"
	}
}
