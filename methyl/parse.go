package methyl

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// ParseError reports a malformed row in a methylation call file. The run
// stops at the first malformed row rather than skipping it. Line counts the
// rows the reader delivers: track and browser headers count, comment rows
// beginning with # are consumed by the reader and do not.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.File, e.Line, e.Reason)
}

// Read parses a methylation call file in the given format into records with
// 1-based closed coordinates, sorted by position. For the genome-wide
// cytosine report format, context selects which cytosine context to keep
// (usually "CpG"); an empty context keeps every row. Other formats ignore it.
func Read(filename string, format Format, context string) ([]Record, error) {
	var ans []Record
	var r Record
	var keep bool
	var err error
	var lineNum int
	file := fileio.EasyOpen(filename)
	defer cleanup(file)
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		if strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		switch format {
		case BismarkCoverage:
			r, err = parseCoverageLine(line)
			keep = true
		case BismarkCytosineReport:
			r, keep, err = parseCytosineReportLine(line, context)
		case BedMethyl:
			r, err = parseBedMethylLine(line)
			keep = true
		default:
			return nil, fmt.Errorf("unrecognized methylation file format: %v", format)
		}
		if err != nil {
			return nil, ParseError{File: filename, Line: lineNum, Reason: err.Error()}
		}
		if keep {
			ans = append(ans, r)
		}
	}
	sortRecords(ans)
	return ans, nil
}

// parseCoverageLine reads one row of the 6 column bismark coverage format.
// Coordinates are already 1-based closed.
func parseCoverageLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 6 {
		return Record{}, fmt.Errorf("expected 6 fields, found %d", len(fields))
	}
	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("non-numeric start position %q", fields[1])
	}
	if start < 1 {
		return Record{}, fmt.Errorf("start position %d is not 1-based", start)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("non-numeric end position %q", fields[2])
	}
	if end < start {
		return Record{}, fmt.Errorf("interval end %d before start %d", end, start)
	}
	_, err = strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("non-numeric percent methylation %q", fields[3])
	}
	meth, err := parseCount(fields[4])
	if err != nil {
		return Record{}, fmt.Errorf("bad methylated count: %v", err)
	}
	unmeth, err := parseCount(fields[5])
	if err != nil {
		return Record{}, fmt.Errorf("bad unmethylated count: %v", err)
	}
	return Record{Chrom: fields[0], Start: start, End: end, Strand: NoStrand, Methylated: meth, Unmethylated: unmeth}, nil
}

// parseCytosineReportLine reads one row of the 7 column genome-wide cytosine
// report. keep is false when the row's context does not match the requested
// context. The row is validated either way.
func parseCytosineReportLine(line string, context string) (Record, bool, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 7 {
		return Record{}, false, fmt.Errorf("expected 7 fields, found %d", len(fields))
	}
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, false, fmt.Errorf("non-numeric position %q", fields[1])
	}
	if pos < 1 {
		return Record{}, false, fmt.Errorf("position %d is not 1-based", pos)
	}
	strand, err := parseStrand(fields[2])
	if err != nil {
		return Record{}, false, err
	}
	meth, err := parseCount(fields[3])
	if err != nil {
		return Record{}, false, fmt.Errorf("bad methylated count: %v", err)
	}
	unmeth, err := parseCount(fields[4])
	if err != nil {
		return Record{}, false, fmt.Errorf("bad unmethylated count: %v", err)
	}
	if context != "" && fields[5] != context {
		return Record{}, false, nil
	}
	return Record{Chrom: fields[0], Start: pos, End: pos, Strand: strand, Methylated: meth, Unmethylated: unmeth}, true, nil
}

// parseBedMethylLine reads one row of the bed9+2 bedMethyl format. The
// 0-based half-open bed interval becomes 1-based closed, and methylated and
// unmethylated counts are recovered from coverage and percent methylation.
func parseBedMethylLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 11 {
		return Record{}, fmt.Errorf("expected at least 11 fields, found %d", len(fields))
	}
	chromStart, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("non-numeric start position %q", fields[1])
	}
	if chromStart < 0 {
		return Record{}, fmt.Errorf("negative start position %d", chromStart)
	}
	chromEnd, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("non-numeric end position %q", fields[2])
	}
	if chromEnd <= chromStart {
		return Record{}, fmt.Errorf("interval end %d not after start %d", chromEnd, chromStart)
	}
	strand, err := parseStrand(fields[5])
	if err != nil {
		return Record{}, err
	}
	coverage, err := parseCount(fields[9])
	if err != nil {
		return Record{}, fmt.Errorf("bad coverage: %v", err)
	}
	percent, err := parsePercent(fields[10])
	if err != nil {
		return Record{}, err
	}
	meth := int(math.Round(float64(coverage) * percent / 100))
	return Record{Chrom: fields[0], Start: chromStart + 1, End: chromEnd, Strand: strand, Methylated: meth, Unmethylated: coverage - meth}, nil
}

func parseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case ".":
		return NoStrand, nil
	default:
		return NoStrand, fmt.Errorf("invalid strand %q", s)
	}
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("non-numeric count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// parsePercent reads a percent methylation column. Missing values written as
// "." or "NA" count as zero, matching how upstream callers fill absent
// percentages.
func parsePercent(s string) (float64, error) {
	switch s {
	case "", ".", "NA", "nan", "NaN":
		return 0, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric percent methylation %q", s)
	}
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("percent methylation %v outside 0-100", p)
	}
	return p, nil
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Chrom != records[j].Chrom {
			return records[i].Chrom < records[j].Chrom
		}
		if records[i].Start != records[j].Start {
			return records[i].Start < records[j].Start
		}
		if records[i].End != records[j].End {
			return records[i].End < records[j].End
		}
		return records[i].Strand < records[j].Strand
	})
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}
