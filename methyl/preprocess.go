package methyl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// ProcessBed rewrites a bedMethyl file as a 12 column bed for downstream
// browsers: the nine standard BED fields and the coverage pass through
// unchanged, and the percent methylation column is replaced by the rounded
// methylated read count and the methylated fraction.
func ProcessBed(infile string, outfile string) error {
	in := fileio.EasyOpen(infile)
	defer cleanup(in)
	out := fileio.EasyCreate(outfile)
	defer cleanup(out)

	var lineNum int
	for line, done := fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		lineNum++
		if strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 11 {
			return ParseError{File: infile, Line: lineNum, Reason: fmt.Sprintf("expected at least 11 fields, found %d", len(fields))}
		}
		coverage, err := parseCount(fields[9])
		if err != nil {
			return ParseError{File: infile, Line: lineNum, Reason: fmt.Sprintf("bad coverage: %v", err)}
		}
		percent, err := parsePercent(fields[10])
		if err != nil {
			return ParseError{File: infile, Line: lineNum, Reason: err.Error()}
		}
		meth := int(math.Round(float64(coverage) * percent / 100))
		fraction := strconv.FormatFloat(percent/100, 'g', -1, 64)
		_, err = fmt.Fprintf(out, "%s\t%d\t%s\n", strings.Join(fields[:10], "\t"), meth, fraction)
		exception.PanicOnErr(err)
	}
	return nil
}
