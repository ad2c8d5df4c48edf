// Package report serializes pipeline results: the differential region table,
// the united percent methylation matrix, and a color-coded genome browser
// track.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/latchbio/methyldmr/diff"
	"github.com/latchbio/methyldmr/unite"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

const dmrHeader = "chr,start,end,strand,pvalue,qvalue,meth.diff"

// WriteDMRs writes the selected differential regions as a comma separated
// table with a fixed header. Zero regions still writes the header so an
// empty result is a readable file.
func WriteDMRs(regions []diff.Region, outfile string) {
	out := fileio.EasyCreate(outfile)
	defer cleanup(out)
	_, err := fmt.Fprintln(out, dmrHeader)
	exception.PanicOnErr(err)
	for i := range regions {
		r := regions[i]
		_, err = fmt.Fprintf(out, "%s,%d,%d,%s,%s,%s,%s\n",
			r.Chrom, r.Start, r.End, r.Strand,
			formatFloat(r.PValue), formatFloat(r.QValue), formatFloat(r.MethDiff))
		exception.PanicOnErr(err)
	}
}

// WriteMatrix writes the united matrix as a comma separated table: region
// coordinates followed by one percent methylation column per sample. Regions
// without coverage in a sample write NA.
func WriteMatrix(m unite.Matrix, outfile string) {
	out := fileio.EasyCreate(outfile)
	defer cleanup(out)
	_, err := fmt.Fprintln(out, strings.Join(append([]string{"chr", "start", "end", "strand"}, m.Names...), ","))
	exception.PanicOnErr(err)
	for i := 0; i < m.Len(); i++ {
		r := m.Regions[i]
		fields := make([]string, 0, 4+len(m.Names))
		fields = append(fields, r.Chrom, strconv.Itoa(r.Start), strconv.Itoa(r.End), r.Strand.String())
		for j := range m.Names {
			p := m.Percent(i, j)
			if math.IsNaN(p) {
				fields = append(fields, "NA")
			} else {
				fields = append(fields, fmt.Sprintf("%.2f", p))
			}
		}
		_, err = fmt.Fprintln(out, strings.Join(fields, ","))
		exception.PanicOnErr(err)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}
