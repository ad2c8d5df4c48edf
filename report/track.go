package report

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// BuildTrack converts a differential region table into a bed9 genome browser
// track. Each region's itemRgb color interpolates from red for the smallest
// p-value in the table to blue for the largest, the region's q-value becomes
// the feature name, and coordinates pass through from the table unchanged.
// An empty table still produces a loadable track with just the header line.
func BuildTrack(dmrFile string, outfile string, trackName string) error {
	lines := fileio.Read(dmrFile)
	out := fileio.EasyCreate(outfile)
	defer cleanup(out)
	_, err := fmt.Fprintf(out, "track name=%q description=\".\" itemRgb=\"On\"\n", trackName)
	exception.PanicOnErr(err)
	if len(lines) < 2 {
		return nil
	}

	df := dataframe.ReadCSV(strings.NewReader(strings.Join(lines, "\n")))
	if df.Err != nil {
		return fmt.Errorf("cannot read differential region table %s: %v", dmrFile, df.Err)
	}
	chroms := df.Col("chr").Records()
	starts := df.Col("start").Records()
	ends := df.Col("end").Records()
	qvalues := df.Col("qvalue").Float()
	pvalues := df.Col("pvalue").Float()

	minP := df.Col("pvalue").Min()
	maxP := df.Col("pvalue").Max()
	for i := 0; i < df.Nrow(); i++ {
		normalized := 1.0
		if minP != maxP {
			normalized = (pvalues[i] - minP) / (maxP - minP)
		}
		_, err = fmt.Fprintf(out, "%s\t%s\t%s\t%s\t0\t.\t%s\t%s\t%s\n",
			chroms[i], starts[i], ends[i], formatFloat(qvalues[i]), starts[i], ends[i], interpolateColor(normalized))
		exception.PanicOnErr(err)
	}
	return nil
}

// interpolateColor maps a normalized p-value onto a red to blue gradient,
// red for the most significant regions.
func interpolateColor(normalized float64) string {
	red := int((1 - normalized) * 255)
	blue := int(normalized * 255)
	return fmt.Sprintf("%d,0,%d", red, blue)
}
