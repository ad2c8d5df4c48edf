// Package plots renders the diagnostic figures that accompany a run: per
// sample methylation and coverage histograms and a sample correlation
// heatmap.
package plots

import (
	"image/color"
	"math"

	"github.com/latchbio/methyldmr/methyl"
	"github.com/latchbio/methyldmr/unite"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// 800x600 pixels at the png writer's default 96 dpi
const (
	plotWidth  = 800 * vg.Inch / 96
	plotHeight = 600 * vg.Inch / 96
)

const histogramBins = 20

// MethylationStats saves a histogram of the sample's per-record percent
// methylation. A sample with no covered records saves empty axes rather than
// failing the run.
func MethylationStats(s methyl.Sample, outfile string) error {
	p := plot.New()
	p.Title.Text = s.Name + " methylation"
	p.X.Label.Text = "% methylation per base"
	p.Y.Label.Text = "count"
	p.X.Min, p.X.Max = 0, 100
	values := s.Percents()
	if len(values) > 0 {
		hist, err := plotter.NewHist(plotter.Values(values), histogramBins)
		if err != nil {
			return err
		}
		p.Add(hist)
	}
	return p.Save(plotWidth, plotHeight, outfile)
}

// CoverageStats saves a histogram of the sample's read coverage on a log10
// scale.
func CoverageStats(s methyl.Sample, outfile string) error {
	p := plot.New()
	p.Title.Text = s.Name + " coverage"
	p.X.Label.Text = "log10 coverage per base"
	p.Y.Label.Text = "count"
	var values plotter.Values
	for _, cov := range s.Coverages() {
		if cov > 0 {
			values = append(values, math.Log10(cov))
		}
	}
	if len(values) > 0 {
		hist, err := plotter.NewHist(values, histogramBins)
		if err != nil {
			return err
		}
		p.Add(hist)
	}
	return p.Save(plotWidth, plotHeight, outfile)
}

// Correlation saves a heatmap of pairwise Pearson correlations of percent
// methylation over the united regions.
func Correlation(m unite.Matrix, outfile string) error {
	grid := correlationGrid{names: m.Names, corr: correlations(m)}
	hm := plotter.NewHeatMap(grid, corPalette())

	p := plot.New()
	p.Add(hm)
	p.Title.Text = "sample correlation"
	p.X.Tick.Marker = sampleTicks(m.Names)
	p.Y.Tick.Marker = sampleTicks(m.Names)
	return p.Save(plotWidth, plotHeight, outfile)
}

// correlations builds the pairwise Pearson matrix, using for each pair only
// the regions where both samples have coverage. Pairs without enough shared
// data plot as 0.
func correlations(m unite.Matrix) [][]float64 {
	n := len(m.Names)
	ans := make([][]float64, n)
	for j := range ans {
		ans[j] = make([]float64, n)
		ans[j][j] = 1
	}
	rows := make([][]float64, m.Len())
	for i := range rows {
		rows[i] = m.PercentRow(i)
	}
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			var x, y []float64
			for _, row := range rows {
				if !math.IsNaN(row[j]) && !math.IsNaN(row[k]) {
					x = append(x, row[j])
					y = append(y, row[k])
				}
			}
			r := stat.Correlation(x, y, nil)
			if math.IsNaN(r) {
				r = 0
			}
			ans[j][k] = r
			ans[k][j] = r
		}
	}
	return ans
}

type correlationGrid struct {
	names []string
	corr  [][]float64
}

func (g correlationGrid) Dims() (c, r int) {
	return len(g.corr), len(g.corr)
}

func (g correlationGrid) Z(c, r int) float64 {
	return g.corr[c][r]
}

func (g correlationGrid) X(c int) float64 {
	return float64(c)
}

func (g correlationGrid) Y(r int) float64 {
	return float64(r)
}

func (g correlationGrid) Min() float64 {
	return -1
}

func (g correlationGrid) Max() float64 {
	return 1
}

type sampleTicks []string

func (s sampleTicks) Ticks(min, max float64) []plot.Tick {
	var ans []plot.Tick
	for i := range s {
		if float64(i) >= min && float64(i) <= max {
			ans = append(ans, plot.Tick{Value: float64(i), Label: s[i]})
		}
	}
	return ans
}

type colors []color.Color

func (c colors) Colors() []color.Color {
	return c
}

// corPalette runs blue through white to red, so anticorrelated pairs show
// blue and correlated pairs red.
func corPalette() palette.Palette {
	var ans colors
	for i := 255; i >= 0; i-- {
		ans = append(ans, color.RGBA{255 - uint8(i), 255 - uint8(i), 255, 255})
	}
	for i := 0; i < 256; i++ {
		ans = append(ans, color.RGBA{255, 255 - uint8(i), 255 - uint8(i), 255})
	}
	return ans
}
