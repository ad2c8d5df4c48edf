package dmr

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"github.com/latchbio/methyldmr/diff"
	"github.com/latchbio/methyldmr/genome"
	"github.com/latchbio/methyldmr/methyl"
	"github.com/latchbio/methyldmr/plots"
	"github.com/latchbio/methyldmr/report"
	"github.com/latchbio/methyldmr/tile"
	"github.com/latchbio/methyldmr/unite"
	"github.com/pbenner/threadpool"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/chromInfo"
)

// Run executes the whole pipeline under one configuration: every sample is
// read, coverage filtered, and tiled, the tiles are united onto shared
// regions, the differential test runs per region, and the result tables,
// plots, and optional browser track land in the output directory.
func Run(cfg Config) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	// STEP 1: make sure inputs are readable and the output directory exists
	for _, f := range cfg.FilePaths {
		if _, err = os.Stat(f); err != nil {
			return fmt.Errorf("cannot read input file %s: %v", f, err)
		}
	}
	if err = os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %v", cfg.OutputDir, err)
	}

	// STEP 2: resolve chromosome sizes when a source is configured
	var sizes map[string]chromInfo.ChromInfo
	switch {
	case cfg.ChromSizes != "":
		if _, err = os.Stat(cfg.ChromSizes); err != nil {
			return fmt.Errorf("cannot read chromosome sizes %s: %v", cfg.ChromSizes, err)
		}
		sizes = genome.ReadSizes(cfg.ChromSizes)
	case cfg.UseUCSC:
		log.Infof("fetching %s chromosome sizes from UCSC", cfg.Assembly)
		sizes, err = genome.FetchSizes(cfg.Assembly)
		if err != nil {
			return err
		}
	}

	// STEP 3: read, filter, and tile every sample, one job per sample
	writeBeds := cfg.ProcessedBeds && cfg.Format == methyl.BedMethyl
	processedDir := filepath.Join(cfg.OutputDir, "processed_beds")
	if writeBeds {
		if err = os.MkdirAll(processedDir, 0755); err != nil {
			return fmt.Errorf("cannot create output directory %s: %v", processedDir, err)
		}
	}

	filtered := make([]methyl.Sample, len(cfg.SampleNames))
	samples := make([]unite.Sample, len(cfg.SampleNames))
	var raw [][]methyl.Record
	if cfg.Verbose >= 2 {
		raw = make([][]methyl.Record, len(cfg.SampleNames))
	}
	pool := threadpool.New(cfg.Threads, 100*cfg.Threads)
	g := pool.NewJobGroup()
	for i := range cfg.SampleNames {
		// thread safe copy of i
		j := i
		pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
			if erf() != nil {
				return nil
			}
			name := cfg.SampleNames[j]
			records, jobErr := methyl.Read(cfg.FilePaths[j], cfg.Format, cfg.Context)
			if jobErr != nil {
				return jobErr
			}
			kept := methyl.FilterCoverage(records, cfg.MinCoverage, cfg.HiPercentile)
			log.Infof("sample %s: %d records parsed, %d kept after coverage filtering", name, len(records), len(kept))
			if len(kept) == 0 {
				log.Warnf("sample %s: no records passed the coverage filter", name)
			}
			if raw != nil {
				raw[j] = records
			}
			filtered[j] = methyl.Sample{Name: name, Treatment: cfg.Treatments[j], Records: kept}
			tiles := tile.Windows(kept, cfg.TileSize, cfg.TileStep, cfg.TileMinCytosines, sizes)
			meanCov, meanPct := tileSummary(tiles)
			log.Debugf("sample %s: %d windows, mean coverage %.1f, mean methylation %.1f%%", name, len(tiles), meanCov, meanPct)
			samples[j] = unite.Sample{Name: name, Treatment: cfg.Treatments[j], Tiles: tiles}
			if writeBeds {
				return methyl.ProcessBed(cfg.FilePaths[j], filepath.Join(processedDir, name+".bed"))
			}
			return nil
		})
	}
	if err = pool.Wait(g); err != nil {
		return err
	}

	if cfg.Verbose >= 2 {
		for i := range filtered {
			printCoveragePreview(filtered[i].Name+" before filtering", raw[i])
			printCoveragePreview(filtered[i].Name+" after filtering", filtered[i].Records)
		}
	}

	// STEP 4: unite samples onto the regions covered everywhere
	matrix := unite.Unite(samples, cfg.Destrand)
	log.Infof("united %d regions across %d samples", matrix.Len(), len(samples))
	if matrix.Len() == 0 {
		log.Warn("no region is covered in every sample; result tables will be empty")
	}

	// STEP 5: differential methylation statistics
	regions, err := diff.Calculate(matrix, cfg.Test)
	if err != nil {
		return err
	}
	selected := diff.Select(regions, cfg.DiffCutoff, cfg.QCutoff)
	log.Infof("%d of %d regions pass |meth.diff| >= %v and q <= %v", len(selected), len(regions), cfg.DiffCutoff, cfg.QCutoff)
	if len(selected) == 0 {
		log.Warn("no differentially methylated regions found")
	}

	// STEP 6: result tables
	dmrFile := filepath.Join(cfg.OutputDir, "DMR_regions.csv")
	report.WriteDMRs(selected, dmrFile)
	report.WriteMatrix(matrix, filepath.Join(cfg.OutputDir, "merged_methylation_data.csv"))

	// STEP 7: diagnostic plots
	for i := range filtered {
		err = plots.MethylationStats(filtered[i], filepath.Join(cfg.OutputDir, fmt.Sprintf("methy_stats_plot_%d.png", i+1)))
		if err != nil {
			return err
		}
		err = plots.CoverageStats(filtered[i], filepath.Join(cfg.OutputDir, fmt.Sprintf("coverage_stats_plot_%d.png", i+1)))
		if err != nil {
			return err
		}
	}
	if matrix.Len() > 0 {
		err = plots.Correlation(matrix, filepath.Join(cfg.OutputDir, "correlation_plot.png"))
		if err != nil {
			return err
		}
	} else {
		log.Warn("skipping the correlation plot: no united regions")
	}

	// STEP 8: browser track
	if cfg.TrackName != "" {
		trackDir := filepath.Join(cfg.OutputDir, "IGV_tracks")
		if err = os.MkdirAll(trackDir, 0755); err != nil {
			return fmt.Errorf("cannot create output directory %s: %v", trackDir, err)
		}
		err = report.BuildTrack(dmrFile, filepath.Join(trackDir, "IGV_track.bed"), cfg.TrackName)
		if err != nil {
			return err
		}
	}
	return nil
}

// tileSummary averages window coverage and percent methylation over one
// sample's tiles. Windows without coverage stay out of the methylation mean.
func tileSummary(tiles []tile.Tile) (meanCov float64, meanPct float64) {
	var cov, pct float64
	covered := 0
	for _, t := range tiles {
		cov += float64(t.Coverage())
		if p := t.PercentMethylation(); !math.IsNaN(p) {
			pct += p
			covered++
		}
	}
	if len(tiles) > 0 {
		meanCov = cov / float64(len(tiles))
	}
	if covered > 0 {
		meanPct = pct / float64(covered)
	}
	return meanCov, meanPct
}

// printCoveragePreview sketches a coverage distribution in the terminal,
// one bar per doubling of coverage starting at 1x.
func printCoveragePreview(label string, records []methyl.Record) {
	if len(records) == 0 {
		return
	}
	bins := make([]float64, 10)
	for i := range records {
		cov := records[i].Coverage()
		var k int
		for cov > 1 && k < len(bins)-1 {
			cov >>= 1
			k++
		}
		bins[k]++
	}
	fmt.Printf("%s coverage, doubling bins from 1x:\n%s\n", label,
		asciigraph.Plot(bins, asciigraph.Height(5), asciigraph.Precision(0)))
}
