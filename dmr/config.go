// Package dmr wires the pipeline stages together: it reads, filters, and
// tiles every sample, unites them, runs the differential test, and writes
// the result tables, plots, and browser track.
package dmr

import (
	"fmt"

	"github.com/latchbio/methyldmr/diff"
	"github.com/latchbio/methyldmr/methyl"
)

// Config holds every knob of a run. It is filled once by the caller,
// validated up front, and passed read-only through the stages; no stage
// keeps state anywhere else.
type Config struct {
	SampleNames []string
	FilePaths   []string
	Treatments  []int // one 0 or 1 per sample
	OutputDir   string

	Format  methyl.Format
	Context string // cytosine context kept from genome-wide reports

	MinCoverage  int
	HiPercentile float64

	TileSize         int
	TileStep         int
	TileMinCytosines int

	Destrand bool
	Test     diff.Test

	DiffCutoff float64
	QCutoff    float64

	// Assembly names the UCSC database for the samples' genome. With
	// UseUCSC set, chromosome sizes come from the public UCSC server;
	// with ChromSizes set, from a local chrom.sizes file. Neither set
	// leaves terminal windows unclipped.
	Assembly   string
	ChromSizes string
	UseUCSC    bool

	// TrackName, when set, also renders the results as a browser track.
	TrackName string

	// ProcessedBeds writes browser-ready per-sample beds alongside the
	// results. Only meaningful for bedMethyl input.
	ProcessedBeds bool

	Threads int

	// Verbose raises log detail: 1 logs debug detail, 2 also prints
	// per-sample coverage histograms before and after filtering.
	Verbose int
}

// ConfigError reports invalid run configuration, caught before any file is
// opened.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// Validate checks the cross-field consistency of a Config and fills the
// step size when unset.
func (cfg *Config) Validate() error {
	if len(cfg.SampleNames) == 0 {
		return ConfigError{Reason: "at least one sample is required"}
	}
	if len(cfg.FilePaths) != len(cfg.SampleNames) {
		return ConfigError{Reason: fmt.Sprintf("%d sample names but %d files", len(cfg.SampleNames), len(cfg.FilePaths))}
	}
	if len(cfg.Treatments) != len(cfg.SampleNames) {
		return ConfigError{Reason: fmt.Sprintf("%d sample names but %d treatment labels", len(cfg.SampleNames), len(cfg.Treatments))}
	}
	seen := make(map[string]bool)
	for _, name := range cfg.SampleNames {
		if seen[name] {
			return ConfigError{Reason: "duplicate sample name: " + name}
		}
		seen[name] = true
	}
	var zeros, ones int
	for i, t := range cfg.Treatments {
		switch t {
		case 0:
			zeros++
		case 1:
			ones++
		default:
			return ConfigError{Reason: fmt.Sprintf("sample %s has treatment group %d: only groups 0 and 1 are supported", cfg.SampleNames[i], t)}
		}
	}
	if zeros == 0 || ones == 0 {
		return ConfigError{Reason: "both treatment groups need at least one sample"}
	}
	if cfg.OutputDir == "" {
		return ConfigError{Reason: "output directory is required"}
	}
	if cfg.MinCoverage < 0 {
		return ConfigError{Reason: fmt.Sprintf("minimum coverage must not be negative, got %d", cfg.MinCoverage)}
	}
	if cfg.HiPercentile <= 0 || cfg.HiPercentile > 100 {
		return ConfigError{Reason: fmt.Sprintf("coverage percentile must be in (0,100], got %v", cfg.HiPercentile)}
	}
	if cfg.TileSize < 1 {
		return ConfigError{Reason: fmt.Sprintf("tile size must be positive, got %d", cfg.TileSize)}
	}
	if cfg.TileStep == 0 {
		cfg.TileStep = cfg.TileSize
	}
	if cfg.TileStep < 1 {
		return ConfigError{Reason: fmt.Sprintf("tile step must be positive, got %d", cfg.TileStep)}
	}
	if cfg.TileMinCytosines < 0 {
		return ConfigError{Reason: fmt.Sprintf("minimum cytosines per tile must not be negative, got %d", cfg.TileMinCytosines)}
	}
	if cfg.DiffCutoff < 0 || cfg.DiffCutoff > 100 {
		return ConfigError{Reason: fmt.Sprintf("methylation difference cutoff must be in [0,100], got %v", cfg.DiffCutoff)}
	}
	if cfg.QCutoff < 0 || cfg.QCutoff > 1 {
		return ConfigError{Reason: fmt.Sprintf("q-value cutoff must be in [0,1], got %v", cfg.QCutoff)}
	}
	if cfg.ChromSizes != "" && cfg.UseUCSC {
		return ConfigError{Reason: "chromosome sizes can come from a local file or from UCSC, not both"}
	}
	if cfg.UseUCSC && cfg.Assembly == "" {
		return ConfigError{Reason: "fetching chromosome sizes from UCSC requires an assembly name"}
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return nil
}
