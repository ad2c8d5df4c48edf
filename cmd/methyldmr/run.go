package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/latchbio/methyldmr/diff"
	"github.com/latchbio/methyldmr/dmr"
	"github.com/latchbio/methyldmr/methyl"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func pipelineUsage(runFlags *flag.FlagSet) {
	fmt.Print(
		"run - call differentially methylated regions between two treatment groups\n\n" +
			"Usage:\n" +
			"  methyldmr run [options] <sampleNames> <files> <outputDir> <minCoverage> <tileSize> <tileMinCytosines> <diffCutoff> <qCutoff> <treatments> <format> <assembly>\n\n" +
			"Positional arguments:\n" +
			"  sampleNames        comma separated sample names, one per file\n" +
			"  files              comma separated methylation call files\n" +
			"  outputDir          directory for result tables and plots\n" +
			"  minCoverage        drop records covered by fewer reads\n" +
			"  tileSize           window size in bases\n" +
			"  tileMinCytosines   drop windows with fewer covered cytosines\n" +
			"  diffCutoff         minimum absolute percent methylation difference (0-100)\n" +
			"  qCutoff            maximum q-value (0-1)\n" +
			"  treatments         comma separated group labels, 0 or 1, one per file\n" +
			"  format             bismark_coverage, bismark_cytosine_report, or bedmethyl\n" +
			"  assembly           UCSC genome assembly name, e.g. hg38\n\n" +
			"Options:\n")
	runFlags.PrintDefaults()
}

func runPipeline(args []string) {
	var err error
	runFlags := flag.NewFlagSet("run", flag.ExitOnError)

	destrand := runFlags.Bool("destrand", false, "Merge plus and minus strand windows before uniting samples.")
	test := runFlags.String("test", "auto", "Significance test: auto, fisher, or chisq. auto runs fisher with one sample per group and chisq otherwise.")
	context := runFlags.String("context", "CpG", "Cytosine context kept from genome-wide cytosine reports.")
	hiPerc := runFlags.Float64("hiPerc", 99.9, "Drop records above this percentile of the sample's coverage distribution.")
	step := runFlags.Int("step", 0, "Distance between window starts. Defaults to the window size.")
	chromSizes := runFlags.String("chromSizes", "", "Local chrom.sizes file for clipping windows at chromosome ends.")
	ucsc := runFlags.Bool("ucsc", false, "Fetch chromosome sizes for the assembly from the UCSC public server.")
	trackName := runFlags.String("track", "", "Also write IGV_tracks/IGV_track.bed with this track name.")
	processedBeds := runFlags.Bool("processedBeds", true, "For bedMethyl input, also write processed_beds/<sample>.bed.")
	threads := runFlags.Int("threads", 1, "Number of samples to process in parallel.")
	verbose := runFlags.Int("v", 0, "Verbosity: 1 logs debug detail, 2 also prints coverage histograms before and after filtering.")

	err = runFlags.Parse(args)
	exception.PanicOnErr(err)
	runFlags.Usage = func() { pipelineUsage(runFlags) }

	if runFlags.NArg() != 11 {
		runFlags.Usage()
		errExit(fmt.Sprintf("\nERROR: expected 11 positional arguments, got %d", runFlags.NArg()))
	}
	pos := runFlags.Args()

	minCoverage := parseIntArg(pos[3], "minCoverage")
	tileSize := parseIntArg(pos[4], "tileSize")
	tileMinCytosines := parseIntArg(pos[5], "tileMinCytosines")
	diffCutoff := parseFloatArg(pos[6], "diffCutoff")
	qCutoff := parseFloatArg(pos[7], "qCutoff")

	treatmentFields := strings.Split(pos[8], ",")
	treatments := make([]int, len(treatmentFields))
	for i := range treatmentFields {
		treatments[i] = parseIntArg(treatmentFields[i], "treatments")
	}

	format, err := methyl.ParseFormat(pos[9])
	if err != nil {
		errExit("\nERROR: " + err.Error())
	}
	testKind, err := diff.ParseTest(*test)
	if err != nil {
		errExit("\nERROR: " + err.Error())
	}

	if *verbose >= 1 {
		log.SetLevel(log.DebugLevel)
	}

	cfg := dmr.Config{
		SampleNames:      strings.Split(pos[0], ","),
		FilePaths:        strings.Split(pos[1], ","),
		Treatments:       treatments,
		OutputDir:        pos[2],
		Format:           format,
		Context:          *context,
		MinCoverage:      minCoverage,
		HiPercentile:     *hiPerc,
		TileSize:         tileSize,
		TileStep:         *step,
		TileMinCytosines: tileMinCytosines,
		Destrand:         *destrand,
		Test:             testKind,
		DiffCutoff:       diffCutoff,
		QCutoff:          qCutoff,
		Assembly:         pos[10],
		ChromSizes:       *chromSizes,
		UseUCSC:          *ucsc,
		TrackName:        *trackName,
		ProcessedBeds:    *processedBeds,
		Threads:          *threads,
		Verbose:          *verbose,
	}
	err = dmr.Run(cfg)
	if err != nil {
		errExit("\nERROR: " + err.Error())
	}
}

func parseIntArg(s string, name string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		errExit(fmt.Sprintf("\nERROR: %s must be an integer, got %q", name, s))
	}
	return n
}

func parseFloatArg(s string, name string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		errExit(fmt.Sprintf("\nERROR: %s must be a number, got %q", name, s))
	}
	return f
}
