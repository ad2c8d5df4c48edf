package main

import (
	"flag"
	"fmt"

	"github.com/latchbio/methyldmr/report"
	"github.com/vertgenlab/gonomics/exception"
)

func trackUsage(trackFlags *flag.FlagSet) {
	fmt.Print(
		"track - build an IGV color track from a differential region table\n" +
			"\tRegions are colored red to blue from the smallest p-value to the largest.\n\n" +
			"Usage:\n" +
			"  methyldmr track [options] DMR_regions.csv\n\n" +
			"Options:\n")
	trackFlags.PrintDefaults()
}

func runTrack(args []string) {
	var err error
	trackFlags := flag.NewFlagSet("track", flag.ExitOnError)

	name := trackFlags.String("name", "DMRs", "Track name shown in the browser.")
	output := trackFlags.String("o", "IGV_track.bed", "Output track file.")

	err = trackFlags.Parse(args)
	exception.PanicOnErr(err)
	trackFlags.Usage = func() { trackUsage(trackFlags) }

	if trackFlags.NArg() != 1 {
		trackFlags.Usage()
		errExit("\nERROR: must provide a differential region table")
	}

	err = report.BuildTrack(trackFlags.Arg(0), *output, *name)
	if err != nil {
		errExit("\nERROR: " + err.Error())
	}
}
