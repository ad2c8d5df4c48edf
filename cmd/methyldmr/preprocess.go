package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/latchbio/methyldmr/methyl"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func preprocessUsage(preprocessFlags *flag.FlagSet) {
	fmt.Print(
		"preprocess - rewrite bedMethyl files as browser-ready 12 column beds\n" +
			"\tThe percent methylation column becomes the rounded methylated read count and the methylated fraction.\n\n" +
			"Usage:\n" +
			"  methyldmr preprocess [options] file1.bed [file2.bed ...]\n\n" +
			"Options:\n")
	preprocessFlags.PrintDefaults()
}

func runPreprocess(args []string) {
	var err error
	preprocessFlags := flag.NewFlagSet("preprocess", flag.ExitOnError)

	outDir := preprocessFlags.String("o", "processed_beds", "Output directory.")
	names := preprocessFlags.String("names", "", "Comma separated sample names, one per file. Defaults to the file names without extension.")

	err = preprocessFlags.Parse(args)
	exception.PanicOnErr(err)
	preprocessFlags.Usage = func() { preprocessUsage(preprocessFlags) }

	if preprocessFlags.NArg() < 1 {
		preprocessFlags.Usage()
		errExit("\nERROR: must provide at least one bedMethyl file")
	}

	files := preprocessFlags.Args()
	sampleNames := make([]string, len(files))
	if *names != "" {
		fields := strings.Split(*names, ",")
		if len(fields) != len(files) {
			errExit(fmt.Sprintf("\nERROR: %d names for %d files", len(fields), len(files)))
		}
		copy(sampleNames, fields)
	} else {
		for i := range files {
			base := filepath.Base(files[i])
			sampleNames[i] = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}

	err = os.MkdirAll(*outDir, 0755)
	if err != nil {
		errExit(fmt.Sprintf("\nERROR: cannot create output directory %s: %v", *outDir, err))
	}
	for i := range files {
		outfile := filepath.Join(*outDir, sampleNames[i]+".bed")
		err = methyl.ProcessBed(files[i], outfile)
		if err != nil {
			errExit("\nERROR: " + err.Error())
		}
		log.Infof("wrote %s", outfile)
	}
}
