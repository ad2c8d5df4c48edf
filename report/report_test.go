package report

import (
	"os"
	"strings"
	"testing"

	"github.com/latchbio/methyldmr/diff"
	"github.com/latchbio/methyldmr/methyl"
	"github.com/latchbio/methyldmr/unite"
	"github.com/vertgenlab/gonomics/fileio"
)

func TestWriteDMRs(t *testing.T) {
	outfile := "testdata/dmr.out.csv"
	regions := []diff.Region{
		{Chrom: "chr1", Start: 1001, End: 2000, Strand: methyl.NoStrand, PValue: 0.0025, QValue: 0.01, MethDiff: -60},
		{Chrom: "chr2", Start: 1, End: 1000, Strand: methyl.Plus, PValue: 0.002, QValue: 0.05, MethDiff: 33.5},
	}
	WriteDMRs(regions, outfile)
	lines := fileio.Read(outfile)
	if len(lines) != 3 {
		t.Fatal("problem with region table line count:", len(lines))
	}
	if lines[0] != "chr,start,end,strand,pvalue,qvalue,meth.diff" {
		t.Error("problem with region table header:", lines[0])
	}
	if lines[1] != "chr1,1001,2000,.,0.0025,0.01,-60" {
		t.Error("problem with region table row:", lines[1])
	}
	if lines[2] != "chr2,1,1000,+,0.002,0.05,33.5" {
		t.Error("problem with region table row:", lines[2])
	}
	err := os.Remove(outfile)
	if err != nil {
		t.Error(err)
	}
}

func TestWriteDMRsEmpty(t *testing.T) {
	outfile := "testdata/dmr.empty.out.csv"
	WriteDMRs(nil, outfile)
	lines := fileio.Read(outfile)
	if len(lines) != 1 {
		t.Error("an empty result should still write the header:", lines)
	}
	err := os.Remove(outfile)
	if err != nil {
		t.Error(err)
	}
}

func TestWriteMatrix(t *testing.T) {
	outfile := "testdata/matrix.out.csv"
	m := unite.Matrix{
		Names:      []string{"control", "treated"},
		Treatments: []int{0, 1},
		Regions:    []unite.Region{{Chrom: "chr1", Start: 1, End: 1000, Strand: methyl.NoStrand}},
		Counts:     [][]unite.Counts{{{Methylated: 8, Unmethylated: 2}, {}}},
	}
	WriteMatrix(m, outfile)
	lines := fileio.Read(outfile)
	if len(lines) != 2 {
		t.Fatal("problem with matrix line count:", len(lines))
	}
	if lines[0] != "chr,start,end,strand,control,treated" {
		t.Error("problem with matrix header:", lines[0])
	}
	if lines[1] != "chr1,1,1000,.,80.00,NA" {
		t.Error("problem with matrix row:", lines[1])
	}
	err := os.Remove(outfile)
	if err != nil {
		t.Error(err)
	}
}

func TestBuildTrack(t *testing.T) {
	outfile := "testdata/track.out.bed"
	err := BuildTrack("testdata/dmr.csv", outfile, "exp1")
	if err != nil {
		t.Fatal(err)
	}
	lines := fileio.Read(outfile)
	if len(lines) != 3 {
		t.Fatal("problem with track line count:", len(lines))
	}
	if lines[0] != `track name="exp1" description="." itemRgb="On"` {
		t.Error("problem with track header:", lines[0])
	}
	// smallest p-value paints red, largest blue
	if lines[1] != "chr1\t1001\t2000\t0.01\t0\t.\t1001\t2000\t255,0,0" {
		t.Error("problem with track row:", lines[1])
	}
	if lines[2] != "chr2\t1\t1000\t0.25\t0\t.\t1\t1000\t0,0,255" {
		t.Error("problem with track row:", lines[2])
	}
	err = os.Remove(outfile)
	if err != nil {
		t.Error(err)
	}
}

func TestBuildTrackUniformPValues(t *testing.T) {
	dmrFile := "testdata/track.uniform.in.csv"
	outfile := "testdata/track.uniform.out.bed"
	regions := []diff.Region{
		{Chrom: "chr1", Start: 1, End: 1000, Strand: methyl.NoStrand, PValue: 0.02, QValue: 0.02, MethDiff: 40},
		{Chrom: "chr1", Start: 2001, End: 3000, Strand: methyl.NoStrand, PValue: 0.02, QValue: 0.02, MethDiff: -40},
	}
	WriteDMRs(regions, dmrFile)
	err := BuildTrack(dmrFile, outfile, "flat")
	if err != nil {
		t.Fatal(err)
	}
	lines := fileio.Read(outfile)
	// equal p-values all normalize to blue rather than dividing by zero
	for _, line := range lines[1:] {
		if !strings.HasSuffix(line, "0,0,255") {
			t.Error("uniform p-values should paint blue:", line)
		}
	}
	for _, f := range []string{dmrFile, outfile} {
		err = os.Remove(f)
		if err != nil {
			t.Error(err)
		}
	}
}

func TestBuildTrackEmpty(t *testing.T) {
	dmrFile := "testdata/track.empty.in.csv"
	outfile := "testdata/track.empty.out.bed"
	WriteDMRs(nil, dmrFile)
	err := BuildTrack(dmrFile, outfile, "empty")
	if err != nil {
		t.Fatal(err)
	}
	lines := fileio.Read(outfile)
	if len(lines) != 1 {
		t.Error("an empty table should still produce the track header:", lines)
	}
	for _, f := range []string{dmrFile, outfile} {
		err = os.Remove(f)
		if err != nil {
			t.Error(err)
		}
	}
}
