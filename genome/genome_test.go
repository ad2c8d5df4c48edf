package genome

import "testing"

func TestReadSizes(t *testing.T) {
	sizes := ReadSizes("testdata/toy.chrom.sizes")
	if len(sizes) != 3 {
		t.Fatal("problem reading chrom sizes, wrong chromosome count:", len(sizes))
	}
	if sizes["chrM"].Size != 16569 {
		t.Error("problem reading chrom sizes:", sizes["chrM"])
	}
	if sizes["chr1"].Name != "chr1" {
		t.Error("problem reading chrom sizes:", sizes["chr1"])
	}
}
