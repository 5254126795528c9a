package quant

import (
	"strings"
	"testing"
)

const batchTSV = "Batch\tAmplicon\tUnmodified\tModified\tDiscarded\n" +
	"HEK3PE2_P10_R13_Rep1\tReference\t100\t20\t5\n" +
	"HEK3PE2_P10_R13_Rep1\tPrime-edited\t40\t10\t0\n" +
	"HEK3PE2_P10_R13_Rep1\tScaffold-incorporated\t0\t25\t0\n" +
	"HEK3PE2_P13_R10_Rep1\tReference\t7\t0\t0\n" +
	"HEK3PE2_P13_R10_Rep1\tPrime-edited\t3\t0\t0\n" +
	"HEK3PE2_P13_R10_Rep1\tScaffold-incorporated\t0\t0\t0\n"

func TestReadGroupsRowsPerBatch(t *testing.T) {
	recs, err := Read(strings.NewReader(batchTSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	first := recs[0]
	if first.Sample != "HEK3PE2_P10_R13_Rep1" {
		t.Errorf("first sample = %q (input order must be preserved)", first.Sample)
	}
	if first.Total != 200 {
		t.Errorf("total = %d, want 200", first.Total)
	}
	if first.Sum() != first.Total {
		t.Errorf("Sum() = %d, Total = %d; reader builds totals from counts", first.Sum(), first.Total)
	}
	if len(first.Counts) != 9 {
		t.Fatalf("got %d counts, want 9 (3 amplicons x 3 columns)", len(first.Counts))
	}
	if first.Counts[3].Label != "Prime-edited:Unmodified" || first.Counts[3].Reads != 40 {
		t.Errorf("counts[3] = %+v, want Prime-edited:Unmodified=40", first.Counts[3])
	}
}

func TestReadRejectsMissingColumn(t *testing.T) {
	in := "Batch\tAmplicon\tUnmodified\tModified\nx\tReference\t1\t2\n"
	if _, err := Read(strings.NewReader(in)); err == nil {
		t.Fatal("want error for missing Discarded column")
	}
}

func TestReadRejectsNegativeAndMalformedCounts(t *testing.T) {
	for name, in := range map[string]string{
		"negative":  "Batch\tAmplicon\tUnmodified\tModified\tDiscarded\nx\tReference\t-1\t0\t0\n",
		"malformed": "Batch\tAmplicon\tUnmodified\tModified\tDiscarded\nx\tReference\tten\t0\t0\n",
	} {
		if _, err := Read(strings.NewReader(in)); err == nil {
			t.Errorf("%s count: want error, got nil", name)
		}
	}
}

func TestReadEmptyFile(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatal("want error for empty input")
	}
}
