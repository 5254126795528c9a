package runsheet

import (
	"strings"
	"testing"

	"peflow-core/design"
	"peflow-core/report"
)

const sampleTSV = "name\tfastq_r1\tfastq_r2\n" +
	"HEK3_P10_R13_Rep1\ta_R1.fastq.gz\ta_R2.fastq.gz\n" +
	"HEK3_P99_R99_Rep1\tb_R1.fastq.gz\tb_R2.fastq.gz\n" +
	"noinfo\tc_R1.fastq.gz\tc_R2.fastq.gz\n"

func TestReadSamples(t *testing.T) {
	samples, err := ReadSamples(strings.NewReader(sampleTSV))
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	if samples[0].Name != "HEK3_P10_R13_Rep1" || samples[0].R2 != "a_R2.fastq.gz" {
		t.Errorf("samples[0] = %+v", samples[0])
	}
}

func TestBuildJoinsAndReports(t *testing.T) {
	samples, err := ReadSamples(strings.NewReader(sampleTSV))
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	find := func(k design.Key) (string, bool) {
		if k == (design.Key{PBS: 10, RTT: 13}) {
			return "gtgcAAACCCtt", true
		}
		return "", false
	}
	var rep report.Report
	rows := Build(samples, find, "AMPLICON", "SCAFFOLD", "caccGTCATCa", &rep)

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Extension != "AAACCCtt" {
		t.Errorf("extension = %q, want leading flank stripped", r.Extension)
	}
	if r.Spacer != "GTCATC" {
		t.Errorf("spacer = %q, want both flanks stripped", r.Spacer)
	}
	if r.Amplicon != "AMPLICON" || r.Scaffold != "SCAFFOLD" {
		t.Errorf("row = %+v", r)
	}

	if rep.Count(report.ErrUnresolvedSample) != 1 {
		t.Errorf("want one unresolved sample (P99_R99), report: %v", rep.Lines())
	}
	if rep.Count(report.ErrInvalidIdentifier) != 1 {
		t.Errorf("want one invalid name (noinfo), report: %v", rep.Lines())
	}
}

func TestHeaderMatchesFields(t *testing.T) {
	if len(Header) != len(Row{}.Fields()) {
		t.Fatalf("header has %d columns, Fields() yields %d", len(Header), len(Row{}.Fields()))
	}
}
