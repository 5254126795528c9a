package aggregate

import (
	"reflect"
	"testing"

	"peflow-core/category"
	"peflow-core/design"
	"peflow-core/quant"
	"peflow-core/report"
	"peflow-core/resolve"
)

func rec(sample string, intended, total int) quant.Record {
	return quant.Record{
		Sample: sample,
		Counts: []quant.Count{
			{Label: "Prime-edited:Unmodified", Reads: intended},
			{Label: "Reference:Unmodified", Reads: total - intended},
		},
		Total: total,
	}
}

func resolved(q quant.Record, d *design.Record) resolve.Resolved {
	return resolve.Resolved{Quant: q, Design: d, Status: resolve.StatusResolved}
}

func TestReplicatePooling(t *testing.T) {
	d := design.Record{ID: "D1", PBS: 10, RTT: 13}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate(
		[]design.Record{d},
		[]resolve.Resolved{
			resolved(rec("s1", 5, 10), &d),
			resolved(rec("s2", 3, 10), &d),
		},
		&rep,
	)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	s := got[0]
	if s.Samples != 2 || s.Total != 20 || s.Counts[category.IntendedEdit] != 8 {
		t.Errorf("pooled = %+v, want intended=8 total=20 over 2 samples", s)
	}
	f := s.Fraction(category.IntendedEdit)
	if !f.Defined || f.Value != 0.4 {
		t.Errorf("intended fraction = %+v, want 0.4", f)
	}
	if !rep.Empty() {
		t.Errorf("unexpected report entries: %v", rep.Lines())
	}
}

func TestEveryDesignGetsARow(t *testing.T) {
	designs := []design.Record{{ID: "D1"}, {ID: "D2"}, {ID: "D3"}}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate(designs, nil, &rep)
	if len(got) != 3 {
		t.Fatalf("got %d rows, want one per database design", len(got))
	}
	for _, s := range got {
		if s.Total != 0 || s.Samples != 0 {
			t.Errorf("%s: zero-sample design must have zero totals, got %+v", s.ID, s)
		}
		for _, c := range category.Order {
			if f := s.Fraction(c); f.Defined {
				t.Errorf("%s %s: fraction must be undefined with no data", s.ID, c)
			}
		}
	}
}

func TestZeroReadSampleKeepsFractionsUndefined(t *testing.T) {
	d := design.Record{ID: "D1"}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate([]design.Record{d},
		[]resolve.Resolved{resolved(rec("s1", 0, 0), &d)}, &rep)
	s := got[0]
	if s.Samples != 1 || s.Total != 0 {
		t.Fatalf("row = %+v, want 1 sample, 0 reads", s)
	}
	if f := s.Fraction(category.IntendedEdit); f.Defined {
		t.Error("zero-read pool must report undefined, not 0.0")
	}
	if s.Fraction(category.IntendedEdit).Format(6) != "NA" {
		t.Error("undefined fraction must render as NA")
	}
}

func TestUnknownCategoryExcludedWithoutAborting(t *testing.T) {
	d1 := design.Record{ID: "D1"}
	d2 := design.Record{ID: "D2"}
	bad := quant.Record{
		Sample: "s-bad",
		Counts: []quant.Count{{Label: "HDR:Modified", Reads: 10}},
		Total:  10,
	}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate(
		[]design.Record{d1, d2},
		[]resolve.Resolved{
			resolved(bad, &d1),
			resolved(rec("s-good", 4, 10), &d2),
		},
		&rep,
	)
	byID := map[string]Summary{}
	for _, s := range got {
		byID[s.ID] = s
	}
	if byID["D1"].Total != 0 || byID["D1"].Samples != 0 {
		t.Errorf("D1 = %+v: unknown-category record must not contribute counts", byID["D1"])
	}
	if byID["D2"].Total != 10 || byID["D2"].Counts[category.IntendedEdit] != 4 {
		t.Errorf("D2 = %+v: other designs must aggregate normally", byID["D2"])
	}
	if rep.Count(report.ErrUnknownCategory) != 1 {
		t.Errorf("report = %v, want one unknown-category issue", rep.Lines())
	}
}

func TestUnresolvedBucketsKeyedBySample(t *testing.T) {
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate(nil, []resolve.Resolved{
		{Quant: rec("lost-1", 2, 10), Status: resolve.StatusUnresolved},
		{Quant: rec("lost-1", 1, 10), Status: resolve.StatusUnresolved},
		{Quant: rec("dup-1", 1, 10), Status: resolve.StatusAmbiguous, Candidates: []string{"a", "b"}},
	}, &rep)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2 buckets", len(got))
	}
	if got[0].ID != "dup-1" || got[0].Status != resolve.StatusAmbiguous {
		t.Errorf("row 0 = %+v, want ambiguous dup-1 first (status rank order)", got[0])
	}
	if got[1].ID != "lost-1" || got[1].Total != 20 || got[1].Samples != 2 {
		t.Errorf("row 1 = %+v, want pooled unresolved bucket", got[1])
	}
}

func TestFailureBucketNeverAbsorbedByDesignRow(t *testing.T) {
	// A failed sample whose raw name equals a design identifier (the oligos
	// command names entries in the same P/R form) must keep its own row.
	d := design.Record{ID: "HEK3_P10_R13", PBS: 10, RTT: 13}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate([]design.Record{d}, []resolve.Resolved{
		{Quant: rec("HEK3_P10_R13", 3, 7), Status: resolve.StatusInvalid},
	}, &rep)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want design row + invalid bucket", len(got))
	}
	if got[0].ID != "HEK3_P10_R13" || got[0].Status != resolve.StatusResolved ||
		got[0].Samples != 0 || got[0].Total != 0 {
		t.Errorf("row 0 = %+v, want untouched zero-sample design row", got[0])
	}
	if got[1].ID != "HEK3_P10_R13" || got[1].Status != resolve.StatusInvalid || got[1].Total != 7 {
		t.Errorf("row 1 = %+v, want invalid bucket carrying the sample's reads", got[1])
	}
}

func TestUnknownCategoryOnFailedSampleKeepsBucketRow(t *testing.T) {
	bad := quant.Record{
		Sample: "mystery",
		Counts: []quant.Count{{Label: "HDR:Modified", Reads: 5}},
		Total:  5,
	}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate(nil, []resolve.Resolved{
		{Quant: bad, Status: resolve.StatusUnresolved},
	}, &rep)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want the sample's bucket", len(got))
	}
	s := got[0]
	if s.ID != "mystery" || s.Status != resolve.StatusUnresolved || s.Samples != 1 || s.Total != 0 {
		t.Errorf("row = %+v, want zero-count unresolved bucket", s)
	}
	if rep.Count(report.ErrUnknownCategory) != 1 {
		t.Errorf("report = %v, want one unknown-category issue", rep.Lines())
	}
}

func TestCategoryCountsSumToTotal(t *testing.T) {
	d := design.Record{ID: "D1"}
	// Total above the labeled sum: surplus must fold into unclassified.
	q := quant.Record{
		Sample: "s1",
		Counts: []quant.Count{{Label: "Prime-edited:Unmodified", Reads: 6}},
		Total:  10,
	}
	eng := New(nil)
	var rep report.Report

	got := eng.Aggregate([]design.Record{d}, []resolve.Resolved{resolved(q, &d)}, &rep)
	s := got[0]
	sum := 0
	for _, c := range category.Order {
		sum += s.Counts[c]
	}
	if sum != s.Total {
		t.Errorf("category counts sum to %d, total is %d", sum, s.Total)
	}
	if s.Counts[category.Unclassified] != 4 {
		t.Errorf("unclassified = %d, want surplus 4", s.Counts[category.Unclassified])
	}
}

func TestDeterministicOrderingAcrossRuns(t *testing.T) {
	designs := []design.Record{{ID: "zeta"}, {ID: "alpha"}, {ID: "mid"}}
	d := &designs[0]
	recs := []resolve.Resolved{
		{Quant: rec("u2", 1, 10), Status: resolve.StatusUnresolved},
		resolved(rec("s1", 1, 10), d),
		{Quant: rec("u1", 1, 10), Status: resolve.StatusUnresolved},
	}
	eng := New(nil)

	var rep1, rep2 report.Report
	a := eng.Aggregate(designs, recs, &rep1)

	// Reversed arrival order must not change the output.
	rev := []resolve.Resolved{recs[2], recs[1], recs[0]}
	b := eng.Aggregate(designs, rev, &rep2)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("aggregation is order-sensitive:\n a=%+v\n b=%+v", a, b)
	}
	wantOrder := []string{"alpha", "mid", "zeta", "u1", "u2"}
	for i, w := range wantOrder {
		if a[i].ID != w {
			t.Fatalf("order[%d] = %q, want %q", i, a[i].ID, w)
		}
	}
}

func TestMixedMetadataWarns(t *testing.T) {
	d := design.Record{ID: "D1"}
	eng := New(nil)
	var rep report.Report

	r1 := resolved(rec("s1", 1, 10), &d)
	r1.Meta = resolve.Meta{Editor: "PE2", Replicate: 1}
	r2 := resolved(rec("s2", 1, 10), &d)
	r2.Meta = resolve.Meta{Editor: "PEMax", Replicate: 2}

	got := eng.Aggregate([]design.Record{d}, []resolve.Resolved{r1, r2}, &rep)
	if got[0].Samples != 2 {
		t.Fatalf("mixed-metadata replicates must still pool, got %+v", got[0])
	}
	if len(rep.Warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one mixed-metadata warning", rep.Warnings)
	}
}
