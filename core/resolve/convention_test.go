package resolve

import (
	"errors"
	"testing"

	"peflow-core/design"
	"peflow-core/report"
)

func TestDefaultConventionsParseLabNames(t *testing.T) {
	convs := Defaults()
	tests := []struct {
		sample string
		key    design.Key
		editor string
		rep    int
		drug   string
	}{
		{"HEK3PE2_P10_R13_Rep1", design.Key{PBS: 10, RTT: 13}, "PE2", 1, ""},
		{"HEK3PEMax_R13_P10_Rep2", design.Key{PBS: 10, RTT: 13}, "PEMax", 2, ""},
		{"HEK_P7_R16_rep3", design.Key{PBS: 7, RTT: 16}, "", 3, ""},
		{"HEK3_P7_R16_rep3", design.Key{PBS: 7, RTT: 16}, "", 3, ""},
		{"HEK_R16_P7_Rep1", design.Key{PBS: 7, RTT: 16}, "", 1, ""},
		{"HEK_three_PE2_P10R13_dmso_Rep2", design.Key{PBS: 10, RTT: 13}, "PE2", 2, "dmso"},
		{"HEK_three_PE2_P10R13_dmso", design.Key{PBS: 10, RTT: 13}, "PE2", 1, "dmso"},
		{"HEK_three_PE2_P10R13_ctrl", design.Key{PBS: 10, RTT: 13}, "PE2", 1, ""},
	}
	for _, tt := range tests {
		cands, err := ParseSample(tt.sample, convs)
		if err != nil {
			t.Errorf("ParseSample(%q): %v", tt.sample, err)
			continue
		}
		c := cands[0]
		if c.Key != tt.key {
			t.Errorf("%q key = %v, want %v", tt.sample, c.Key, tt.key)
		}
		if c.Meta.Editor != tt.editor || c.Meta.Replicate != tt.rep || c.Meta.Drug != tt.drug {
			t.Errorf("%q meta = %+v, want editor=%q rep=%d drug=%q",
				tt.sample, c.Meta, tt.editor, tt.rep, tt.drug)
		}
	}
}

func TestParseSampleInvalidIdentifier(t *testing.T) {
	_, err := ParseSample("not-a-sample", Defaults())
	if !errors.Is(err, report.ErrInvalidIdentifier) {
		t.Fatalf("want ErrInvalidIdentifier, got %v", err)
	}
}

func TestNewRejectsPatternWithoutKeyGroups(t *testing.T) {
	if _, err := New("bad", `X(?P<pbs>\d+)`); err == nil {
		t.Fatal("want error for pattern without rtt group")
	}
}

func TestLooseKey(t *testing.T) {
	k, ok := LooseKey("HEK3_P12_R14_Rep1")
	if !ok || k != (design.Key{PBS: 12, RTT: 14}) {
		t.Errorf("LooseKey = %v ok=%v", k, ok)
	}
	if _, ok := LooseKey("noinfo"); ok {
		t.Error("LooseKey must fail when P/R tokens are absent")
	}
}
