package design

import "testing"

func TestKeyString(t *testing.T) {
	k := Key{PBS: 13, RTT: 10}
	if got := k.String(); got != "P13_R10" {
		t.Errorf("Key.String() = %q, want P13_R10", got)
	}
}

func TestSortIsDeterministic(t *testing.T) {
	recs := []Record{
		{ID: "HEK3_P13_R10"},
		{ID: "HEK3_P10_R13"},
		{ID: "HEK3_P10_R10"},
	}
	Sort(recs)
	want := []string{"HEK3_P10_R10", "HEK3_P10_R13", "HEK3_P13_R10"}
	for i, w := range want {
		if recs[i].ID != w {
			t.Fatalf("order[%d] = %q, want %q", i, recs[i].ID, w)
		}
	}
}

func TestIndexGroupsDuplicateKeys(t *testing.T) {
	recs := []Record{
		{ID: "a", PBS: 10, RTT: 13},
		{ID: "b", PBS: 10, RTT: 13},
		{ID: "c", PBS: 7, RTT: 16},
	}
	idx := Index(recs)
	if got := len(idx[Key{10, 13}]); got != 2 {
		t.Errorf("want 2 records under P10_R13, got %d", got)
	}
	if got := len(idx[Key{7, 16}]); got != 1 {
		t.Errorf("want 1 record under P7_R16, got %d", got)
	}
}
