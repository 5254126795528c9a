// core/design/design.go
package design

import (
	"fmt"
	"sort"
)

// Key is the matching key a sample identifier resolves to: the PBS and RTT
// lengths that uniquely place a design inside one experiment.
type Key struct {
	PBS int
	RTT int
}

func (k Key) String() string { return fmt.Sprintf("P%d_R%d", k.PBS, k.RTT) }

// Record is one planned editing construct loaded from the design database.
// Immutable after load; one aggregation run owns the loaded set.
type Record struct {
	ID         string // entry name, or Key.String() when the entry is unnamed
	EntryID    string // database primary key of the experiment entry
	Experiment string
	Variant    string
	Locus      string // chromosome:genomic_location
	Edit       string // intended-edit descriptor
	Amplicon   string // amplicon sequence reference
	Scaffold   string // optional scaffold variant tag
	Score      string
	PBS        int
	RTT        int
}

func (r Record) Key() Key { return Key{PBS: r.PBS, RTT: r.RTT} }

// Sort orders records by ID so downstream output is independent of load order.
func Sort(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}

// Index groups records by matching key. Multiple records under one key is a
// legal database state; the resolver reports it as ambiguous per sample.
func Index(recs []Record) map[Key][]*Record {
	idx := make(map[Key][]*Record, len(recs))
	for i := range recs {
		k := recs[i].Key()
		idx[k] = append(idx[k], &recs[i])
	}
	return idx
}
