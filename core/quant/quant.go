// core/quant/quant.go
package quant

// Count is one (raw outcome label, read count) pair. Labels keep the
// quantifier's "<amplicon>:<column>" form until normalization.
type Count struct {
	Label string
	Reads int
}

// Record is the per-sample outcome-count row set produced by the external
// quantifier. Immutable once loaded.
//
// Invariant: Total >= sum of Counts; any surplus is reads the quantifier saw
// but did not classify, and the aggregation engine folds it into the
// unclassified category.
type Record struct {
	Sample string
	Counts []Count
	Total  int
}

// Sum returns the summed labeled reads.
func (r Record) Sum() int {
	n := 0
	for _, c := range r.Counts {
		n += c.Reads
	}
	return n
}
