// core/aggregate/aggregate.go
package aggregate

import (
	"sort"
	"strconv"

	"peflow-core/category"
	"peflow-core/design"
	"peflow-core/quant"
	"peflow-core/report"
	"peflow-core/resolve"
)

// Fraction is a per-category read fraction. A design with zero pooled reads
// has undefined fractions: "no data observed" must stay distinguishable from
// "no editing observed" downstream, so undefined is never rendered as 0.
type Fraction struct {
	Defined bool
	Value   float64
}

// Format renders the fraction with prec decimals, or "NA" when undefined.
// Rounding is presentation only; the engine itself never rounds.
func (f Fraction) Format(prec int) string {
	if !f.Defined {
		return "NA"
	}
	return strconv.FormatFloat(f.Value, 'f', prec, 64)
}

// Summary is the pooled result for one design identifier, or for one
// unresolved/ambiguous/invalid sample bucket. Immutable once the engine
// returns it.
type Summary struct {
	ID      string
	Status  resolve.Status
	Samples int
	Total   int
	Counts  map[category.Category]int
}

func (s Summary) Fraction(c category.Category) Fraction {
	if s.Total == 0 {
		return Fraction{}
	}
	return Fraction{Defined: true, Value: float64(s.Counts[c]) / float64(s.Total)}
}

// Engine joins resolved records against the design set and pools replicate
// counts per design. Normalization is pure and stateless per record, so the
// engine could be sharded by design identifier without synchronization; the
// final sort alone fixes the output order.
type Engine struct {
	table category.Table
}

func New(table category.Table) *Engine {
	if table == nil {
		table = category.Default()
	}
	return &Engine{table: table}
}

// Normalize maps one quantification record's raw counts onto the category
// set. Reads the quantifier left unlabeled (record total above the labeled
// sum) are folded into unclassified, so the returned counts always sum to the
// returned total. An unmapped label fails the whole record.
func (e *Engine) Normalize(q quant.Record) (map[category.Category]int, int, error) {
	counts := make(map[category.Category]int, len(category.Order))
	labeled := 0
	for _, c := range q.Counts {
		cat, err := e.table.Normalize(c.Label)
		if err != nil {
			return nil, 0, err
		}
		counts[cat] += c.Reads
		labeled += c.Reads
	}
	total := q.Total
	if total < labeled {
		// Loader computes totals from counts, so this only happens with a
		// hand-edited input; trust the counts.
		total = labeled
	}
	counts[category.Unclassified] += total - labeled
	return counts, total, nil
}

// groupKey includes the status so failure buckets live in their own
// namespace: a failed sample whose raw name equals a design identifier must
// yield its own row, never pool into the design's.
type groupKey struct {
	id     string
	status resolve.Status
}

// Aggregate produces the full summary set in one pass: exactly one row per
// design in the database (zero-sample designs included) plus one row per
// sample bucket that failed resolution. Per-record failures go to rep and
// never abort the run.
func (e *Engine) Aggregate(designs []design.Record, recs []resolve.Resolved, rep *report.Report) []Summary {
	groups := make(map[groupKey]*Summary, len(designs))
	order := make([]groupKey, 0, len(designs))

	add := func(id string, status resolve.Status) *Summary {
		k := groupKey{id, status}
		if g, ok := groups[k]; ok {
			return g
		}
		g := &Summary{ID: id, Status: status, Counts: map[category.Category]int{}}
		groups[k] = g
		order = append(order, k)
		return g
	}

	// Every database design gets a row, even with zero matching samples.
	for i := range designs {
		add(designs[i].ID, resolve.StatusResolved)
	}

	meta := map[string]resolve.Meta{}
	for _, r := range recs {
		counts, total, err := e.Normalize(r.Quant)
		if err != nil {
			// Reported and excluded from numeric pooling; the design row
			// itself survives with whatever the other replicates contribute.
			rep.Add(r.Quant.Sample, report.ErrUnknownCategory, err.Error())
			if r.Status != resolve.StatusResolved {
				// No design row stands in for a failed sample; keep its
				// bucket visible even with no usable counts.
				add(r.Quant.Sample, r.Status).Samples++
			}
			continue
		}

		var g *Summary
		switch r.Status {
		case resolve.StatusResolved:
			g = add(r.Design.ID, resolve.StatusResolved)
			if prev, ok := meta[r.Design.ID]; ok && (prev.Editor != r.Meta.Editor || prev.Drug != r.Meta.Drug) {
				rep.Warnf("design %s pools replicates with mixed metadata (editor %q/%q, drug %q/%q)",
					r.Design.ID, prev.Editor, r.Meta.Editor, prev.Drug, r.Meta.Drug)
			} else if !ok {
				meta[r.Design.ID] = r.Meta
			}
		default:
			// Failed resolutions pool under their raw sample identifier so
			// no input data silently disappears from the final report.
			g = add(r.Quant.Sample, r.Status)
		}

		g.Samples++
		g.Total += total
		for c, n := range counts {
			g.Counts[c] += n
		}
	}

	out := make([]Summary, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status.Rank() != out[j].Status.Rank() {
			return out[i].Status.Rank() < out[j].Status.Rank()
		}
		return out[i].ID < out[j].ID
	})
	return out
}
