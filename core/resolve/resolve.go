// core/resolve/resolve.go
package resolve

import (
	"sort"
	"strings"

	"peflow-core/design"
	"peflow-core/quant"
	"peflow-core/report"
)

// Status is the resolution outcome of one sample.
type Status string

const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
	StatusAmbiguous  Status = "ambiguous"
	StatusInvalid    Status = "invalid"
)

// rank orders statuses for deterministic output: resolved designs first.
func (s Status) Rank() int {
	switch s {
	case StatusResolved:
		return 0
	case StatusAmbiguous:
		return 1
	case StatusUnresolved:
		return 2
	default:
		return 3
	}
}

// Resolved pairs one quantification record with at most one design record.
// Records that fail resolution are retained and flagged, never dropped.
type Resolved struct {
	Quant      quant.Record
	Design     *design.Record // nil unless Status == StatusResolved
	Status     Status
	Meta       Meta
	Candidates []string // matching design IDs when ambiguous
}

// Resolver maps sample identifiers to design records. Construction indexes
// the design set once; Resolve is a pure transformation over it.
type Resolver struct {
	convs []Convention
	index map[design.Key][]*design.Record
}

func NewResolver(designs []design.Record, convs []Convention) *Resolver {
	if len(convs) == 0 {
		convs = Defaults()
	}
	return &Resolver{convs: convs, index: design.Index(designs)}
}

// Resolve maps every quantification record to its design. All outcomes are
// represented in the returned set; recoverable failures also land in rep.
func (r *Resolver) Resolve(recs []quant.Record, rep *report.Report) []Resolved {
	out := make([]Resolved, 0, len(recs))
	for _, q := range recs {
		out = append(out, r.resolveOne(q, rep))
	}
	return out
}

func (r *Resolver) resolveOne(q quant.Record, rep *report.Report) Resolved {
	cands, err := ParseSample(q.Sample, r.convs)
	if err != nil {
		rep.Add(q.Sample, report.ErrInvalidIdentifier, "")
		return Resolved{Quant: q, Status: StatusInvalid}
	}

	// Union of designs across all candidate keys; each match remembers the
	// metadata of the candidate whose key found it.
	var (
		matches []*design.Record
		metas   []Meta
		seen    = map[string]bool{}
	)
	for _, c := range cands {
		for _, d := range r.index[c.Key] {
			if !seen[d.ID] {
				seen[d.ID] = true
				matches = append(matches, d)
				metas = append(metas, c.Meta)
			}
		}
	}
	meta := cands[0].Meta

	switch len(matches) {
	case 0:
		keys := make([]string, len(cands))
		for i, c := range cands {
			keys[i] = c.Key.String()
		}
		rep.Add(q.Sample, report.ErrUnresolvedSample, "no design for "+strings.Join(keys, ", "))
		return Resolved{Quant: q, Status: StatusUnresolved, Meta: meta}
	case 1:
		return Resolved{Quant: q, Design: matches[0], Status: StatusResolved, Meta: metas[0]}
	default:
		ids := make([]string, len(matches))
		for i, d := range matches {
			ids[i] = d.ID
		}
		sort.Strings(ids)
		rep.Add(q.Sample, report.ErrAmbiguousMatch, strings.Join(ids, ", "))
		return Resolved{Quant: q, Status: StatusAmbiguous, Meta: meta, Candidates: ids}
	}
}
