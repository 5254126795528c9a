// core/report/report.go
package report

import (
	"errors"
	"fmt"
	"sort"
)

// Recoverable per-record error kinds. Fatal I/O errors are ordinary wrapped
// errors returned up the call stack; only these accumulate in a Report.
var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrUnresolvedSample  = errors.New("unresolved sample")
	ErrAmbiguousMatch    = errors.New("ambiguous match")
	ErrUnknownCategory   = errors.New("unknown outcome category")
)

// Issue is one recoverable problem attributed to a single input record.
type Issue struct {
	Sample string
	Err    error  // one of the sentinel errors above
	Detail string // candidates for ambiguous, raw label for unknown category, …
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %v", i.Sample, i.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", i.Sample, i.Err, i.Detail)
}

// Report accumulates per-record issues and free-form warnings across one run.
// It is threaded explicitly through resolution and aggregation so the whole
// pipeline stays a pure function of its inputs.
type Report struct {
	Issues   []Issue
	Warnings []string
}

func (r *Report) Add(sample string, err error, detail string) {
	r.Issues = append(r.Issues, Issue{Sample: sample, Err: err, Detail: detail})
}

func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) Empty() bool { return len(r.Issues) == 0 && len(r.Warnings) == 0 }

// Count returns how many issues match the given sentinel.
func (r *Report) Count(sentinel error) int {
	n := 0
	for _, i := range r.Issues {
		if errors.Is(i.Err, sentinel) {
			n++
		}
	}
	return n
}

// Lines renders the report deterministically: issues sorted by sample then
// text, followed by warnings in insertion order.
func (r *Report) Lines() []string {
	out := make([]string, 0, len(r.Issues)+len(r.Warnings))
	for _, i := range r.Issues {
		out = append(out, i.String())
	}
	sort.Strings(out)
	out = append(out, r.Warnings...)
	return out
}
