// internal/writers/summary.go
package writers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"peflow-core/aggregate"
	"peflow-core/category"
)

// SummaryHeader is the canonical header of the summary table. Keep this as
// the single source of truth for the column schema.
func SummaryHeader() string {
	cols := []string{"design_id", "total_reads"}
	for _, c := range category.Order {
		cols = append(cols, string(c)+"_reads")
	}
	for _, c := range category.Order {
		cols = append(cols, string(c)+"_fraction")
	}
	cols = append(cols, "status")
	return strings.Join(cols, "\t")
}

// WriteSummaryTSV writes one row per summary record, in the order the engine
// fixed.
func WriteSummaryTSV(w io.Writer, rows []aggregate.Summary, precision int, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, SummaryHeader()); err != nil {
			return err
		}
	}
	for _, s := range rows {
		fields := make([]string, 0, 3+2*len(category.Order))
		fields = append(fields, s.ID, strconv.Itoa(s.Total))
		for _, c := range category.Order {
			fields = append(fields, strconv.Itoa(s.Counts[c]))
		}
		for _, c := range category.Order {
			fields = append(fields, s.Fraction(c).Format(precision))
		}
		fields = append(fields, string(s.Status))
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}
