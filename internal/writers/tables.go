// internal/writers/tables.go
package writers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"peflow-core/oligo"
	"peflow-core/runsheet"

	"peflow/internal/store"
)

// WriteRunsheetTSV writes the external analysis tool's batch settings file.
func WriteRunsheetTSV(w io.Writer, rows []runsheet.Row) error {
	if _, err := fmt.Fprintln(w, strings.Join(runsheet.Header, "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(r.Fields(), "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteOligoCSV writes the order sheet: two rows per oligo pair, name then
// sequence, no header (the vendor portal wants bare rows).
func WriteOligoCSV(w io.Writer, orders []oligo.Order) error {
	cw := csv.NewWriter(w)
	for _, o := range orders {
		for _, row := range o.Rows() {
			if err := cw.Write(row[:]); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportHeader is the fixed header of the data-point export.
var ExportHeader = []string{
	"experiment", "run", "prime_editor", "PBS", "RTT", "replicate",
	"correct_edits", "incorrect_edits", "scaffold_incorporated",
}

// WriteExportCSV writes the flat data-point export.
func WriteExportCSV(w io.Writer, rows []store.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Experiment, r.Run, r.Editor,
			strconv.Itoa(r.PBS), strconv.Itoa(r.RTT), strconv.Itoa(r.Replicate),
			strconv.FormatFloat(r.Correct, 'f', -1, 64),
			strconv.FormatFloat(r.Incorrect, 'f', -1, 64),
			strconv.FormatFloat(r.Scaffold, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
